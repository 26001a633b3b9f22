package constant

import (
	"net/http"

	"github.com/duccv/whereisit/internal/model/response"
)

var UNAUTHORIZED = response.ResponseData{
	Ec:      http.StatusUnauthorized,
	Message: "Unauthorized",
}

var FORBIDDEN = response.ResponseData{
	Ec:      http.StatusForbidden,
	Message: "Forbidden",
}

var INVALID_REQUEST = response.ResponseData{
	Ec:      http.StatusBadRequest,
	Message: "Invalid request payload",
}

var INTERNAL_SERVER_ERROR = response.ResponseData{
	Ec:      http.StatusInternalServerError,
	Message: "Internal server error",
}

var REQUEST_TIMEOUT = response.ResponseData{
	Ec:      http.StatusRequestTimeout,
	Message: "Request timeout",
}
