package response

// ResponseData is the envelope for error responses. Message is the field the web
// client reads.
type ResponseData struct {
	Ec      int    `json:"ec"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}
