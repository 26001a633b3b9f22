package validation

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/duccv/whereisit/internal/constant"
)

const (
	validatedParamsKey = "validatedParams"
	validatedQueryKey  = "validatedQuery"
)

// None marks a request part that is not bound.
type None = any

var validate *validator.Validate = validator.New()

func isEmptyInterface[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t == reflect.TypeOf((*any)(nil)).Elem()
}

// Bind binds the URI params into P and the query string into Q, validates both, and
// stores them for Params / Query. Bodies are left to the handlers.
func Bind[P any, Q any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		resData := constant.INVALID_REQUEST

		// --- Params ---
		if !isEmptyInterface[P]() {
			var params P

			if err := c.ShouldBindUri(&params); err != nil {
				resData.Error = err.Error()
				c.AbortWithStatusJSON(http.StatusBadRequest, resData)
				return
			}
			if err := validate.Struct(params); err != nil {
				resData.Error = err.Error()
				c.AbortWithStatusJSON(http.StatusBadRequest, resData)
				return
			}

			c.Set(validatedParamsKey, params)
		}

		// --- Query ---
		if !isEmptyInterface[Q]() {
			var query Q

			if err := c.ShouldBindQuery(&query); err != nil {
				resData.Error = err.Error()
				c.AbortWithStatusJSON(http.StatusBadRequest, resData)
				return
			}
			if err := validate.Struct(query); err != nil {
				resData.Error = err.Error()
				c.AbortWithStatusJSON(http.StatusBadRequest, resData)
				return
			}

			c.Set(validatedQueryKey, query)
		}

		c.Next()
	}
}

// Params returns the URI params bound by Bind.
func Params[P any](c *gin.Context) P {
	params, _ := c.MustGet(validatedParamsKey).(P)
	return params
}

// Query returns the query string bound by Bind.
func Query[Q any](c *gin.Context) Q {
	query, _ := c.MustGet(validatedQueryKey).(Q)
	return query
}
