package validation

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type idParams struct {
	ID string `uri:"id" validate:"required"`
}

type emailQuery struct {
	Email *string `form:"email"`
}

func TestBindParamsAndQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/items/:id", Bind[idParams, emailQuery](), func(c *gin.Context) {
		p := Params[idParams](c)
		q := Query[emailQuery](c)
		email := "<nil>"
		if q.Email != nil {
			email = *q.Email
		}
		c.String(http.StatusOK, p.ID+"|"+email)
	})

	tests := []struct {
		url  string
		want string
	}{
		{url: "/items/42?email=a@b.com", want: "42|a@b.com"},
		{url: "/items/42", want: "42|<nil>"},
		{url: "/items/42?email=", want: "42|"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
		if w.Code != http.StatusOK || w.Body.String() != tt.want {
			t.Errorf("GET %s = %d %q, want %q", tt.url, w.Code, w.Body.String(), tt.want)
		}
	}
}
