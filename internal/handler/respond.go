// Package handler holds the gin handlers. Each route performs one store operation and
// writes the raw result as JSON.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/duccv/whereisit/internal/constant"
	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/util"
	"github.com/gin-gonic/gin"
)

// abortInternal records err for the request logger and answers with the generic 500
// envelope.
func abortInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, constant.INTERNAL_SERVER_ERROR)
}

// respondWithETag writes v as JSON with an ETag, or 304 when the client already holds
// the same representation.
func respondWithETag(c *gin.Context, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		abortInternal(c, err)
		return
	}

	etag := util.GenerateETag(body)
	c.Header("ETag", etag)
	if util.MatchETag(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// bindDocument decodes a JSON object body. An empty body is an empty document.
func bindDocument(c *gin.Context) (model.Item, error) {
	doc := model.Item{}
	if err := c.ShouldBindJSON(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if doc == nil {
		doc = model.Item{}
	}
	return doc, nil
}
