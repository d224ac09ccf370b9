// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unilink/unilink/internal/middleware"
)

// parseIDParam reads a numeric path parameter. A malformed value answers
// with the uniform 400 string and reports false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, "Dados inválidos!")
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body into req. Any bind failure answers with
// the uniform 400 string and reports false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, "Dados inválidos!")
		return false
	}
	return true
}

// handleError delegates to the central error mapper
func handleError(c *gin.Context, err error) {
	middleware.HandleAPIError(c, err)
}
