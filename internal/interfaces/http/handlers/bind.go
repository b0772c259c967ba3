package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/shared/utils"
)

// bindJSON decodes the body into req and runs struct validation.
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return utils.NewBindError(err)
	}
	return utils.ValidateStruct(req)
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted.
func bindOptionalJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return utils.NewBindError(err)
	}
	return utils.ValidateStruct(req)
}

func bindQuery(c *gin.Context, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return utils.NewBindError(err)
	}
	return utils.ValidateStruct(req)
}

// idParam returns the trimmed :id path parameter.
func idParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
