package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/logger"
)

// DataResponse wraps every successful JSON body.
type DataResponse struct {
	Data any `json:"data"`
}

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SuccessResponse sends {"data": data} with statusCode.
func SuccessResponse(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, DataResponse{Data: data})
}

func OK(c *gin.Context, data any) {
	SuccessResponse(c, http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data any) {
	SuccessResponse(c, http.StatusCreated, data)
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ErrorResponse sends an error body with an explicit code.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorBody{Code: code, Message: message})
}

// ErrorResponseWithError maps err onto a response. AppErrors keep their
// code, status and details; anything else is logged and reported as
// INTERNAL_SERVER_ERROR without detail.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", "path", c.Request.URL.Path, "code", appErr.Code, "error", err)
		}
		c.JSON(appErr.Status, ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	logger.Error("unexpected request failure",
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"error", err)
	ErrorResponse(c, http.StatusInternalServerError, errors.CodeInternal, "Something went wrong. Please try again.")
}

// AbortWithError writes the error response and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	ErrorResponseWithError(c, err)
	c.Abort()
}
