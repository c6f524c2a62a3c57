package utils

import "github.com/gin-gonic/gin"

// ErrorResponse is the uniform structure for failed API responses. Success
// bodies are endpoint specific and written directly by controllers.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, ErrorResponse{Code: code, Message: message})
}
