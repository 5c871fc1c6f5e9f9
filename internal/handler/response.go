package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"callsight/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
// Every pipeline error is terminal for the request; the caller re-invokes if
// it wants a retry.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized, "MISSING_CREDENTIAL", "provide an API key via the X-API-Key header"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidMode):
		return http.StatusBadRequest, "INVALID_MODE", "invalid analysis mode; allowed: text, multimodal"
	case errors.Is(err, domain.ErrDocumentRead):
		return http.StatusUnprocessableEntity, "UNREADABLE_DOCUMENT", "the uploaded file could not be read as a PDF"
	case errors.Is(err, domain.ErrRemoteUpload):
		return http.StatusBadGateway, "REMOTE_UPLOAD_FAILED", "uploading the document to the model API failed"
	case errors.Is(err, domain.ErrRemoteProcessing):
		return http.StatusBadGateway, "REMOTE_PROCESSING_FAILED", "the model API failed to process the document"
	case errors.Is(err, domain.ErrRemoteAnalysis):
		return http.StatusBadGateway, "REMOTE_ANALYSIS_FAILED", "the analysis call to the model API failed"
	case errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway, "MALFORMED_MODEL_RESPONSE", "the model returned an empty or malformed response"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
