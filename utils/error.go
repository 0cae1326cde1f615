package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Sentinel errors shared by services so handlers can map them to HTTP statuses
// without parsing message text.
var (
	ErrNotFound        = errors.New("registro não encontrado")
	ErrNotOwner        = errors.New("você não tem permissão para esta operação")
	ErrNotOpen         = errors.New("este serviço não está mais aberto para propostas")
	ErrNotInProgress   = errors.New("este serviço não está em andamento")
	ErrDuplicateReview = errors.New("você já avaliou este prestador")
	ErrOwnService      = errors.New("você não pode enviar proposta para o próprio serviço")
	ErrDuplicateBid    = errors.New("você já enviou uma proposta para este serviço")
	ErrUnavailable     = errors.New("serviço temporariamente indisponível, tente novamente")
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := GetLogger()
				logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := GetLogger()
	logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// StatusFor maps a service error to the HTTP status it should surface as.
// Unknown errors map to 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrNotOpen), errors.Is(err, ErrNotInProgress),
		errors.Is(err, ErrDuplicateReview), errors.Is(err, ErrOwnService),
		errors.Is(err, ErrDuplicateBid):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
