package middleware

import (
	"errors"
	"net/http"

	"provafoco/internal/domain"
	"provafoco/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// retryAfterSeconds is advertised on 503 responses.
const retryAfterSeconds = "30"

// ErrorResponse is the JSON body of every non-validation failure.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected field.
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:         http.StatusNotFound,
	domain.CodeInvalidInput:     http.StatusBadRequest,
	domain.CodeValidation:       http.StatusBadRequest,
	domain.CodeMissingField:     http.StatusBadRequest,
	domain.CodeInvalidFormat:    http.StatusBadRequest,
	domain.CodeOutOfRange:       http.StatusBadRequest,
	domain.CodeDuplicate:        http.StatusBadRequest,
	domain.CodeUnauthorized:     http.StatusUnauthorized,
	domain.CodeForbidden:        http.StatusForbidden,
	domain.CodeStoreUnavailable: http.StatusServiceUnavailable,
	domain.CodeLLMServiceError:  http.StatusServiceUnavailable,
}

// StatusFor maps a domain error code to its HTTP status; unknown codes are 500.
func StatusFor(code domain.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders domain errors, validation lists and fiber errors as JSON.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(zap.String("method", c.Method()), zap.String("path", c.Path()))

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Info("Request rejected", zap.Int("error_count", len(validationErrs)))
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := StatusFor(domainErr.Code)
			fields := []zap.Field{zap.String("code", string(domainErr.Code)), zap.Int("status", status)}
			if domainErr.Cause != nil {
				fields = append(fields, zap.Error(domainErr.Cause))
			}
			switch {
			case status == http.StatusServiceUnavailable:
				log.Warn(domainErr.Message, fields...)
				c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
			case status >= http.StatusInternalServerError:
				log.Error(domainErr.Message, fields...)
			default:
				log.Debug(domainErr.Message, fields...)
			}
			return c.Status(status).JSON(ErrorResponse{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Status:  status,
				Details: domainErr.Context,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unhandled error", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}
