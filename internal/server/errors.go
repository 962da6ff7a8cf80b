package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/auth/token"
	"github.com/utilitech/utilicore/internal/authorization"
	billingdomain "github.com/utilitech/utilicore/internal/billing/domain"
	invoicedomain "github.com/utilitech/utilicore/internal/invoice/domain"
	paymentdomain "github.com/utilitech/utilicore/internal/payment/domain"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	subscriptiondomain "github.com/utilitech/utilicore/internal/subscription/domain"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, token.ErrInvalidToken):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, billingdomain.ErrInvalidTransition):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isAuthValidationError(err),
		isProfileValidationError(err),
		isAccountValidationError(err),
		isPlanValidationError(err),
		isServiceValidationError(err),
		isSubscriptionValidationError(err),
		isInvoiceValidationError(err),
		isBillingValidationError(err),
		errors.Is(err, paymentdomain.ErrInvalidID),
		errors.Is(err, sysconfigdomain.ErrInvalidMultiplier):
		return true
	default:
		return false
	}
}

func isAuthValidationError(err error) bool {
	return errors.Is(err, authdomain.ErrInvalidEmail) ||
		errors.Is(err, authdomain.ErrInvalidPassword) ||
		errors.Is(err, authdomain.ErrInvalidName) ||
		errors.Is(err, authdomain.ErrInvalidRole) ||
		errors.Is(err, authdomain.ErrInvalidID)
}

func isProfileValidationError(err error) bool {
	return errors.Is(err, profiledomain.ErrInvalidName) ||
		errors.Is(err, profiledomain.ErrInvalidID) ||
		errors.Is(err, profiledomain.ErrInvalidMasterProfile)
}

func isAccountValidationError(err error) bool {
	return errors.Is(err, accountdomain.ErrInvalidName) ||
		errors.Is(err, accountdomain.ErrInvalidID)
}

func isPlanValidationError(err error) bool {
	return errors.Is(err, plandomain.ErrInvalidName) ||
		errors.Is(err, plandomain.ErrInvalidPlanType) ||
		errors.Is(err, plandomain.ErrInvalidServiceType) ||
		errors.Is(err, plandomain.ErrInvalidStatus) ||
		errors.Is(err, plandomain.ErrInvalidID)
}

func isServiceValidationError(err error) bool {
	return errors.Is(err, servicedomain.ErrInvalidName) ||
		errors.Is(err, servicedomain.ErrInvalidCategory) ||
		errors.Is(err, servicedomain.ErrInvalidStatus) ||
		errors.Is(err, servicedomain.ErrInvalidID) ||
		errors.Is(err, servicedomain.ErrInvalidParentService)
}

func isSubscriptionValidationError(err error) bool {
	return errors.Is(err, subscriptiondomain.ErrInvalidID) ||
		errors.Is(err, subscriptiondomain.ErrInvalidServiceType) ||
		errors.Is(err, subscriptiondomain.ErrNotAddonPlan) ||
		errors.Is(err, subscriptiondomain.ErrNotAddonService)
}

func isInvoiceValidationError(err error) bool {
	return errors.Is(err, invoicedomain.ErrInvalidID) ||
		errors.Is(err, invoicedomain.ErrInvalidItems) ||
		errors.Is(err, invoicedomain.ErrInvalidStatus)
}

func isBillingValidationError(err error) bool {
	return errors.Is(err, billingdomain.ErrInvalidID) ||
		errors.Is(err, billingdomain.ErrInvalidRunName) ||
		errors.Is(err, billingdomain.ErrInvalidStatus)
}

func isForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, authorization.ErrForbidden) ||
		errors.Is(err, accountdomain.ErrForbidden) ||
		errors.Is(err, plandomain.ErrForbidden) ||
		errors.Is(err, servicedomain.ErrForbidden) ||
		errors.Is(err, subscriptiondomain.ErrForbidden) ||
		errors.Is(err, invoicedomain.ErrForbidden)
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, authdomain.ErrNotFound),
		errors.Is(err, profiledomain.ErrNotFound),
		errors.Is(err, accountdomain.ErrNotFound),
		errors.Is(err, accountdomain.ErrProfileNotFound),
		errors.Is(err, plandomain.ErrNotFound),
		errors.Is(err, servicedomain.ErrNotFound),
		errors.Is(err, servicedomain.ErrAccountNotFound),
		errors.Is(err, servicedomain.ErrPlanNotFound),
		errors.Is(err, subscriptiondomain.ErrNotFound),
		errors.Is(err, subscriptiondomain.ErrPlanNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrAccountNotFound),
		errors.Is(err, billingdomain.ErrNotFound),
		errors.Is(err, billingdomain.ErrCycleNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	default:
		return "invalid value"
	}
}
