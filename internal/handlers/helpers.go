package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "homebudget/internal/errors"
	"homebudget/internal/middleware"
	"homebudget/internal/money"
	"homebudget/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// bindError turns a binding failure into an AppError. Rule violations become
// VALIDATION_ERROR, anything else (malformed JSON, wrong types) INVALID_INPUT.
func bindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, validationMessage(verrs[0]))
	}
	if errors.Is(err, money.ErrInvalidAmount) {
		return apperrors.WithMessage(apperrors.ErrValidation, "Amount must be a decimal number")
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

func validationMessage(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "positive_amount":
		return "Amount must be positive"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseFlexibleTime accepts RFC3339 timestamps, kept in their own offset, or
// bare YYYY-MM-DD dates in UTC.
func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use RFC3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

// queryTime parses an optional time query parameter.
func queryTime(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+key+" format, use RFC3339 or YYYY-MM-DD")
	}
	return &t, nil
}

// queryEndTime is queryTime for an upper bound: a bare date covers the
// whole day.
func queryEndTime(c *gin.Context, key string) (*time.Time, error) {
	t, err := queryTime(c, key)
	if err != nil || t == nil {
		return t, err
	}
	if len(c.Query(key)) == len(time.DateOnly) {
		end := t.AddDate(0, 0, 1).Add(-time.Microsecond)
		return &end, nil
	}
	return t, nil
}

// queryAmount parses an optional decimal amount query parameter.
func queryAmount(c *gin.Context, key string) (*money.Amount, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	a, err := money.Parse(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+key)
	}
	return &a, nil
}

// respondWithError writes a consistent JSON error response. AppErrors keep
// their status and code; anything else is logged and reported as an internal error.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondError(c, err)
}

// ErrorResponse documents the error envelope in the API docs.
type ErrorResponse = middleware.ErrorBody
