// Package common provides shared HTTP handler utilities.
package common

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/domain/question"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

const (
	// MaxListValues caps comma-separated query lists.
	MaxListValues = 50

	// MaxListValueLength drops list values longer than this.
	MaxListValueLength = 64
)

// UserID returns the authenticated caller set by the auth middleware.
func UserID(c *gin.Context) (string, error) {
	userID := c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		return "", errors.NewUnauthorizedError("user not authenticated")
	}
	return userID, nil
}

// SessionID returns the caller's auth session id, empty when the client sent none.
func SessionID(c *gin.Context) string {
	return c.GetString(constants.ContextKeySessionID)
}

// ClientID returns the X-Client-ID header or the default slot name.
func ClientID(c *gin.Context) string {
	clientID := strings.TrimSpace(c.GetHeader(constants.HeaderXClientID))
	if clientID == "" || len(clientID) > MaxListValueLength {
		return constants.DefaultClientID
	}
	return clientID
}

// ParseList splits a comma-separated query parameter. Returns nil when absent.
func ParseList(c *gin.Context, paramName string) []string {
	raw := c.Query(paramName)
	if raw == "" {
		return nil
	}

	var values []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" || len(p) > MaxListValueLength {
			continue
		}
		values = append(values, p)
		if len(values) >= MaxListValues {
			break
		}
	}
	return values
}

// ParseIntList is ParseList for integer values.
func ParseIntList(c *gin.Context, paramName string) ([]int, error) {
	raw := ParseList(c, paramName)
	if raw == nil {
		return nil, nil
	}

	values := make([]int, 0, len(raw))
	for _, p := range raw {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.NewValidationError("invalid " + paramName + " value: " + p)
		}
		values = append(values, n)
	}
	return values, nil
}

// ParseQuestionFilter reads specialty, exam_type, year and difficulty lists.
func ParseQuestionFilter(c *gin.Context) (question.Filter, error) {
	years, err := ParseIntList(c, "year")
	if err != nil {
		return question.Filter{}, err
	}
	return question.Filter{
		Specialties:  ParseList(c, "specialty"),
		ExamTypes:    ParseList(c, "exam_type"),
		Years:        years,
		Difficulties: ParseList(c, "difficulty"),
	}, nil
}

// ParseDays reads the optional days query parameter. Zero means the default window.
func ParseDays(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, errors.NewValidationError("days must be a positive integer")
	}
	return days, nil
}

// BindJSON decodes the body into target, then applies its validate tags.
// Failures are reported as validation errors.
func BindJSON(c *gin.Context, target any) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return errors.NewValidationError("invalid request body", err.Error())
	}
	return utils.ValidateStruct(target)
}
