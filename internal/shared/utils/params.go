package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/id"
)

// ParseSIDParam parses and validates a prefixed ID from a URL path parameter.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

// ParseUintParam parses a positive integer path parameter.
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}
	return uint(n), nil
}

// ParseUUIDParam parses a UUID path parameter.
func ParseUUIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	raw := c.Param(paramName)
	if !id.IsUUID(raw) {
		return "", errors.NewValidationError(fmt.Sprintf("invalid %s ID", entityName))
	}
	return raw, nil
}
