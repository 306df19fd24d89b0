package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Size limits (in bytes)
const (
	MaxMessageSize = 16 * 1024
	MaxPathLength  = 4096
	MaxIDLength    = 128
)

// OperationNamePattern allows lowercase letters, digits and underscores
var OperationNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateMessage validates a chat message
func ValidateMessage(message string) error {
	if err := ValidateString(message, "message", 1, MaxMessageSize, true); err != nil {
		return err
	}

	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}

	return nil
}

// ValidateOperationName validates an action name before catalog lookup
func ValidateOperationName(name string) error {
	if err := ValidateString(name, "action", 1, MaxIDLength, true); err != nil {
		return err
	}

	if !OperationNamePattern.MatchString(name) {
		return fmt.Errorf("action contains invalid characters (only lowercase letters, digits and underscores allowed)")
	}

	return nil
}

// ValidatePath validates an optional path supplied by a caller
func ValidatePath(path, fieldName string) error {
	return ValidateString(path, fieldName, 0, MaxPathLength, false)
}
