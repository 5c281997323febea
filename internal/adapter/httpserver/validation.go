package httpserver

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

// ValidationError represents a single request validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validating request input.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidateSocialID validates an identity-provider id from path or query.
func ValidateSocialID(socialID string) ValidationResult {
	if socialID == "" {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{
					Field:   "socialId",
					Code:    "REQUIRED",
					Message: "Social ID is required",
				},
			},
		}
	}

	if len(socialID) > 100 {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{
					Field:   "socialId",
					Code:    "TOO_LONG",
					Message: "Social ID is too long (max 100 characters)",
				},
			},
		}
	}

	return ValidationResult{Valid: true}
}

// ValidatePagination validates offset/limit query parameters.
func ValidatePagination(offset, limit string) ValidationResult {
	var errors []ValidationError

	if offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			errors = append(errors, ValidationError{
				Field:   "offset",
				Code:    "INVALID_FORMAT",
				Message: "Offset must be a non-negative integer",
			})
		}
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			errors = append(errors, ValidationError{
				Field:   "limit",
				Code:    "INVALID_FORMAT",
				Message: "Limit must be a positive integer",
			})
		}
	}

	if len(errors) > 0 {
		return ValidationResult{
			Valid:  false,
			Errors: errors,
		}
	}

	return ValidationResult{Valid: true}
}

// ValidateApplicationStatus validates a pipeline status value.
func ValidateApplicationStatus(status string) ValidationResult {
	if domain.ValidApplicationStatus(domain.ApplicationStatus(status)) {
		return ValidationResult{Valid: true}
	}

	return ValidationResult{
		Valid: false,
		Errors: []ValidationError{
			{
				Field:   "status",
				Code:    "INVALID_VALUE",
				Message: "Status must be one of: pending, reviewed, shortlisted, scheduled_for_interview, interviewed, rejected, hired",
			},
		},
	}
}

// SanitizeString sanitizes a free-text string input.
func SanitizeString(input string) string {
	// Remove null bytes and control characters
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	// Limit length to prevent DoS
	if len(input) > 1000 {
		input = input[:1000]
	}

	// Ensure valid UTF-8
	if !utf8.ValidString(input) {
		input = strings.ToValidUTF8(input, "")
	}

	return input
}
