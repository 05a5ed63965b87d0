package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation limits for scenario files
	MaxNodes      = 1_000_000
	MaxMasks      = 100_000
	MaxWorkers    = 1024
	MaxNameLength = 100

	// Scenario and mask names end up in log fields and report keys
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
)

func init() {
	validate = validator.New()
}

// Struct validates v against its `validate` struct tags and reports the
// first violation in a readable form.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateName checks a scenario or mask name.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("name '%s' exceeds maximum length of %d characters", name, MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("name '%s' is invalid (must start with a letter or digit, followed by letters, digits, '_', '.' or '-')", name)
	}
	return nil
}

// ValidateNodeCount checks the size of the node index space.
func ValidateNodeCount(n int) error {
	if n < 0 {
		return fmt.Errorf("node count must not be negative, got %d", n)
	}
	if n > MaxNodes {
		return fmt.Errorf("node count must not exceed %d, got %d", MaxNodes, n)
	}
	return nil
}

// ValidateMaskLength checks that an alive mask covers exactly n nodes.
func ValidateMaskLength(mask []bool, n int) error {
	if len(mask) != n {
		return fmt.Errorf("mask has %d entries, system has %d nodes", len(mask), n)
	}
	return nil
}

// ValidateIndices checks that every index lies in [0, n) and appears once.
func ValidateIndices(indices []int, n int) error {
	seen := make(map[int]struct{}, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return fmt.Errorf("index %d at position %d is outside [0, %d)", idx, i, n)
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("index %d is listed more than once", idx)
		}
		seen[idx] = struct{}{}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "len":
			return fmt.Errorf("%s: must have exactly %s elements", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
