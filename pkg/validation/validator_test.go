package validation

import (
	"strings"
	"testing"
)

type edgeList struct {
	Edges [][]int `validate:"dive,len=2"`
}

type runSection struct {
	Workers  int    `validate:"min=0,max=1024"`
	LogLevel string `validate:"omitempty,oneof=debug info warn error"`
	Name     string `validate:"required"`
}

// TestStruct tests struct tag validation and error formatting
func TestStruct(t *testing.T) {
	tests := []struct {
		name        string
		value       any
		expectError bool
		errorText   string
	}{
		{"Valid run section", &runSection{Workers: 4, LogLevel: "info", Name: "a"}, false, ""},
		{"Missing name", &runSection{Workers: 4}, true, "Name: field is required"},
		{"Negative workers", &runSection{Workers: -1, Name: "a"}, true, "Workers: must be at least 0"},
		{"Too many workers", &runSection{Workers: 5000, Name: "a"}, true, "Workers: must not exceed 1024"},
		{"Unknown level", &runSection{LogLevel: "trace", Name: "a"}, true, "must be one of [debug info warn error]"},
		{"Valid edges", &edgeList{Edges: [][]int{{0, 1}, {2, 3}}}, false, ""},
		{"Edge with three endpoints", &edgeList{Edges: [][]int{{0, 1}, {1, 2, 3}}}, true, "must have exactly 2 elements"},
		{"Nil value", nil, true, "cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.value)
			if tt.expectError && err == nil {
				t.Fatal("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if tt.expectError && !strings.Contains(err.Error(), tt.errorText) {
				t.Errorf("Expected error containing %q, got: %v", tt.errorText, err)
			}
		})
	}
}

// TestValidateName tests scenario and mask name validation
func TestValidateName(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		expectError bool
	}{
		{"Simple", "scenario-a", false},
		{"With dots and underscores", "grid_v1.2", false},
		{"Digit first", "2024-run", false},
		{"Empty", "", true},
		{"Leading dash", "-x", true},
		{"Spaces", "my scenario", true},
		{"Markup", "<script>", true},
		{"Too long", strings.Repeat("a", MaxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.value)
			if tt.expectError && err == nil {
				t.Errorf("Expected error for name %q", tt.value)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error for name %q, got: %v", tt.value, err)
			}
		})
	}
}

func TestValidateNodeCount(t *testing.T) {
	for _, n := range []int{0, 1, MaxNodes} {
		if err := ValidateNodeCount(n); err != nil {
			t.Errorf("ValidateNodeCount(%d) error: %v", n, err)
		}
	}
	for _, n := range []int{-1, MaxNodes + 1} {
		if err := ValidateNodeCount(n); err == nil {
			t.Errorf("ValidateNodeCount(%d) should fail", n)
		}
	}
}

func TestValidateMaskLength(t *testing.T) {
	if err := ValidateMaskLength([]bool{true, false}, 2); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateMaskLength([]bool{true}, 2); err == nil {
		t.Error("Expected error for short mask")
	}
	if err := ValidateMaskLength(nil, 0); err != nil {
		t.Errorf("Empty mask for empty system should pass: %v", err)
	}
}

func TestValidateIndices(t *testing.T) {
	tests := []struct {
		name        string
		indices     []int
		n           int
		expectError bool
	}{
		{"Empty", nil, 3, false},
		{"In range", []int{0, 2}, 3, false},
		{"Negative", []int{-1}, 3, true},
		{"Too large", []int{3}, 3, true},
		{"Duplicate", []int{1, 1}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIndices(tt.indices, tt.n)
			if tt.expectError != (err != nil) {
				t.Errorf("ValidateIndices(%v, %d) error = %v, expectError %v", tt.indices, tt.n, err, tt.expectError)
			}
		})
	}
}
