package utils

import (
	"errors"
	"testing"
)

func TestErrorWrappers(t *testing.T) {
	originalErr := errors.New("original error")

	tests := []struct {
		name     string
		wrapper  func(string, error) error
		item     string
		expected string
	}{
		{
			name:     "WrapParseError",
			wrapper:  WrapParseError,
			item:     "go.mod",
			expected: "failed to parse go.mod: original error",
		},
		{
			name:     "WrapLoadError",
			wrapper:  WrapLoadError,
			item:     "package",
			expected: "failed to load package: original error",
		},
		{
			name:     "WrapCreateError",
			wrapper:  WrapCreateError,
			item:     "output file",
			expected: "failed to create output file: original error",
		},
		{
			name:     "WrapProcessError",
			wrapper:  WrapProcessError,
			item:     "directory",
			expected: "failed to process directory: original error",
		},
		{
			name:     "WrapResolveError",
			wrapper:  WrapResolveError,
			item:     "import path",
			expected: "failed to resolve import path: original error",
		},
		{
			name:     "WrapWriteError",
			wrapper:  WrapWriteError,
			item:     "descriptors",
			expected: "failed to write descriptors: original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.wrapper(tt.item, originalErr)
			if result.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result.Error())
			}

			// Test that the error can be unwrapped
			if !errors.Is(result, originalErr) {
				t.Errorf("wrapped error should be unwrappable to original error")
			}
		})
	}
}

func TestErrorWrappersWithEmptyItem(t *testing.T) {
	originalErr := errors.New("test error")

	result := WrapParseError("", originalErr)
	expected := "failed to parse : test error"

	if result.Error() != expected {
		t.Errorf("expected %q, got %q", expected, result.Error())
	}
}
