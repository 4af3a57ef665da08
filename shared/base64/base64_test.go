package base64_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/shared/base64"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png data url", input: "data:image/png;base64,iVBORw0KGgo=", expected: "image/png"},
		{name: "jpeg data url", input: "data:image/jpeg;base64,/9j/4AAQ", expected: "image/jpeg"},
		{name: "missing marker", input: "image/png", expected: ""},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}
