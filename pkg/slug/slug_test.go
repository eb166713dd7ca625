package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Slim Fit Shirt", "slim-fit-shirt"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"extra whitespace", "  spaced   out  ", "spaced-out"},
		{"numbers kept", "iPhone 15 Pro", "iphone-15-pro"},
		{"leading trailing symbols", "--fancy--", "fancy"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "sample-product-abc123", WithSuffix("Sample Product", "abc123"))
	assert.Equal(t, "abc123", WithSuffix("", "abc123"))
}
