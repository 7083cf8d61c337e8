package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Titleist", "titleist"},
		{"TSR3 Driver", "tsr3-driver"},
		{"G/FORE ", "g-fore"},
		{"Levi's", "levi-s"},
		{"  Bang & Olufsen  ", "bang-olufsen"},
		{"MG4+1", "mg4-1"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "input %q", tt.in)
	}
}

func TestNewID_Unique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
