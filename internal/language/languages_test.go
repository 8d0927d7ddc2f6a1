package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "english", code: "en", want: true},
		{name: "simplified chinese uses region suffix", code: "zh-cn", want: true},
		{name: "unknown code", code: "xx", want: false},
		{name: "empty code", code: "", want: false},
		{name: "display name is not a code", code: "Spanish", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.code))
		})
	}
}

func TestSupportedSize(t *testing.T) {
	assert.Len(t, Supported, 20)
}
