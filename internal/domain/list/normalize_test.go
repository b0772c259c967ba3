package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Indian Grocery", want: "indian grocery"},
		{in: "  Indian   GROCERY ", want: "indian grocery"},
		{in: "Straße", want: "strasse"},
		{in: "ｍｉｌｋ", want: "milk"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}
