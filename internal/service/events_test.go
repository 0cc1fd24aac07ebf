package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jakarta Music Festival", "jakarta-music-festival"},
		{"  Go  Conf 2026! ", "go-conf-2026"},
		{"UPPER lower", "upper-lower"},
		{"---", ""},
		{"konser: spesial & meriah", "konser-spesial-meriah"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, slugify(tc.in), "slugify(%q)", tc.in)
	}
}
