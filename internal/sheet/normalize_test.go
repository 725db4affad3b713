package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Full Name", "full_name"},
		{"  Validação  ", "validacao"},
		{"Instagram da empresa", "instagram_da_empresa"},
		{"@ do Instagram da sua empresa", "@_do_instagram_da_sua_empresa"},
		{"TELEFONE   /  Celular", "telefone_/_celular"},
		{"ção çÇ áéíóú", "cao_cc_aeiou"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeHeader(tc.in), "header %q", tc.in)
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, NormalizeName("Ana  Silva"), NormalizeName("ana silva"))
	assert.Equal(t, NormalizeName("  BETO "), NormalizeName("beto"))
	// diacritics are kept for names
	assert.NotEqual(t, NormalizeName("Ana"), NormalizeName("Anã"))
}
