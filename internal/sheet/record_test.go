package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func recordFrom(pairs ...string) *LeadRecord {
	rec := NewLeadRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Set(pairs[i], pairs[i+1])
	}
	return rec
}

func TestExtractExactAliasWins(t *testing.T) {
	rec := recordFrom(
		"Nome", "Ana",
		"Instagram", "@ana",
	)

	assert.Equal(t, "Ana", rec.Extract([]string{"full_name", "nome"}, nil))
}

func TestExtractInstagramHeaderVariants(t *testing.T) {
	// every spelling the ad platforms have produced so far must resolve
	for _, header := range []string{
		"Instagram da empresa",
		"@_do_instagram_da_sua_empresa",
		"insta_handle",
	} {
		rec := recordFrom(header, "@loja")
		got := rec.Extract(InstagramAliases, InstagramFuzzy)
		assert.Equal(t, "@loja", got, "header %q", header)
	}
}

func TestExtractFuzzyBothDirections(t *testing.T) {
	// key contains substring
	rec := recordFrom("numero_do_whatsapp", "+55 11 99999-0000")
	assert.Equal(t, "+55 11 99999-0000", rec.Extract(nil, WhatsAppFuzzy))

	// substring contains key
	rec = recordFrom("fone", "+55 11 98888-0000")
	assert.Equal(t, "+55 11 98888-0000", rec.Extract(nil, []string{"telefone"}))
}

func TestExtractNoMatch(t *testing.T) {
	rec := recordFrom("qualquer_coisa", "x")
	assert.Equal(t, "", rec.Extract([]string{"nome"}, []string{"instagram"}))
}

func TestExtractSkipsEmptyValues(t *testing.T) {
	rec := recordFrom(
		"telefone", "",
		"celular", "+55 11 97777-0000",
	)
	assert.Equal(t, "+55 11 97777-0000", rec.Extract(WhatsAppAliases, WhatsAppFuzzy))
}

func TestExtractAdversarialHeaders(t *testing.T) {
	// "instagram" must not be swallowed by the phone lookup and vice versa
	rec := recordFrom(
		"Instagram da empresa", "@loja",
		"WhatsApp comercial", "+55 11 96666-0000",
		"lead_status", "Qualificado",
	)

	assert.Equal(t, "@loja", rec.Extract(InstagramAliases, InstagramFuzzy))
	assert.Equal(t, "+55 11 96666-0000", rec.Extract(WhatsAppAliases, WhatsAppFuzzy))
	assert.Equal(t, "Qualificado", rec.Extract(StatusAliases, StatusFuzzy))
}

func TestRecordOrderAndTrim(t *testing.T) {
	rec := recordFrom(
		"B Col", "  spaced  ",
		"A Col", "1",
	)
	assert.Equal(t, []string{"b_col", "a_col"}, rec.Keys())
	assert.Equal(t, "spaced", rec.Get("b_col"))
	assert.False(t, rec.IsEmpty())
	assert.True(t, NewLeadRecord().IsEmpty())
}
