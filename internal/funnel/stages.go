package funnel

import (
	"strings"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"
)

// Stage keyword tables. Portuguese-centric on purpose: the sheets this
// system ingests are produced by pt-BR sales teams, and the matching is
// substring-based so conjugations ("agendou", "agendada") fall in. A locale
// swap is an edit to these slices only.
var (
	scheduledKeywords = []string{"agend"}
	attendedKeywords  = []string{"compareci", "presente"}
	closedKeywords    = []string{"venda", "fechad", "vendido", "closed"}
)

// IsQualified is the qualification predicate: the field contains
// "QUALIFICADO" or is exactly "SIM", case-insensitive.
func IsQualified(value string) bool {
	v := strings.ToUpper(strings.TrimSpace(value))
	return v == "SIM" || strings.Contains(v, "QUALIFICADO")
}

func matchesStage(value string, keywords []string) bool {
	key := sheet.NormalizeHeader(value)
	if key == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// IsScheduled reports whether a status/stage value means an appointment was
// booked.
func IsScheduled(value string) bool { return matchesStage(value, scheduledKeywords) }

// IsAttended reports whether the lead showed up.
func IsAttended(value string) bool { return matchesStage(value, attendedKeywords) }

// IsClosed reports whether the lead converted into a sale.
func IsClosed(value string) bool { return matchesStage(value, closedKeywords) }

// StatusOf pulls the stage field out of a lead.
func StatusOf(lead *sheet.LeadRecord) string {
	return lead.Extract(sheet.StatusAliases, sheet.StatusFuzzy)
}

// QualificationOf pulls the qualification field out of a lead.
func QualificationOf(lead *sheet.LeadRecord) string {
	return lead.Extract(sheet.QualifiedAliases, sheet.QualifiedFuzzy)
}
