package syncer

import (
	"fmt"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/funnel"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"
)

// groupBy modes; any other value is read as a raw field name to group on.
const (
	GroupByQualified = "qualified"
	GroupByStatus    = "status"
	GroupByCampaign  = "campaign"
)

// DisplayName resolves the lead's name field, falling back to a synthetic
// "Lead {n}" (1-based) so a nameless row is never silently dropped.
func DisplayName(lead *sheet.LeadRecord, index int) string {
	if name := lead.Extract(sheet.NameAliases, sheet.NameFuzzy); name != "" {
		return name
	}
	return fmt.Sprintf("Lead %d", index+1)
}

/*
destination decides which group a lead lands in.

A lead the board has never seen goes to the intake group no matter what its
spreadsheet says; onboarding visibility beats whatever the ad platform
classified. Only existing leads are routed by groupBy.
*/
func (e *Engine) destination(lead *sheet.LeadRecord, isNew bool, groupBy string) string {
	if isNew {
		return e.intakeGroup
	}

	switch groupBy {
	case GroupByQualified, "":
		if funnel.IsQualified(funnel.QualificationOf(lead)) {
			return e.qualifiedGroup
		}
		return e.intakeGroup

	case GroupByStatus:
		if status := funnel.StatusOf(lead); status != "" {
			return status
		}
		return e.intakeGroup

	case GroupByCampaign:
		if campaign := lead.Extract(sheet.CampaignAliases, sheet.CampaignFuzzy); campaign != "" {
			return campaign
		}
		return e.intakeGroup

	default:
		// arbitrary field: group on its raw value
		if v := lead.Get(sheet.NormalizeHeader(groupBy)); v != "" {
			return v
		}
		return e.intakeGroup
	}
}
