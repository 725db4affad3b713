package funnel

import (
	"sort"
	"strings"
	"time"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"
)

// Filters narrows the dashboard window. Zero values mean "no filter".
type Filters struct {
	DateStart   string // ISO or DD/MM/YYYY
	DateEnd     string
	Campaign    string // substring match on the lead's campaign field
	Responsible string // exact, case-insensitive
	// TotalSpend overrides the investment cascade when > 0.
	TotalSpend float64
}

/*
KnownNames is the snapshot of item names already persisted on the board,
keyed by sheet.NormalizeName. Stage and qualification classification only
applies to leads the board has seen: a brand-new lead lands in intake no
matter what its status cell says, so its status doesn't count toward the
funnel either. A nil KnownNames treats every lead as known.
*/
type KnownNames map[string]bool

func (k KnownNames) contains(name string) bool {
	if k == nil {
		return true
	}
	return k[sheet.NormalizeName(name)]
}

type Funnel struct {
	Leads     int `json:"leads"`
	Qualified int `json:"qualificados"`
	Scheduled int `json:"agendados"`
	Attended  int `json:"compareceram"`
	Closed    int `json:"vendas"`
}

type KPI struct {
	Value  float64 `json:"valor"`
	Goal   float64 `json:"meta"`
	Status string  `json:"status"` // dentro = at or under the cost target
}

type Conversion struct {
	Rate   float64 `json:"taxa"` // percent
	Goal   float64 `json:"meta"`
	Status string  `json:"status"` // dentro | abaixo
}

type ResponsibleRow struct {
	Name      string  `json:"nome"`
	Leads     int     `json:"leads"`
	Closed    int     `json:"vendas"`
	CloseRate float64 `json:"taxa_fechamento"`
}

type CampaignRow struct {
	Name  string  `json:"nome"`
	Spend float64 `json:"investimento"`
	Leads int     `json:"leads"`
	CPL   float64 `json:"cpl"`
}

// ChampionRow is a top-N attribution row for ads/audiences with at least one
// qualified lead.
type ChampionRow struct {
	Name      string  `json:"nome"`
	Leads     int     `json:"leads"`
	Qualified int     `json:"qualificados"`
	Spend     float64 `json:"investimento"`
}

type Dashboard struct {
	KPIs         map[string]KPI        `json:"kpis"`
	Funnel       Funnel                `json:"funnel"`
	Conversion   map[string]Conversion `json:"conversion"`
	Responsaveis []ResponsibleRow      `json:"responsaveis"`
	Campanhas    []CampaignRow         `json:"campanhas"`
	Anuncios     []ChampionRow         `json:"anuncios"`
	Publicos     []ChampionRow         `json:"publicos"`
	Investment   float64               `json:"investimento"`
}

// Calculate derives the whole dashboard from mapped leads, investment rows
// and the goal map. Pure: no shared state, safe to call concurrently.
func Calculate(leads []*sheet.LeadRecord, investments []sheet.Investment, goals GoalMap, filters Filters, known KnownNames) *Dashboard {
	filtered := applyFilters(leads, filters)

	funnel := Funnel{Leads: len(filtered)}
	for _, lead := range filtered {
		name := lead.Extract(sheet.NameAliases, sheet.NameFuzzy)
		if !known.contains(name) {
			continue
		}

		if IsQualified(QualificationOf(lead)) {
			funnel.Qualified++
		}
		status := StatusOf(lead)
		if IsScheduled(status) {
			funnel.Scheduled++
		}
		if IsAttended(status) {
			funnel.Attended++
		}
		if IsClosed(status) {
			funnel.Closed++
		}
	}

	investment := ResolveInvestment(filters.TotalSpend, goals, func() float64 {
		return sumInvestments(investments, filters.Campaign)
	})

	dash := &Dashboard{
		Funnel:     funnel,
		Investment: investment,
		KPIs: map[string]KPI{
			"cpl":  costKPI(investment, funnel.Leads, goals.Lookup(DefaultGoalCPL, "cpl", "custo_por_lead")),
			"cpql": costKPI(investment, funnel.Qualified, goals.Lookup(DefaultGoalCPQL, "cpql", "custo_por_lead_qualificado")),
			"cpa":  costKPI(investment, funnel.Scheduled, goals.Lookup(DefaultGoalCPA, "cpa", "custo_por_agendamento")),
			"cpc":  costKPI(investment, funnel.Attended, goals.Lookup(DefaultGoalCPC, "cpc", "custo_por_comparecimento")),
			"cac":  costKPI(investment, funnel.Closed, goals.Lookup(DefaultGoalCAC, "cac", "custo_por_venda", "custo_por_aquisicao")),
		},
		Conversion: map[string]Conversion{
			"qualificacao":   conversion(funnel.Qualified, funnel.Leads, goals.Lookup(DefaultRateQualified, "taxa_qualificacao")),
			"agendamento":    conversion(funnel.Scheduled, funnel.Qualified, goals.Lookup(DefaultRateScheduled, "taxa_agendamento")),
			"comparecimento": conversion(funnel.Attended, funnel.Scheduled, goals.Lookup(DefaultRateAttended, "taxa_comparecimento")),
			"fechamento":     conversion(funnel.Closed, funnel.Attended, goals.Lookup(DefaultRateClosed, "taxa_fechamento")),
		},
	}

	dash.Responsaveis = responsibleTable(filtered, known)
	dash.Campanhas = campaignTable(filtered, investments)
	dash.Anuncios = championTable(filtered, investments, known, sheet.AdAliases, sheet.AdFuzzy)
	dash.Publicos = championTable(filtered, investments, known, sheet.AudienceAliases, sheet.AudienceFuzzy)

	return dash
}

func applyFilters(leads []*sheet.LeadRecord, f Filters) []*sheet.LeadRecord {
	start, hasStart := parseDate(f.DateStart)
	end, hasEnd := parseDate(f.DateEnd)
	campaign := strings.ToLower(strings.TrimSpace(f.Campaign))
	responsible := strings.ToLower(strings.TrimSpace(f.Responsible))

	out := []*sheet.LeadRecord{}
	for _, lead := range leads {
		if hasStart || hasEnd {
			if when, ok := parseDate(lead.Extract(sheet.DateAliases, sheet.DateFuzzy)); ok {
				if hasStart && when.Before(start) {
					continue
				}
				if hasEnd && when.After(end.Add(24*time.Hour-time.Nanosecond)) {
					continue
				}
			}
			// unparseable lead dates are kept, not dropped
		}

		if campaign != "" {
			c := strings.ToLower(lead.Extract(sheet.CampaignAliases, sheet.CampaignFuzzy))
			if !strings.Contains(c, campaign) {
				continue
			}
		}

		if responsible != "" {
			r := strings.ToLower(strings.TrimSpace(lead.Extract(sheet.ResponsibleAliases, sheet.ResponsibleFuzzy)))
			if r != responsible {
				continue
			}
		}

		out = append(out, lead)
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sumInvestments(investments []sheet.Investment, campaign string) float64 {
	campaign = strings.ToLower(strings.TrimSpace(campaign))
	total := 0.0
	for _, inv := range investments {
		if campaign != "" && !strings.Contains(strings.ToLower(inv.Campaign), campaign) {
			continue
		}
		total += inv.Amount
	}
	return total
}

func costKPI(investment float64, volume int, goal float64) KPI {
	kpi := KPI{Goal: goal}
	if volume > 0 {
		kpi.Value = investment / float64(volume)
	}
	if kpi.Value <= goal {
		kpi.Status = "dentro"
	} else {
		kpi.Status = "acima"
	}
	return kpi
}

func conversion(num, den int, goal float64) Conversion {
	c := Conversion{Goal: goal}
	if den > 0 {
		c.Rate = float64(num) / float64(den) * 100
	}
	if c.Rate >= goal {
		c.Status = "dentro"
	} else {
		c.Status = "abaixo"
	}
	return c
}

func responsibleTable(leads []*sheet.LeadRecord, known KnownNames) []ResponsibleRow {
	byName := map[string]*ResponsibleRow{}
	order := []string{}

	for _, lead := range leads {
		name := strings.TrimSpace(lead.Extract(sheet.ResponsibleAliases, sheet.ResponsibleFuzzy))
		if name == "" {
			continue
		}
		row, ok := byName[name]
		if !ok {
			row = &ResponsibleRow{Name: name}
			byName[name] = row
			order = append(order, name)
		}
		row.Leads++
		if known.contains(lead.Extract(sheet.NameAliases, sheet.NameFuzzy)) && IsClosed(StatusOf(lead)) {
			row.Closed++
		}
	}

	out := make([]ResponsibleRow, 0, len(order))
	for _, name := range order {
		row := byName[name]
		if row.Leads > 0 {
			row.CloseRate = float64(row.Closed) / float64(row.Leads) * 100
		}
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Closed > out[j].Closed })
	return out
}

func campaignTable(leads []*sheet.LeadRecord, investments []sheet.Investment) []CampaignRow {
	byName := map[string]*CampaignRow{}
	order := []string{}

	for _, lead := range leads {
		name := strings.TrimSpace(lead.Extract(sheet.CampaignAliases, sheet.CampaignFuzzy))
		if name == "" {
			continue
		}
		row, ok := byName[name]
		if !ok {
			row = &CampaignRow{Name: name, Spend: attributedSpend(investments, name)}
			byName[name] = row
			order = append(order, name)
		}
		row.Leads++
	}

	out := make([]CampaignRow, 0, len(order))
	for _, name := range order {
		row := byName[name]
		if row.Leads > 0 {
			row.CPL = row.Spend / float64(row.Leads)
		}
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Leads > out[j].Leads })
	return out
}

func championTable(leads []*sheet.LeadRecord, investments []sheet.Investment, known KnownNames, aliases, fuzzy []string) []ChampionRow {
	byName := map[string]*ChampionRow{}
	order := []string{}

	for _, lead := range leads {
		name := strings.TrimSpace(lead.Extract(aliases, fuzzy))
		if name == "" {
			continue
		}
		row, ok := byName[name]
		if !ok {
			row = &ChampionRow{Name: name, Spend: attributedSpend(investments, name)}
			byName[name] = row
			order = append(order, name)
		}
		row.Leads++
		if known.contains(lead.Extract(sheet.NameAliases, sheet.NameFuzzy)) && IsQualified(QualificationOf(lead)) {
			row.Qualified++
		}
	}

	out := []ChampionRow{}
	for _, name := range order {
		if row := byName[name]; row.Qualified > 0 {
			out = append(out, *row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Qualified > out[j].Qualified })

	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// attributedSpend sums investment rows whose campaign name and the entity
// name contain each other, either direction.
func attributedSpend(investments []sheet.Investment, name string) float64 {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return 0
	}

	total := 0.0
	for _, inv := range investments {
		hay := strings.ToLower(strings.TrimSpace(inv.Campaign))
		if hay == "" {
			continue
		}
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			total += inv.Amount
		}
	}
	return total
}
