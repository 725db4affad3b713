package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"
)

func lead(pairs ...string) *sheet.LeadRecord {
	rec := sheet.NewLeadRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Set(pairs[i], pairs[i+1])
	}
	return rec
}

func known(names ...string) KnownNames {
	k := KnownNames{}
	for _, n := range names {
		k[sheet.NormalizeName(n)] = true
	}
	return k
}

func TestQualificationPredicate(t *testing.T) {
	assert.True(t, IsQualified("QUALIFICADO"))
	assert.True(t, IsQualified("Lead Qualificado"))
	assert.True(t, IsQualified("sim"))
	assert.False(t, IsQualified("nao"))
	assert.False(t, IsQualified(""))
}

func TestStageKeywords(t *testing.T) {
	assert.True(t, IsScheduled("Agendado"))
	assert.True(t, IsScheduled("Reunião agendada"))
	assert.True(t, IsAttended("Compareci à reunião"))
	assert.True(t, IsAttended("Presente"))
	assert.True(t, IsClosed("Venda"))
	assert.True(t, IsClosed("Fechado"))
	assert.True(t, IsClosed("closed won"))
	assert.False(t, IsClosed("Aguardo"))
}

func TestInvestmentCascade(t *testing.T) {
	goals := GoalMap{"gastos_total": 500}
	sum := func() float64 { return 800 }

	// override wins
	assert.InDelta(t, 200, ResolveInvestment(200, goals, sum), 0.001)
	// then the goals tab
	assert.InDelta(t, 500, ResolveInvestment(0, goals, sum), 0.001)
	// then the summed rows
	assert.InDelta(t, 800, ResolveInvestment(0, GoalMap{}, sum), 0.001)
	// zero-valued goal entries don't win
	assert.InDelta(t, 800, ResolveInvestment(0, GoalMap{"gastos_total": 0}, sum), 0.001)
}

func TestInvestmentCascadeSpellingVariants(t *testing.T) {
	for _, key := range []string{"gasto_total", "investimento_total", "verba_total"} {
		got := ResolveInvestment(0, GoalMap{key: 123}, func() float64 { return 0 })
		assert.InDelta(t, 123, got, 0.001, "variant %s", key)
	}
}

func TestCalculateFunnelNewLeadsDontCount(t *testing.T) {
	leads := []*sheet.LeadRecord{
		lead("full_name", "Ana", "lead_status", "Venda"),
		lead("full_name", "Beto", "lead_status", "Aguardo"),
	}

	// no prior items: both leads are new, so "Venda" doesn't count as closed
	dash := Calculate(leads, nil, GoalMap{}, Filters{}, known())
	assert.Equal(t, 2, dash.Funnel.Leads)
	assert.Equal(t, 0, dash.Funnel.Closed)

	// once Ana is a known item her status counts
	dash = Calculate(leads, nil, GoalMap{}, Filters{}, known("Ana"))
	assert.Equal(t, 2, dash.Funnel.Leads)
	assert.Equal(t, 1, dash.Funnel.Closed)

	// nil snapshot treats everyone as known (dashboard path)
	dash = Calculate(leads, nil, GoalMap{}, Filters{}, nil)
	assert.Equal(t, 1, dash.Funnel.Closed)
}

func TestCalculateVolumesAndKPIs(t *testing.T) {
	leads := []*sheet.LeadRecord{
		lead("nome", "A", "qualificado", "SIM", "lead_status", "Agendado"),
		lead("nome", "B", "qualificado", "Qualificado", "lead_status", "Compareceu presente"),
		lead("nome", "C", "qualificado", "nao", "lead_status", "Venda"),
		lead("nome", "D"),
	}
	inv := []sheet.Investment{{Campaign: "x", Amount: 400}}

	dash := Calculate(leads, inv, GoalMap{}, Filters{}, nil)

	assert.Equal(t, 4, dash.Funnel.Leads)
	assert.Equal(t, 2, dash.Funnel.Qualified)
	assert.Equal(t, 1, dash.Funnel.Scheduled)
	assert.Equal(t, 1, dash.Funnel.Attended)
	assert.Equal(t, 1, dash.Funnel.Closed)

	assert.InDelta(t, 400, dash.Investment, 0.001)
	assert.InDelta(t, 100, dash.KPIs["cpl"].Value, 0.001)  // 400/4
	assert.InDelta(t, 200, dash.KPIs["cpql"].Value, 0.001) // 400/2
	assert.InDelta(t, 400, dash.KPIs["cac"].Value, 0.001)  // 400/1

	// zero denominator yields 0, not a division blowup
	empty := Calculate(nil, inv, GoalMap{}, Filters{}, nil)
	assert.Zero(t, empty.KPIs["cpl"].Value)
}

func TestCalculateConversionStatus(t *testing.T) {
	leads := []*sheet.LeadRecord{
		lead("nome", "A", "qualificado", "SIM"),
		lead("nome", "B", "qualificado", "nao"),
	}

	dash := Calculate(leads, nil, GoalMap{"taxa_qualificacao": 40}, Filters{}, nil)
	conv := dash.Conversion["qualificacao"]
	assert.InDelta(t, 50, conv.Rate, 0.001)
	assert.InDelta(t, 40, conv.Goal, 0.001)
	assert.Equal(t, "dentro", conv.Status)

	dash = Calculate(leads, nil, GoalMap{"taxa_qualificacao": 60}, Filters{}, nil)
	assert.Equal(t, "abaixo", dash.Conversion["qualificacao"].Status)
}

func TestCalculateFilters(t *testing.T) {
	leads := []*sheet.LeadRecord{
		lead("nome", "A", "data", "2026-01-10", "campanha", "Promo Verão", "responsavel", "Carla"),
		lead("nome", "B", "data", "15/02/2026", "campanha", "Institucional", "responsavel", "Davi"),
		lead("nome", "C", "data", "sem data", "campanha", "Promo Verão", "responsavel", "Carla"),
	}

	// date window keeps the January lead and the unparseable one
	dash := Calculate(leads, nil, GoalMap{}, Filters{DateStart: "2026-01-01", DateEnd: "31/01/2026"}, nil)
	assert.Equal(t, 2, dash.Funnel.Leads)

	// campaign substring
	dash = Calculate(leads, nil, GoalMap{}, Filters{Campaign: "promo"}, nil)
	assert.Equal(t, 2, dash.Funnel.Leads)

	// responsible exact, case-insensitive
	dash = Calculate(leads, nil, GoalMap{}, Filters{Responsible: "carla"}, nil)
	assert.Equal(t, 2, dash.Funnel.Leads)
}

func TestAttributionTables(t *testing.T) {
	leads := []*sheet.LeadRecord{
		lead("nome", "A", "responsavel", "Carla", "lead_status", "Venda", "campanha", "Promo", "nome_do_anuncio", "Video 1", "publico", "Lookalike"),
		lead("nome", "B", "responsavel", "Carla", "lead_status", "Aguardo", "campanha", "Promo", "nome_do_anuncio", "Video 1", "publico", "Lookalike", "qualificado", "SIM"),
		lead("nome", "C", "responsavel", "Davi", "lead_status", "Aguardo", "campanha", "Outra", "nome_do_anuncio", "Video 2"),
	}
	inv := []sheet.Investment{
		{Campaign: "Promo Video 1", Amount: 300},
		{Campaign: "Outra", Amount: 100},
	}

	dash := Calculate(leads, inv, GoalMap{}, Filters{}, nil)

	require.Len(t, dash.Responsaveis, 2)
	carla := dash.Responsaveis[0]
	assert.Equal(t, "Carla", carla.Name)
	assert.Equal(t, 2, carla.Leads)
	assert.Equal(t, 1, carla.Closed)
	assert.InDelta(t, 50, carla.CloseRate, 0.001)

	require.Len(t, dash.Campanhas, 2)
	promo := dash.Campanhas[0]
	assert.Equal(t, "Promo", promo.Name)
	assert.Equal(t, 2, promo.Leads)
	assert.InDelta(t, 300, promo.Spend, 0.001) // "Promo" ⊂ "Promo Video 1"
	assert.InDelta(t, 150, promo.CPL, 0.001)

	// only entities with at least one qualified lead make the champions
	require.Len(t, dash.Anuncios, 1)
	assert.Equal(t, "Video 1", dash.Anuncios[0].Name)
	assert.Equal(t, 1, dash.Anuncios[0].Qualified)
	assert.InDelta(t, 300, dash.Anuncios[0].Spend, 0.001)

	require.Len(t, dash.Publicos, 1)
	assert.Equal(t, "Lookalike", dash.Publicos[0].Name)
}

func TestGoalLookup(t *testing.T) {
	g := GoalMap{"cpl": 75, "zero": 0}
	assert.InDelta(t, 75, g.Lookup(50, "cpl"), 0.001)
	assert.InDelta(t, 50, g.Lookup(50, "missing"), 0.001)
	assert.InDelta(t, 50, g.Lookup(50, "zero"), 0.001)
	assert.InDelta(t, 75, g.Lookup(50, "missing", "cpl"), 0.001)
}
