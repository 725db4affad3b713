package funnel

// GoalMap is the goals tab after parsing: normalized goal name → target.
type GoalMap map[string]float64

// Default targets used when the goals tab doesn't carry one.
const (
	DefaultGoalCPL  = 50
	DefaultGoalCPQL = 100
	DefaultGoalCPA  = 150
	DefaultGoalCPC  = 200
	DefaultGoalCAC  = 500

	DefaultRateQualified = 30 // % of leads that should qualify
	DefaultRateScheduled = 50
	DefaultRateAttended  = 60
	DefaultRateClosed    = 30
)

// spelling variants people use for the total-spend goal row, tried in order
var totalSpendGoalKeys = []string{
	"gastos_total",
	"gasto_total",
	"gastos_totais",
	"total_gastos",
	"investimento_total",
	"total_investido",
	"investimento",
	"verba_total",
	"orcamento_total",
}

// Lookup returns the first strictly-positive value among the named keys,
// falling back to def.
func (g GoalMap) Lookup(def float64, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := g[key]; ok && v > 0 {
			return v
		}
	}
	return def
}

/*
investmentResolver is one step of the total-spend cascade. Resolvers run in
order and the first strictly-positive answer wins; the cascade replaces the
`||` chains the heuristic grew out of so each step is testable on its own.
*/
type investmentResolver func() float64

// ResolveInvestment runs the spend cascade: caller override → goals-tab
// total → summed investment rows. sumRows is called lazily, last.
func ResolveInvestment(override float64, goals GoalMap, sumRows func() float64) float64 {
	resolvers := []investmentResolver{
		func() float64 { return override },
		func() float64 { return goals.Lookup(0, totalSpendGoalKeys...) },
		sumRows,
	}

	for _, resolve := range resolvers {
		if v := resolve(); v > 0 {
			return v
		}
	}
	return 0
}
