package sheet

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultRowCap bounds per-sync work; a caller-side timeout is the only
// other thing limiting a runaway sheet.
const DefaultRowCap = 1000

// MapResult carries the mapped leads plus how many data rows were dropped by
// the cap. Truncation is reported, never silent.
type MapResult struct {
	Leads     []*LeadRecord
	Truncated int
}

// MapLeadRows zips row 0 (headers) with every data row into LeadRecords.
// Rows where every cell is blank are dropped. rowCap <= 0 means DefaultRowCap.
func MapLeadRows(rows [][]string, rowCap int) MapResult {
	if rowCap <= 0 {
		rowCap = DefaultRowCap
	}

	res := MapResult{}
	if len(rows) < 2 {
		return res
	}

	headers := rows[0]
	for _, row := range rows[1:] {
		rec := NewLeadRecord()
		for i, header := range headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			rec.Set(header, value)
		}
		if rec.IsEmpty() {
			continue
		}

		if len(res.Leads) >= rowCap {
			res.Truncated++
			continue
		}
		res.Leads = append(res.Leads, rec)
	}

	return res
}

// Investment is one row of the investment tab: how much was spent on a
// campaign on a given date.
type Investment struct {
	Campaign string
	Date     string
	Amount   float64
}

// ParseInvestments maps the investment tab (header row + data rows) into
// records. Unparseable amounts count as zero and are logged, per the numeric
// failure policy.
func ParseInvestments(rows [][]string) []Investment {
	out := []Investment{}
	if len(rows) < 2 {
		return out
	}

	campaignIdx, dateIdx, amountIdx := -1, -1, -1
	for i, h := range rows[0] {
		switch key := NormalizeHeader(h); {
		case strings.Contains(key, "campanha") || strings.Contains(key, "campaign"):
			campaignIdx = i
		case strings.Contains(key, "data") || strings.Contains(key, "date") || strings.Contains(key, "dia"):
			dateIdx = i
		case strings.Contains(key, "valor") || strings.Contains(key, "gasto") || strings.Contains(key, "investimento") || strings.Contains(key, "amount"):
			amountIdx = i
		}
	}
	if amountIdx < 0 {
		return out
	}

	for _, row := range rows[1:] {
		inv := Investment{}
		if campaignIdx >= 0 && campaignIdx < len(row) {
			inv.Campaign = strings.TrimSpace(row[campaignIdx])
		}
		if dateIdx >= 0 && dateIdx < len(row) {
			inv.Date = strings.TrimSpace(row[dateIdx])
		}
		if amountIdx < len(row) {
			amount, err := ParseCurrency(row[amountIdx])
			if err != nil {
				logrus.WithField("component", "sheet").
					WithField("raw", row[amountIdx]).
					Warn("unparseable investment amount, counting as 0")
			}
			inv.Amount = amount
		}
		if inv.Campaign == "" && inv.Amount == 0 {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// ParseGoals maps the goals tab into normalized goal name → target. Rows are
// (name, value) pairs; unparseable values are skipped.
func ParseGoals(rows [][]string) map[string]float64 {
	goals := map[string]float64{}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		key := NormalizeHeader(row[0])
		if key == "" || key == "meta" || key == "indicador" {
			// header row
			continue
		}
		value, err := ParseCurrency(row[1])
		if err != nil {
			logrus.WithField("component", "sheet").
				WithField("goal", row[0]).
				Warn("unparseable goal value, skipping")
			continue
		}
		goals[key] = value
	}
	return goals
}

var errBadNumber = errors.New("sheet: unparseable number")

/*
ParseCurrency reads pt-BR money strings ("R$ 1.234,56") as well as plain
dot-decimal numbers ("1234.56"). Percent signs are tolerated so goal tabs can
hold rate targets. Returns 0 plus an error when nothing numeric is left.
*/
func ParseCurrency(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.NewReplacer("R$", "", "r$", "", "%", "", " ", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return 0, errBadNumber
	}

	if strings.Contains(cleaned, ",") {
		// , is the decimal separator: drop thousands dots first
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if groups := strings.Split(cleaned, "."); len(groups) > 1 {
		// no comma: dots are pt-BR thousands separators when every group
		// after the first has exactly 3 digits ("2.000" → 2000), otherwise
		// the last one is a plain decimal point ("1234.56")
		thousands := true
		for _, g := range groups[1:] {
			if len(g) != 3 {
				thousands = false
				break
			}
		}
		if thousands {
			cleaned = strings.Join(groups, "")
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errBadNumber
	}
	return v, nil
}
