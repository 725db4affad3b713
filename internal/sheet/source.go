package sheet

import "context"

// Sheets is the raw cell grid of the three tabs a sync consumes.
type Sheets struct {
	Leads      [][]string
	Investment [][]string
	Goals      [][]string
}

// Source fetches the three tabs of a spreadsheet by its id.
type Source interface {
	FetchSheets(ctx context.Context, spreadsheetID string) (*Sheets, error)
}
