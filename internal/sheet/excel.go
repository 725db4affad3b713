package sheet

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// WorkbookSource serves sheets from local .xlsx workbooks: spreadsheetID
// maps to <dir>/<spreadsheetID>.xlsx. Tab names are matched tolerantly so
// "Leads", "LEADS (jan)" and "Investimento Meta Ads" all resolve.
type WorkbookSource struct {
	dir string
	log *logrus.Entry
}

func NewWorkbookSource(dir string) *WorkbookSource {
	return &WorkbookSource{
		dir: dir,
		log: logrus.WithField("component", "workbook_source"),
	}
}

func (w *WorkbookSource) FetchSheets(ctx context.Context, spreadsheetID string) (*Sheets, error) {
	path := filepath.Join(w.dir, spreadsheetID+".xlsx")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := &Sheets{}
	for _, name := range f.GetSheetList() {
		key := NormalizeHeader(name)
		var dest *[][]string
		switch {
		case strings.Contains(key, "lead"):
			dest = &sheets.Leads
		case strings.Contains(key, "invest") || strings.Contains(key, "gasto"):
			dest = &sheets.Investment
		case strings.Contains(key, "meta") || strings.Contains(key, "goal"):
			dest = &sheets.Goals
		default:
			continue
		}
		if len(*dest) > 0 {
			// first matching tab wins
			continue
		}

		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		*dest = rows
	}

	w.log.WithFields(logrus.Fields{
		"spreadsheet": spreadsheetID,
		"leads_rows":  len(sheets.Leads),
		"inv_rows":    len(sheets.Investment),
		"goal_rows":   len(sheets.Goals),
	}).Debug("fetched workbook")

	return sheets, nil
}
