package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/boardstore"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/funnel"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/syncer"
)

// Syncer is what the sync endpoint needs from the reconciliation engine.
type Syncer interface {
	SyncLeads(ctx context.Context, req *syncer.Request) (*syncer.Result, error)
}

// Snapshots loads the items already persisted on a board.
type Snapshots interface {
	GetItemsByBoard(ctx context.Context, boardID string) ([]boardstore.Item, error)
}

type Server struct {
	engine    Syncer
	source    sheet.Source
	snapshots Snapshots
	rowCap    int
	log       *logrus.Entry
}

func NewServer(engine Syncer, source sheet.Source, snapshots Snapshots, rowCap int) *Server {
	return &Server{
		engine:    engine,
		source:    source,
		snapshots: snapshots,
		rowCap:    rowCap,
		log:       logrus.WithField("component", "api"),
	}
}

func (s *Server) Routes(router *mux.Router) {
	router.HandleFunc("/sync-leads", s.SyncLeads).Methods(http.MethodPost)
	router.HandleFunc("/dashboard-metrics", s.DashboardMetrics).Methods(http.MethodGet)
}

type syncRequest struct {
	BoardID       string `json:"boardId"`
	SpreadsheetID string `json:"spreadsheetId"`
	GroupBy       string `json:"groupBy"`
	Actor         string `json:"actor"`
}

type syncResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	Groups           []string `json:"groups"`
	TotalLeads       int      `json:"totalLeads"`
	ProcessedLeads   int      `json:"processedLeads"`
	NewLeadsNotified int      `json:"newLeadsNotified"`
}

func (s *Server) SyncLeads(w http.ResponseWriter, r *http.Request) {
	req := &syncRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BoardID == "" || req.SpreadsheetID == "" {
		s.writeError(w, http.StatusBadRequest, "boardId and spreadsheetId are required")
		return
	}

	result, err := s.engine.SyncLeads(r.Context(), &syncer.Request{
		BoardID:       req.BoardID,
		SpreadsheetID: req.SpreadsheetID,
		GroupBy:       req.GroupBy,
		Actor:         req.Actor,
	})
	if err != nil {
		s.log.WithError(err).WithField("board", req.BoardID).Error("sync failed")
		switch {
		case errors.Is(err, syncer.ErrInvalidRequest), errors.Is(err, syncer.ErrEmptyDataset):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.writeJSON(w, http.StatusOK, &syncResponse{
		Success:          true,
		Message:          result.Message,
		Groups:           result.Groups,
		TotalLeads:       result.TotalLeads,
		ProcessedLeads:   result.ProcessedLeads,
		NewLeadsNotified: result.NewLeadsNotified,
	})
}

func (s *Server) DashboardMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spreadsheetID := q.Get("spreadsheetId")
	if spreadsheetID == "" {
		s.writeError(w, http.StatusBadRequest, "spreadsheetId is required")
		return
	}

	filters := funnel.Filters{
		DateStart:   q.Get("dateStart"),
		DateEnd:     q.Get("dateEnd"),
		Campaign:    q.Get("campaign"),
		Responsible: q.Get("responsible"),
	}
	if raw := q.Get("gastosTotal"); raw != "" {
		spend, err := sheet.ParseCurrency(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "gastosTotal is not a number")
			return
		}
		filters.TotalSpend = spend
	}

	sheets, err := s.source.FetchSheets(r.Context(), spreadsheetID)
	if err != nil {
		s.log.WithError(err).WithField("spreadsheet", spreadsheetID).Error("sheet fetch failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// without a boardId every lead counts as known; with one, stage and
	// qualification classification is scoped to what the board has seen
	var known funnel.KnownNames
	if boardID := q.Get("boardId"); boardID != "" && s.snapshots != nil {
		items, err := s.snapshots.GetItemsByBoard(r.Context(), boardID)
		if err != nil {
			s.log.WithError(err).WithField("board", boardID).Error("board read failed")
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		known = funnel.KnownNames{}
		for _, item := range items {
			known[sheet.NormalizeName(item.Name)] = true
		}
	}

	mapped := sheet.MapLeadRows(sheets.Leads, s.rowCap)
	dash := funnel.Calculate(
		mapped.Leads,
		sheet.ParseInvestments(sheets.Investment),
		funnel.GoalMap(sheet.ParseGoals(sheets.Goals)),
		filters,
		known,
	)

	s.writeJSON(w, http.StatusOK, dash)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("response encode failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
