package syncer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/boardstore"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/notify"
	"github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"
)

/*
Engine reconciles the leads sheet against the board model: ensures the
default columns and destination groups exist, upserts items and their column
values, prunes items the sheet no longer carries, and hands newly-seen leads
to the notifier.

One invocation is a single sequential batch; the engine assumes one writer
per board. Callers running concurrent syncs for the same board must
serialize them or the idempotency guarantees don't hold.
*/
type Engine struct {
	store    boardstore.Store
	source   sheet.Source
	notifier notify.Notifier

	intakeGroup    string
	qualifiedGroup string
	rowCap         int

	log *logrus.Entry
}

type Config struct {
	Store    boardstore.Store
	Source   sheet.Source
	Notifier notify.Notifier

	IntakeGroup    string // default "New"
	QualifiedGroup string // default "Qualified"
	RowCap         int    // default sheet.DefaultRowCap
}

func NewEngine(conf *Config) *Engine {
	e := &Engine{
		store:          conf.Store,
		source:         conf.Source,
		notifier:       conf.Notifier,
		intakeGroup:    conf.IntakeGroup,
		qualifiedGroup: conf.QualifiedGroup,
		rowCap:         conf.RowCap,
		log:            logrus.WithField("component", "syncer"),
	}
	if e.intakeGroup == "" {
		e.intakeGroup = "New"
	}
	if e.qualifiedGroup == "" {
		e.qualifiedGroup = "Qualified"
	}
	return e
}

// Request is one sync invocation. Actor attributes created items; it is
// threaded through explicitly rather than read from any ambient identity.
type Request struct {
	BoardID       string
	SpreadsheetID string
	GroupBy       string // default GroupByQualified
	Actor         string
}

type Result struct {
	Groups           []string
	TotalLeads       int
	ProcessedLeads   int
	NewLeads         int
	NewLeadsNotified int
	SkippedWrites    int
	TruncatedRows    int
	Message          string
}

// classified is one mapped lead with its identity decision attached. The
// decision is made against the snapshot taken at sync start, before any
// mutation, so a lead can't be "new" twice in one run.
type classified struct {
	lead  *sheet.LeadRecord
	name  string
	isNew bool
}

func (e *Engine) SyncLeads(ctx context.Context, req *Request) (*Result, error) {
	if req.BoardID == "" || req.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: boardId and spreadsheetId are required", ErrInvalidRequest)
	}
	groupBy := req.GroupBy
	if groupBy == "" {
		groupBy = GroupByQualified
	}

	sheets, err := e.source.FetchSheets(ctx, req.SpreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	mapped := sheet.MapLeadRows(sheets.Leads, e.rowCap)
	if len(mapped.Leads) == 0 {
		return nil, ErrEmptyDataset
	}

	result := &Result{
		TotalLeads:    len(mapped.Leads),
		TruncatedRows: mapped.Truncated,
	}

	columns, err := e.ensureColumns(ctx, req.BoardID, result)
	if err != nil {
		return nil, err
	}

	snap, err := e.loadSnapshot(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}

	// classify every lead against the start-of-run snapshot, then bucket by
	// destination group preserving first-seen group order and row order
	buckets := map[string][]classified{}
	groupOrder := []string{}
	newCount := 0
	for i, lead := range mapped.Leads {
		name := DisplayName(lead, i)
		isNew := !snap.existingNames[sheet.NormalizeName(name)]
		if isNew {
			newCount++
		}

		dest := e.destination(lead, isNew, groupBy)
		if _, seen := buckets[dest]; !seen {
			groupOrder = append(groupOrder, dest)
		}
		buckets[dest] = append(buckets[dest], classified{lead: lead, name: name, isNew: isNew})
	}

	e.log.WithFields(logrus.Fields{
		"board":    req.BoardID,
		"total":    result.TotalLeads,
		"new":      newCount,
		"existing": result.TotalLeads - newCount,
		"groups":   len(groupOrder),
	}).Info("leads classified")

	result.NewLeads = newCount
	result.Groups = groupOrder

	toNotify := []*sheet.LeadRecord{}
	groupCounter := len(snap.groups)

	for _, groupName := range groupOrder {
		group, ok := snap.groupsByName[groupName]
		if !ok {
			group = boardstore.Group{
				BoardID:  req.BoardID,
				Name:     groupName,
				Position: int32(groupCounter),
			}
			if err := e.store.UpsertGroup(ctx, &group); err != nil {
				e.log.WithError(err).WithField("group", groupName).Warn("group create failed, skipping its leads")
				result.SkippedWrites += len(buckets[groupName])
				continue
			}
			groupCounter++
		}

		existing := snap.itemsByGroup[group.GroupID]
		current := map[string]bool{}

		for i, cl := range buckets[groupName] {
			current[sheet.NormalizeName(cl.name)] = true
			notified := e.reconcileLead(ctx, req, &group, columns, existing, cl, i, result)
			if notified {
				toNotify = append(toNotify, cl.lead)
			}
		}

		// stale pruning: the group's membership mirrors the sheet's current
		// state for this grouping key
		for normName, item := range existing {
			if current[normName] {
				continue
			}
			item := item
			if err := e.store.DeleteItem(ctx, &item); err != nil {
				e.log.WithError(err).WithField("item", item.Name).Warn("stale item delete failed")
				result.SkippedWrites++
				continue
			}
			e.log.WithFields(logrus.Fields{"item": item.Name, "group": groupName}).Debug("pruned stale item")
		}
	}

	if len(toNotify) > 0 {
		// after the full reconciliation pass; a notifier failure never rolls
		// back data
		if err := e.notifier.NotifyNewLeads(ctx, toNotify); err != nil {
			e.log.WithError(err).Warn("new-lead notification failed")
		} else {
			result.NewLeadsNotified = len(toNotify)
		}
	}

	result.Message = e.buildMessage(result)
	return result, nil
}

// reconcileLead upserts one lead's item and column values. Returns whether
// the lead belongs on the to-notify list. Failures are logged and skipped;
// one bad row must not sink the batch.
func (e *Engine) reconcileLead(ctx context.Context, req *Request, group *boardstore.Group, columns map[string]boardstore.Column, existing map[string]boardstore.Item, cl classified, position int, result *Result) bool {
	item := &boardstore.Item{
		GroupID:   group.GroupID,
		BoardID:   req.BoardID,
		Name:      cl.name,
		Position:  int32(position),
		CreatedBy: req.Actor,
	}
	// item identity is the normalized display name, but the db conflict key
	// is the exact name; reuse the stored spelling so a case-variant row
	// updates the existing item instead of minting a near-duplicate
	if prev, ok := existing[sheet.NormalizeName(cl.name)]; ok {
		item.ItemID = prev.ItemID
		item.Name = prev.Name
		item.CreatedBy = prev.CreatedBy
	}
	if err := e.store.UpsertItem(ctx, item); err != nil {
		e.log.WithError(err).WithField("lead", cl.name).Warn("item upsert failed, skipping lead")
		result.SkippedWrites++
		return false
	}
	result.ProcessedLeads++

	values := []boardstore.ColumnValue{}
	for _, spec := range defaultColumns {
		col, ok := columns[spec.Title]
		if !ok {
			continue
		}
		v := cl.lead.Extract(spec.aliases, spec.fuzzy)
		if v == "" {
			continue
		}
		values = append(values, boardstore.ColumnValue{
			ItemID:   item.ItemID,
			ColumnID: col.ColumnID,
			Value:    v,
		})
	}
	if err := e.store.UpsertColumnValues(ctx, values); err != nil {
		e.log.WithError(err).WithField("lead", cl.name).Warn("column values upsert failed")
		result.SkippedWrites++
	}

	return cl.isNew && group.Name == e.intakeGroup
}

// ensureColumns makes sure the fixed column set exists on the board and
// returns the columns by title. A read failure is fatal; a single column
// create failure just leaves that column unmapped for this run.
func (e *Engine) ensureColumns(ctx context.Context, boardID string, result *Result) (map[string]boardstore.Column, error) {
	existing, err := e.store.GetColumns(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("%w: columns for board %s: %v", ErrStoreRead, boardID, err)
	}

	byTitle := map[string]boardstore.Column{}
	for _, col := range existing {
		byTitle[col.Title] = col
	}

	for _, spec := range defaultColumns {
		if _, ok := byTitle[spec.Title]; ok {
			continue
		}
		col := boardstore.Column{
			BoardID:  boardID,
			Title:    spec.Title,
			Type:     spec.Type,
			Position: spec.Position,
			Settings: spec.Settings,
		}
		if err := e.store.UpsertColumn(ctx, &col); err != nil {
			e.log.WithError(err).WithField("column", spec.Title).Warn("column create failed")
			result.SkippedWrites++
			continue
		}
		byTitle[col.Title] = col
	}

	return byTitle, nil
}

// snapshot is the read-only view of the board taken once at sync start.
// Never refreshed mid-run: identity decisions and pruning both key off it.
type snapshot struct {
	groups        []boardstore.Group
	groupsByName  map[string]boardstore.Group
	itemsByGroup  map[string]map[string]boardstore.Item // group id → normalized name → item
	existingNames map[string]bool                       // normalized names across the whole board
}

func (e *Engine) loadSnapshot(ctx context.Context, boardID string) (*snapshot, error) {
	groups, err := e.store.GetGroups(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("%w: groups for board %s: %v", ErrStoreRead, boardID, err)
	}

	items, err := e.store.GetItemsByBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("%w: items for board %s: %v", ErrStoreRead, boardID, err)
	}

	snap := &snapshot{
		groups:        groups,
		groupsByName:  map[string]boardstore.Group{},
		itemsByGroup:  map[string]map[string]boardstore.Item{},
		existingNames: map[string]bool{},
	}
	for _, g := range groups {
		snap.groupsByName[g.Name] = g
	}
	for _, item := range items {
		norm := sheet.NormalizeName(item.Name)
		snap.existingNames[norm] = true
		if snap.itemsByGroup[item.GroupID] == nil {
			snap.itemsByGroup[item.GroupID] = map[string]boardstore.Item{}
		}
		snap.itemsByGroup[item.GroupID][norm] = item
	}
	return snap, nil
}

// buildMessage never reports a clean success when rows were truncated or
// writes were skipped.
func (e *Engine) buildMessage(r *Result) string {
	msg := fmt.Sprintf("synced %d of %d leads into %d groups", r.ProcessedLeads, r.TotalLeads, len(r.Groups))
	notes := []string{}
	if r.TruncatedRows > 0 {
		notes = append(notes, fmt.Sprintf("%d rows truncated by the row cap", r.TruncatedRows))
	}
	if r.SkippedWrites > 0 {
		notes = append(notes, fmt.Sprintf("%d writes skipped after errors", r.SkippedWrites))
	}
	if len(notes) > 0 {
		msg += " (" + strings.Join(notes, "; ") + ")"
	}
	return msg
}
