package boardstore

import (
	"context"
	"sort"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/storage"
)

// Store is the board/group/item/column persistence contract the sync and
// dashboard paths are written against.
type Store interface {
	GetColumns(ctx context.Context, boardID string) ([]Column, error)
	UpsertColumn(ctx context.Context, col *Column) error

	GetGroups(ctx context.Context, boardID string) ([]Group, error)
	UpsertGroup(ctx context.Context, group *Group) error

	GetItemsByGroup(ctx context.Context, groupID string) ([]Item, error)
	GetItemsByBoard(ctx context.Context, boardID string) ([]Item, error)
	UpsertItem(ctx context.Context, item *Item) error
	// DeleteItem takes the full item so the cached group page it appears
	// under can be invalidated.
	DeleteItem(ctx context.Context, item *Item) error

	GetColumnValues(ctx context.Context, itemID string) ([]ColumnValue, error)
	UpsertColumnValue(ctx context.Context, val *ColumnValue) error
	// UpsertColumnValues is the bulk variant; one statement for all values.
	UpsertColumnValues(ctx context.Context, vals []ColumnValue) error
	DeleteColumnValuesByItem(ctx context.Context, itemID string) error
}

type store struct {
	store storage.Storage
}

type Config struct {
	ReadConn  *sqlx.DB
	WriteConn *sqlx.DB
	Redis     *redis.Client
	Debugger  bool
}

func New(conf *Config) (Store, error) {
	tables := []*storage.Table{
		groupsTable,
		itemsTable,
		columnsTable,
		columnValuesTable,
	}

	c := &storage.Config{
		ReadOnlyDbConn:  conf.ReadConn,
		WriteOnlyDbConn: conf.WriteConn,
		Redis:           conf.Redis,
		Tables:          tables,
		Debugger:        conf.Debugger,
		ServiceName:     "vestogestao",
	}

	s, err := storage.New(c)
	if err != nil {
		return nil, err
	}

	return &store{store: s}, nil
}

func (s *store) GetColumns(ctx context.Context, boardID string) ([]Column, error) {
	cols := []Column{}
	err := s.store.SelectAll(ctx, &Column{BoardID: boardID}, &cols, ColumnsGetByBoardID)
	return cols, err
}

func (s *store) UpsertColumn(ctx context.Context, col *Column) error {
	if col.ColumnID == "" {
		col.ColumnID = uuid.NewString()
	}
	return s.store.Upsert(ctx, col)
}

func (s *store) GetGroups(ctx context.Context, boardID string) ([]Group, error) {
	groups := []Group{}
	err := s.store.SelectAll(ctx, &Group{BoardID: boardID}, &groups, GroupsGetByBoardID)
	return groups, err
}

func (s *store) UpsertGroup(ctx context.Context, group *Group) error {
	if group.GroupID == "" {
		group.GroupID = uuid.NewString()
	}
	return s.store.Upsert(ctx, group)
}

func (s *store) GetItemsByGroup(ctx context.Context, groupID string) ([]Item, error) {
	items := []Item{}
	err := s.store.SelectAll(ctx, &Item{GroupID: groupID}, &items, ItemsGetByGroupID)
	return items, err
}

// GetItemsByBoard fans out over the board's groups concurrently; each group
// page is cacheable on its own, which a single board-wide scan would not be.
func (s *store) GetItemsByBoard(ctx context.Context, boardID string) ([]Item, error) {
	groups, err := s.GetGroups(ctx, boardID)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	all := []Item{}

	g, ctx := errgroup.WithContext(ctx)
	for _, group := range groups {
		group := group
		g.Go(func() error {
			items, err := s.GetItemsByGroup(ctx, group.GroupID)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Position < all[j].Position })
	return all, nil
}

func (s *store) UpsertItem(ctx context.Context, item *Item) error {
	if item.ItemID == "" {
		item.ItemID = uuid.NewString()
	}
	return s.store.Upsert(ctx, item)
}

func (s *store) DeleteItem(ctx context.Context, item *Item) error {
	// values first so a half-applied delete can't orphan them
	if err := s.DeleteColumnValuesByItem(ctx, item.ItemID); err != nil {
		return err
	}
	return s.store.Delete(ctx, item)
}

func (s *store) GetColumnValues(ctx context.Context, itemID string) ([]ColumnValue, error) {
	vals := []ColumnValue{}
	err := s.store.SelectAll(ctx, &ColumnValue{ItemID: itemID}, &vals, ColumnValuesGetByItemID)
	return vals, err
}

func (s *store) UpsertColumnValue(ctx context.Context, val *ColumnValue) error {
	if val.ValueID == "" {
		val.ValueID = uuid.NewString()
	}
	return s.store.Upsert(ctx, val)
}

func (s *store) UpsertColumnValues(ctx context.Context, vals []ColumnValue) error {
	if len(vals) == 0 {
		return nil
	}

	objs := make([]interface{}, 0, len(vals))
	for i := range vals {
		if vals[i].ValueID == "" {
			vals[i].ValueID = uuid.NewString()
		}
		objs = append(objs, &vals[i])
	}
	return s.store.InsertBatch(ctx, objs...)
}

func (s *store) DeleteColumnValuesByItem(ctx context.Context, itemID string) error {
	return s.store.Delete(ctx, &ColumnValue{ItemID: itemID})
}
