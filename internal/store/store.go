// Package store owns the persisted aggregate: it loads, normalizes, migrates
// and saves the single state blob. Corruption never reaches the caller; it is
// logged and replaced by the empty state.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pdv/internal/ledger"
	"pdv/internal/model"
	"pdv/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Store struct {
	repo                 repository.StateBlobRepository
	key                  string
	defaultWarehouseName string
	newID                func() string
}

func New(repo repository.StateBlobRepository, key, defaultWarehouseName string) *Store {
	if strings.TrimSpace(defaultWarehouseName) == "" {
		defaultWarehouseName = "Principal"
	}
	return &Store{
		repo:                 repo,
		key:                  key,
		defaultWarehouseName: defaultWarehouseName,
		newID:                uuid.NewString,
	}
}

// Open loads the state and applies the one-time migration, persisting only
// when the migration changed something. The returned error is a persistence
// warning: the state is usable either way.
func (s *Store) Open(ctx context.Context) (*model.State, error) {
	st := s.Load(ctx)
	if !s.Migrate(st) {
		return st, nil
	}
	log.Info().Str("key", s.key).Msg("store: migrated legacy state")
	return st, s.Save(ctx, st)
}

// Load reads the persisted blob. Missing, unreadable or malformed data yields
// the empty default state.
func (s *Store) Load(ctx context.Context) *model.State {
	raw, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, repository.ErrBlobNotFound) {
		return model.NewState()
	}
	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("store: read failed, starting from empty state")
		return model.NewState()
	}
	st, err := Normalize(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Int("bytes", len(raw)).
			Msg("store: corrupt state discarded, starting from empty state")
		return model.NewState()
	}
	return st
}

// Save persists st synchronously.
func (s *Store) Save(ctx context.Context, st *model.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := s.repo.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", s.key, err)
	}
	return nil
}

// Migrate brings a loaded state up to the multi-warehouse shape:
//  1. seeds the default warehouse when there is none
//  2. assigns ids to warehouses/products that lack one
//  3. moves legacy single-number stock into the default warehouse
//  4. backfills cart lines without a warehouse and merges duplicate pairs
//
// Idempotent: a migrated state reports false.
func (s *Store) Migrate(st *model.State) bool {
	changed := false

	if len(st.Warehouses) == 0 {
		st.Warehouses = append(st.Warehouses, model.Warehouse{ID: s.newID(), Name: s.defaultWarehouseName})
		changed = true
	}
	for i := range st.Warehouses {
		if st.Warehouses[i].ID == "" {
			st.Warehouses[i].ID = s.newID()
			changed = true
		}
	}
	defaultID := st.Warehouses[0].ID

	for i := range st.Products {
		p := &st.Products[i]
		if p.ID == "" {
			p.ID = s.newID()
			changed = true
		}
		if p.Stocks == nil {
			p.Stocks = map[string]int{}
		}
		if len(p.Stocks) == 0 && p.Stock > 0 {
			p.Stocks[defaultID] = p.Stock
			changed = true
		}
		ledger.Recount(p)
	}

	merged := make([]model.CartLine, 0, len(st.Cart))
	for _, line := range st.Cart {
		if line.WarehouseID == "" {
			line.WarehouseID = defaultID
			changed = true
		}
		if i := indexOfPair(merged, line); i >= 0 {
			merged[i].Quantity += line.Quantity
			changed = true
			continue
		}
		merged = append(merged, line)
	}
	st.Cart = merged

	return changed
}

func indexOfPair(lines []model.CartLine, l model.CartLine) int {
	for i := range lines {
		if lines[i].ProductID == l.ProductID && lines[i].WarehouseID == l.WarehouseID {
			return i
		}
	}
	return -1
}
