// Package testkit provides fixtures and in-memory adapters for service and
// handler tests. Nothing here touches the network or a database.
package testkit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dsci3d/learning-energy-profile/app"
	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/models"
	"github.com/dsci3d/learning-energy-profile/ports"
)

// TestKit bundles a loaded taxonomy with an in-memory archive.
type TestKit struct {
	tax     *instrument.Taxonomy
	archive *InMemoryArchiveAdapter
}

// NewTestKit creates a test kit instance
func NewTestKit() *TestKit {
	return &TestKit{
		tax:     instrument.MustLoad(),
		archive: NewInMemoryArchiveAdapter(),
	}
}

// Taxonomy returns the loaded instrument
func (t *TestKit) Taxonomy() *instrument.Taxonomy {
	return t.tax
}

// Archive returns the shared in-memory archive adapter
func (t *TestKit) Archive() *InMemoryArchiveAdapter {
	return t.archive
}

// Service returns an application service wired to the in-memory archive.
func (t *TestKit) Service() *app.Service {
	return app.NewService(t.tax, t.archive)
}

// CompleteRatings returns a full rating set with every item at value.
func (t *TestKit) CompleteRatings(value int) map[string]int {
	ratings := make(map[string]int, t.tax.Len())
	for _, code := range t.tax.Codes() {
		ratings[code] = value
	}
	return ratings
}

// PatternedRatings returns a full, deterministic rating set that uses all
// five response values.
func (t *TestKit) PatternedRatings(stride int) map[string]int {
	ratings := make(map[string]int, t.tax.Len())
	for i, code := range t.tax.Codes() {
		ratings[code] = (i*stride)%5 + 1
	}
	return ratings
}

// RawRatings widens a typed rating set to the ingestion shape.
func (t *TestKit) RawRatings(ratings map[string]int) map[string]any {
	raw := make(map[string]any, len(ratings))
	for code, v := range ratings {
		raw[code] = v
	}
	return raw
}

// RatingsCSV renders a rating set in the ingestion CSV format.
func (t *TestKit) RatingsCSV(ratings map[string]int) string {
	codes := make([]string, 0, len(ratings))
	for code := range ratings {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder
	b.WriteString("item_code,rating\n")
	for _, code := range codes {
		fmt.Fprintf(&b, "%s,%d\n", code, ratings[code])
	}
	return b.String()
}

// WriteRatingsCSV writes a rating set to path in the ingestion CSV format.
func (t *TestKit) WriteRatingsCSV(path string, ratings map[string]int) error {
	return os.WriteFile(path, []byte(t.RatingsCSV(ratings)), 0o644)
}

// InMemoryArchiveAdapter implements ProfileArchive with in-memory storage.
// Missing rows surface as sql.ErrNoRows to mirror the database adapter.
type InMemoryArchiveAdapter struct {
	records map[uuid.UUID]*models.ProfileRecord
	mu      sync.RWMutex
}

func NewInMemoryArchiveAdapter() *InMemoryArchiveAdapter {
	return &InMemoryArchiveAdapter{
		records: make(map[uuid.UUID]*models.ProfileRecord),
	}
}

func (s *InMemoryArchiveAdapter) Save(ctx context.Context, record *models.ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.ID]; exists {
		return fmt.Errorf("profile %s already archived", record.ID)
	}
	stored := *record
	s.records[record.ID] = &stored
	return nil
}

func (s *InMemoryArchiveAdapter) Get(ctx context.Context, id uuid.UUID) (*models.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, sql.ErrNoRows
	}
	found := *record
	return &found, nil
}

func (s *InMemoryArchiveAdapter) List(ctx context.Context, limit, offset int) ([]*models.ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	all := make([]*models.ProfileRecord, 0, len(s.records))
	for _, record := range s.records {
		copied := *record
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *InMemoryArchiveAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return sql.ErrNoRows
	}
	delete(s.records, id)
	return nil
}

// Len reports the number of stored records.
func (s *InMemoryArchiveAdapter) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

var _ ports.ProfileArchive = (*InMemoryArchiveAdapter)(nil)
