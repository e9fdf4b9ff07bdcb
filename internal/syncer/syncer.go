package syncer

import (
	"context"
	"fmt"
	"time"

	"gymbeauty/internal/mirror"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BatchSize is the mirror store's write batch limit.
const BatchSize = 500

// Tables lists every mirrored table, in sync order.
var Tables = []string{
	"members",
	"users",
	"checkins",
	"beauty_services",
	"gym_info",
	"beauty_health_info",
	"gym_payments",
}

// scrubbed columns never leave the local database.
var scrubbed = map[string]map[string]bool{
	"users": {"password": true},
}

// Mirror is the write surface of the remote copy. The Firestore client
// satisfies it; tests substitute an in-memory fake.
type Mirror interface {
	SetBatch(ctx context.Context, collection string, docs []mirror.Document) error
	Set(ctx context.Context, collection string, doc mirror.Document) error
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string) (int64, error)
	Ping(ctx context.Context) error
}

// EntityResult reports the outcome of mirroring one table.
type EntityResult struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Verification compares row counts after a full sync.
type Verification struct {
	Local  int64 `json:"local"`
	Remote int64 `json:"remote"`
	Match  bool  `json:"match"`
}

// Result is the full-sync report returned to the caller. A failed table does
// not abort the run; Success is true only when every row landed.
type Result struct {
	Success      bool                    `json:"success"`
	DurationMS   int64                   `json:"durationMs"`
	Entities     map[string]EntityResult `json:"entities"`
	Verification map[string]Verification `json:"verification,omitempty"`
	Errors       []string                `json:"errors,omitempty"`
}

// TableStatus is one row of the sync status report.
type TableStatus struct {
	Local  int64 `json:"local"`
	Remote int64 `json:"remote"`
	InSync bool  `json:"inSync"`
}

// Syncer pushes the relational tables into the mirror store.
type Syncer struct {
	db     *gorm.DB
	mirror Mirror
}

func New(db *gorm.DB, m Mirror) *Syncer {
	return &Syncer{db: db, mirror: m}
}

// SyncAll mirrors every table. Errors are collected per table, never
// fail-fast, so one bad row cannot block the rest of the backup.
func (s *Syncer) SyncAll(ctx context.Context) Result {
	start := time.Now()
	res := Result{
		Success:  true,
		Entities: make(map[string]EntityResult, len(Tables)),
	}

	for _, table := range Tables {
		entity, err := s.syncTable(ctx, table)
		res.Entities[table] = entity
		if err != nil {
			res.Success = false
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", table, err))
		} else if entity.Failed > 0 {
			res.Success = false
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %d of %d rows failed", table, entity.Failed, entity.Attempted))
		}
	}

	res.Verification = s.verify(ctx, res.Entities)
	res.DurationMS = time.Since(start).Milliseconds()

	log.Info().
		Bool("success", res.Success).
		Int64("duration_ms", res.DurationMS).
		Int("errors", len(res.Errors)).
		Msg("mirror sync finished")
	return res
}

func (s *Syncer) syncTable(ctx context.Context, table string) (EntityResult, error) {
	var entity EntityResult

	rows, err := s.readRows(ctx, table)
	if err != nil {
		return entity, fmt.Errorf("read rows: %w", err)
	}
	entity.Attempted = len(rows)

	docs := make([]mirror.Document, 0, len(rows))
	for _, row := range rows {
		id := fmt.Sprintf("%v", row["id"])
		if id == "" || id == "<nil>" {
			entity.Failed++
			continue
		}
		docs = append(docs, mirror.Document{ID: id, Data: mirror.ConvertRow(row)})
	}

	for offset := 0; offset < len(docs); offset += BatchSize {
		end := offset + BatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[offset:end]

		if err := s.mirror.SetBatch(ctx, table, batch); err != nil {
			log.Warn().Err(err).Str("table", table).Int("size", len(batch)).
				Msg("batch write failed, retrying rows individually")
			for _, doc := range batch {
				if err := s.mirror.Set(ctx, table, doc); err != nil {
					entity.Failed++
				} else {
					entity.Succeeded++
				}
			}
			continue
		}
		entity.Succeeded += len(batch)
	}

	return entity, nil
}

func (s *Syncer) readRows(ctx context.Context, table string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return nil, err
	}
	if drop := scrubbed[table]; drop != nil {
		for _, row := range rows {
			for col := range drop {
				delete(row, col)
			}
		}
	}
	return rows, nil
}

func (s *Syncer) verify(ctx context.Context, entities map[string]EntityResult) map[string]Verification {
	out := make(map[string]Verification, len(entities))
	for table := range entities {
		remote, err := s.mirror.Count(ctx, table)
		if err != nil {
			log.Warn().Err(err).Str("table", table).Msg("post-sync count check failed")
			continue
		}
		local, err := s.localCount(ctx, table)
		if err != nil {
			continue
		}
		out[table] = Verification{Local: local, Remote: remote, Match: local == remote}
	}
	return out
}

func (s *Syncer) localCount(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Table(table).Count(&n).Error
	return n, err
}

// Status compares local and remote row counts per table.
func (s *Syncer) Status(ctx context.Context) (map[string]TableStatus, error) {
	out := make(map[string]TableStatus, len(Tables))
	for _, table := range Tables {
		local, err := s.localCount(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		remote, err := s.mirror.Count(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("remote count %s: %w", table, err)
		}
		out[table] = TableStatus{Local: local, Remote: remote, InSync: local == remote}
	}
	return out, nil
}

// Test verifies the mirror store is reachable.
func (s *Syncer) Test(ctx context.Context) error {
	return s.mirror.Ping(ctx)
}
