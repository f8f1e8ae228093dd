// Package archive keeps a durable history of solved plans.
//
// The cache answers "have we solved this before?"; the archive answers "what
// did we solve, and when?". Every plan the pipeline produces gets a
// [Record] keyed by its plan ID, so plans can be fetched again after their
// cache entry expires.
//
// Two backends are provided:
//
//   - [SQLiteStore]: a local database file (pure Go, no cgo)
//   - [MongoStore]: a shared MongoDB collection
package archive

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("plan not found")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("archive closed")
)

// Record is one archived plan.
type Record struct {
	ID         string    `bson:"_id"`
	PuzzleHash string    `bson:"puzzle_hash"`
	Heuristic  string    `bson:"heuristic"`
	Status     string    `bson:"status"`
	Length     int       `bson:"length"`
	Expanded   int       `bson:"expanded"`
	CreatedAt  time.Time `bson:"created_at"`
	Plan       []byte    `bson:"plan"` // JSON-encoded io.Plan
}

// Store persists plan records. Saving an existing ID replaces the record.
type Store interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	// List returns the most recent records first. A limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}
