// Package journal keeps a short-lived audit trail of upstream queries.
// It stores query metadata only, never article payloads.
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/khobor/internal/domain"
)

// Entry describes one upstream call made by the proxy.
type Entry struct {
	Feed       domain.Feed `json:"feed"`
	Filter     string      `json:"filter"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	Offset     int         `json:"offset"`
	Status     int         `json:"status"`
	Success    bool        `json:"success"`
	DurationMs int64       `json:"duration_ms"`
	RecordedAt time.Time   `json:"recorded_at"`
}

// NewEntry builds an entry for q stamped with the current time.
func NewEntry(q domain.Query, status int, success bool, elapsed time.Duration) Entry {
	return Entry{
		Feed:       q.Feed,
		Filter:     q.Filter,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Offset:     q.Offset(),
		Status:     status,
		Success:    success,
		DurationMs: elapsed.Milliseconds(),
		RecordedAt: time.Now().UTC(),
	}
}

// Journal records upstream queries.
type Journal interface {
	Close() error
	Record(e Entry) error
	Recent(limit int) ([]Entry, error)
	Enabled() bool
}

// Options controls retention characteristics for concrete journal implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 24 * time.Hour
	defaultCleanupInterval = time.Hour
)

// New creates the configured journal backend.
func New(typ, path string, opts Options) (Journal, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopJournal{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt journal requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported journal type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopJournal struct{}

func (noopJournal) Close() error                { return nil }
func (noopJournal) Record(Entry) error          { return nil }
func (noopJournal) Recent(int) ([]Entry, error) { return nil, nil }
func (noopJournal) Enabled() bool               { return false }
