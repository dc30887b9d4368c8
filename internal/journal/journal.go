// Package journal records free-form grow log entries (feed changes, IPM
// applications, observations) alongside the scheduled protocol. Two drivers
// share one interface: a JSON file for small installs and SQLite for grows
// that want queryable history.
package journal

import (
	"context"
	"fmt"
	"time"
)

// Entry is one grow log record. Photo is the stored path (or URL) of an
// attached image; use ImportPhoto to bring a local file under the data dir
// before recording it here.
type Entry struct {
	ID       int64     `json:"id"`
	Room     string    `json:"room"`
	Batch    string    `json:"batch,omitempty"`
	Day      int       `json:"day,omitempty"`
	Category string    `json:"category,omitempty"`
	Message  string    `json:"message"`
	Photo    string    `json:"photo,omitempty"`
	Created  time.Time `json:"created"`
}

// Filter narrows queries. Zero values mean "any".
type Filter struct {
	Room     string
	Batch    string
	Category string
	Since    time.Time
	Limit    int
}

// Journal is the storage contract both drivers satisfy.
type Journal interface {
	Add(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, f Filter) ([]Entry, error)
	Count(ctx context.Context, room string) (int, error)
	Last(ctx context.Context, room string) (Entry, bool, error)
	Close() error
}

// Config selects and parameterizes a driver.
type Config struct {
	Driver string `json:"driver" yaml:"driver"` // "file" or "sqlite"
	Path   string `json:"path" yaml:"path"`
}

// Open constructs the configured driver.
func Open(cfg Config) (Journal, error) {
	switch cfg.Driver {
	case "", "file":
		path := cfg.Path
		if path == "" {
			path = "./data/journal.json"
		}
		return openFile(path)
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "./data/journal.db"
		}
		return openSQLite(path)
	default:
		return nil, fmt.Errorf("journal: unknown driver %q", cfg.Driver)
	}
}
