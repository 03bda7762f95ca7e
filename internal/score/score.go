// Package score keeps the best score across runs using the platform's
// per-user data directory.
package score

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Storage location inside the gdata app directory.
const (
	recordObject   = "scores"
	recordProperty = "best"
)

// Record is the persisted best result.
type Record struct {
	Best       int       `yaml:"best"`
	Games      int       `yaml:"games"`
	AchievedAt time.Time `yaml:"achievedAt,omitempty"`
}

// Book records finished games. It is safe for concurrent use, so SSH
// sessions can share one book as a server-wide high score.
type Book struct {
	mu      sync.Mutex
	manager *gdata.Manager // nil means scores live in memory only
	record  Record
	logger  *log.Logger
}

// Open opens the score book for appName. If the data directory cannot be
// used the book still works, but nothing survives a restart.
func Open(appName string, logger *log.Logger) *Book {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		if logger != nil {
			logger.Warn("score storage unavailable, keeping scores in memory", "app", appName, "err", err)
		}
		manager = nil
	}
	return NewBook(manager, logger)
}

// NewBook creates a book on top of manager, which may be nil.
func NewBook(manager *gdata.Manager, logger *log.Logger) *Book {
	b := &Book{manager: manager, logger: logger}
	if err := b.load(); err != nil && logger != nil {
		logger.Warn("could not read saved score, starting fresh", "err", err)
	}
	return b
}

func (b *Book) load() error {
	if b.manager == nil || !b.manager.ObjectPropExists(recordObject, recordProperty) {
		return nil
	}
	data, err := b.manager.LoadObjectProp(recordObject, recordProperty)
	if err != nil {
		return fmt.Errorf("load score record: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode score record: %w", err)
	}
	b.record = rec
	return nil
}

// Best returns the best recorded score, 0 if none.
func (b *Book) Best() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.record.Best
}

// Record returns a copy of the current record.
func (b *Book) Record() Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.record
}

// Submit records a finished game and returns the best score so far. The
// in-memory record is updated even when saving fails.
func (b *Book) Submit(score int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.record.Games++
	if score > b.record.Best {
		b.record.Best = score
		b.record.AchievedAt = time.Now().UTC()
	}
	return b.record.Best, b.save()
}

func (b *Book) save() error {
	if b.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(b.record)
	if err != nil {
		return fmt.Errorf("encode score record: %w", err)
	}
	if err := b.manager.SaveObjectProp(recordObject, recordProperty, data); err != nil {
		return fmt.Errorf("save score record: %w", err)
	}
	return nil
}
