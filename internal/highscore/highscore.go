// Package highscore is the score-table collaborator of a run. Calls are
// asynchronous and report through callbacks so the frame loop never waits on
// storage.
package highscore

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-runner/internal/storage"
)

// TableSize is the number of entries a level's table shows.
const TableSize = 10

// MaxNameLen is the longest accepted player name.
const MaxNameLen = 10

var (
	// ErrInvalidName is returned for names that are empty, too long, or
	// contain anything but ASCII letters and digits.
	ErrInvalidName = errors.New("invalid player name")

	// ErrUnavailable is returned when no score table is reachable.
	ErrUnavailable = errors.New("high scores unavailable")
)

// Entry is one row of a level's table.
type Entry struct {
	RunID string
	Level string
	Name  string
	Score int
}

// Service submits and fetches scores. Callbacks run on a goroutine owned by
// the service, never on the caller's.
type Service interface {
	Submit(e Entry, cb func(error))
	Top(level string, n int, cb func([]Entry, error))
}

// NewRunID returns a fresh id for one run.
func NewRunID() string {
	return uuid.NewString()
}

// ValidateName checks a player name.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLen {
		return fmt.Errorf("%w: must be 1-%d characters", ErrInvalidName, MaxNameLen)
	}
	for _, r := range name {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit {
			return fmt.Errorf("%w: only letters and digits are allowed", ErrInvalidName)
		}
	}
	return nil
}

// Qualifies reports whether score earns a place in a table whose current
// best entries are top, ordered best first.
func Qualifies(score int, top []Entry) bool {
	if len(top) < TableSize {
		return true
	}
	return score > top[TableSize-1].Score
}

// Local serves scores from a sqlite store.
type Local struct {
	store *storage.Store
	wg    sync.WaitGroup
}

// NewLocal wraps a store. A nil store yields a service that always fails
// with ErrUnavailable.
func NewLocal(store *storage.Store) *Local {
	return &Local{store: store}
}

// Submit validates and saves an entry.
func (l *Local) Submit(e Entry, cb func(error)) {
	l.run(func() {
		err := l.submit(e)
		if cb != nil {
			cb(err)
		}
	})
}

func (l *Local) submit(e Entry) error {
	if err := ValidateName(e.Name); err != nil {
		return err
	}
	if l.store == nil {
		return ErrUnavailable
	}
	if e.RunID == "" {
		e.RunID = NewRunID()
	}
	_, err := l.store.SaveScore(storage.ScoreEntry{
		RunID:      e.RunID,
		Level:      e.Level,
		PlayerName: e.Name,
		Score:      e.Score,
	})
	if err != nil {
		return fmt.Errorf("highscore: submit: %w", err)
	}
	return nil
}

// Top fetches the best n entries for a level.
func (l *Local) Top(level string, n int, cb func([]Entry, error)) {
	l.run(func() {
		entries, err := l.top(level, n)
		if cb != nil {
			cb(entries, err)
		}
	})
}

func (l *Local) top(level string, n int) ([]Entry, error) {
	if l.store == nil {
		return nil, ErrUnavailable
	}
	rows, err := l.store.TopScores(level, n)
	if err != nil {
		return nil, fmt.Errorf("highscore: top: %w", err)
	}
	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, Entry{RunID: r.RunID, Level: r.Level, Name: r.PlayerName, Score: r.Score})
	}
	return entries, nil
}

func (l *Local) run(fn func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		fn()
	}()
}

// Wait blocks until every pending call has delivered its callback.
func (l *Local) Wait() {
	l.wg.Wait()
}
