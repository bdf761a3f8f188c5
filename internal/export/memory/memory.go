// Package memory is an in-process export target used for development
// and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"bankstmt/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Statement
}

func New() *Store {
	return &Store{}
}

// AppendStatement stores the statement and returns a synthetic reference.
func (s *Store) AppendStatement(_ context.Context, stmt core.Statement) (string, error) {
	if err := stmt.Period.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, stmt)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Statements returns a copy of everything appended so far.
func (s *Store) Statements() []core.Statement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Statement, len(s.items))
	copy(out, s.items)
	return out
}
