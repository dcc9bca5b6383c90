// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// scriptedCollector returns its results in order, then ErrNoRewrite.
type scriptedCollector struct {
	mu      sync.Mutex
	results []error
	calls   int
}

func (s *scriptedCollector) RunValueLogGC(float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.results) == 0 {
		return badger.ErrNoRewrite
	}
	err := s.results[0]
	s.results = s.results[1:]
	return err
}

func TestValueLogGCService_Collect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		results   []error
		wantCalls int
		wantErr   bool
	}{
		{"nothing to rewrite", nil, 1, false},
		{"rewrites until exhausted", []error{nil, nil}, 3, false},
		{"rejected counts as done", []error{badger.ErrRejected}, 1, false},
		{"unexpected error", []error{nil, errors.New("io: disk full")}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db := &scriptedCollector{results: tt.results}
			svc := NewValueLogGCService(db, time.Minute, zerolog.Nop())

			err := svc.collect(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("collect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if db.calls != tt.wantCalls {
				t.Errorf("RunValueLogGC called %d times, want %d", db.calls, tt.wantCalls)
			}
		})
	}
}

func TestValueLogGCService_StopsOnClosedDB(t *testing.T) {
	t.Parallel()

	db := &scriptedCollector{results: []error{badger.ErrDBClosed}}
	svc := NewValueLogGCService(db, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, badger.ErrDBClosed) {
		t.Errorf("Serve() = %v, want ErrDBClosed", err)
	}
}

func TestValueLogGCService_RealDB(t *testing.T) {
	t.Parallel()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	defer db.Close()

	svc := NewValueLogGCService(db, time.Minute, zerolog.Nop())
	if err := svc.collect(context.Background()); err != nil {
		t.Errorf("collect() on an empty db = %v", err)
	}
	if svc.String() != "badger-gc" {
		t.Errorf("String() = %q", svc.String())
	}
}
