package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences upsert: every call bumps the
// counter for the given key by the increment argument (1 for strict).
type mockQuerier struct {
	mu     sync.Mutex
	values map[string]int64
	calls  int
}

func newMockQuerier() *mockQuerier {
	return &mockQuerier{values: make(map[string]int64)}
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	key, _ := args[0].(string)
	var increment int64 = 1
	if len(args) > 1 {
		if v, ok := args[1].(int64); ok {
			increment = v
		}
	}
	m.values[key] += increment
	return &mockRow{val: m.values[key]}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("RMA", "MAIN")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "RMA-MAIN-2026-00001" {
		t.Errorf("expected RMA-MAIN-2026-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "RMA-MAIN-2026-00002" {
		t.Errorf("expected RMA-MAIN-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_ScopeIsolation(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a, err := svc.GetNextNumber(ctx, DefaultConfig("RMA", "MAIN"), nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.GetNextNumber(ctx, DefaultConfig("RMA", "SHOP2"), nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Each company starts its own counter at 1.
	if a != "RMA-MAIN-2026-00001" {
		t.Errorf("expected RMA-MAIN-2026-00001, got %s", a)
	}
	if b != "RMA-SHOP2-2026-00001" {
		t.Errorf("expected RMA-SHOP2-2026-00001, got %s", b)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("PICK", "MAIN")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	num, err := svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "PICK-MAIN-2026-00001" {
		t.Errorf("expected PICK-MAIN-2026-00001, got %s", num)
	}
	if q.calls != 1 {
		t.Errorf("expected 1 DB call, got %d", q.calls)
	}

	// The next nine numbers come from the reserved range in memory.
	var last string
	for i := 0; i < 9; i++ {
		last, err = svc.GetNextNumber(ctx, cfg, opts, period)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if last != "PICK-MAIN-2026-00010" {
		t.Errorf("expected PICK-MAIN-2026-00010, got %s", last)
	}
	if q.calls != 1 {
		t.Errorf("expected range to come from memory, got %d DB calls", q.calls)
	}

	// Range exhausted, eleventh number triggers a new reservation.
	num, err = svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "PICK-MAIN-2026-00011" {
		t.Errorf("expected PICK-MAIN-2026-00011, got %s", num)
	}
	if q.calls != 2 {
		t.Errorf("expected 2 DB calls, got %d", q.calls)
	}
}

func TestSetNextNumber_InvalidatesCache(t *testing.T) {
	q := newMockQuerier()
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("PICK", "MAIN")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	if _, err := svc.GetNextNumber(ctx, cfg, opts, period); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.SetNextNumber(ctx, cfg, period, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A fresh range must be reserved after the reset.
	before := q.calls
	if _, err := svc.GetNextNumber(ctx, cfg, opts, period); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.calls != before+1 {
		t.Errorf("expected a DB reservation after reset, calls %d -> %d", before, q.calls)
	}
}
