package worker

import (
	"context"
	"errors"
	"testing"

	"bankstmt/internal/amqp"
	"bankstmt/internal/core"
	"bankstmt/internal/export/memory"
	"bankstmt/internal/storage"
)

type fakeStore struct {
	statements map[string]core.Statement
	pending    []string
	exported   map[string]string
	failures   map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		statements: make(map[string]core.Statement),
		exported:   make(map[string]string),
		failures:   make(map[string]string),
	}
}

func (f *fakeStore) GetStatement(_ context.Context, id string) (core.Statement, error) {
	s, ok := f.statements[id]
	if !ok {
		return core.Statement{}, storage.ErrNotFound
	}
	return s, nil
}

func (f *fakeStore) PendingExport(_ context.Context, limit int) ([]string, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeStore) MarkExported(_ context.Context, id, ref string) error {
	f.exported[id] = ref
	return nil
}

func (f *fakeStore) MarkExportError(_ context.Context, id string, cause error) error {
	f.failures[id] = cause.Error()
	return nil
}

type failingWriter struct{ err error }

func (w failingWriter) AppendStatement(context.Context, core.Statement) (string, error) {
	return "", w.err
}

func testStatement(id string) core.Statement {
	period, _ := core.NewPeriod(core.NewDate(2024, 1, 1), core.NewDate(2024, 3, 31))
	return core.Statement{
		ID:     id,
		Holder: core.AccountHolder{Name: "James Smith", BankName: "Axis Bank", Currency: "INR"},
		Period: period,
		Transactions: []core.Transaction{
			{
				Date:        core.NewDate(2024, 1, 3),
				Description: "Paycheck",
				Type:        core.Credit,
				Amount:      core.Money{Cents: 50_000},
				Balance:     core.Money{Cents: 1_050_000},
			},
		},
	}
}

func TestHandleSyncMessage(t *testing.T) {
	store := newFakeStore()
	store.statements["stmt-1"] = testStatement("stmt-1")
	sink := memory.New()
	w := NewSyncWorker(store, sink, 10)

	err := w.HandleSyncMessage(context.Background(), amqp.StatementSyncMessage{StatementID: "stmt-1"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sink.Statements()) != 1 {
		t.Fatalf("expected 1 exported statement, got %d", len(sink.Statements()))
	}
	if ref, ok := store.exported["stmt-1"]; !ok || ref == "" {
		t.Errorf("statement must be marked exported with a ref, got %q", ref)
	}
}

func TestHandleSyncMessageUnknownStatement(t *testing.T) {
	w := NewSyncWorker(newFakeStore(), memory.New(), 10)

	err := w.HandleSyncMessage(context.Background(), amqp.StatementSyncMessage{StatementID: "missing"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExportFailureRecorded(t *testing.T) {
	store := newFakeStore()
	store.statements["stmt-1"] = testStatement("stmt-1")
	w := NewSyncWorker(store, failingWriter{err: errors.New("sheet quota exceeded")}, 10)

	err := w.HandleSyncMessage(context.Background(), amqp.StatementSyncMessage{StatementID: "stmt-1"})
	if err == nil {
		t.Fatal("expected export error")
	}
	if store.failures["stmt-1"] != "sheet quota exceeded" {
		t.Errorf("failure cause = %q", store.failures["stmt-1"])
	}
	if _, ok := store.exported["stmt-1"]; ok {
		t.Error("failed statement must not be marked exported")
	}
}

func TestProcessPending(t *testing.T) {
	store := newFakeStore()
	store.statements["a"] = testStatement("a")
	store.statements["b"] = testStatement("b")
	store.statements["c"] = testStatement("c")
	store.pending = []string{"a", "b", "c"}
	sink := memory.New()
	w := NewSyncWorker(store, sink, 2)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}

	// Batch size caps a single sweep.
	if len(sink.Statements()) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(sink.Statements()))
	}
}

func TestProcessPendingContinuesAfterFailure(t *testing.T) {
	store := newFakeStore()
	store.statements["good"] = testStatement("good")
	store.pending = []string{"missing", "good"}
	sink := memory.New()
	w := NewSyncWorker(store, sink, 10)

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(sink.Statements()) != 1 {
		t.Fatalf("expected the good statement exported, got %d", len(sink.Statements()))
	}
}

func TestProcessPendingEmpty(t *testing.T) {
	w := NewSyncWorker(newFakeStore(), memory.New(), 10)
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
}
