package memory

import (
	"context"
	"testing"

	"bankstmt/internal/core"
)

func TestAppendStatement(t *testing.T) {
	store := New()
	period, _ := core.NewPeriod(core.NewDate(2024, 1, 1), core.NewDate(2024, 3, 31))

	ref, err := store.AppendStatement(context.Background(), core.Statement{ID: "a", Period: period})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "mem:1" {
		t.Fatalf("unexpected ref: %s", ref)
	}

	ref, _ = store.AppendStatement(context.Background(), core.Statement{ID: "b", Period: period})
	if ref != "mem:2" {
		t.Fatalf("unexpected ref: %s", ref)
	}

	if got := store.Statements(); len(got) != 2 || got[0].ID != "a" {
		t.Fatalf("unexpected contents: %+v", got)
	}
}

func TestAppendStatementRejectsInvalidPeriod(t *testing.T) {
	store := New()
	bad := core.Statement{Period: core.StatementPeriod{Start: core.NewDate(2024, 2, 1), End: core.NewDate(2024, 1, 1)}}
	if _, err := store.AppendStatement(context.Background(), bad); err == nil {
		t.Fatal("expected error for invalid period")
	}
}
