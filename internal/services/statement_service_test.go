package services

import (
	"context"
	"testing"

	"bankstmt/internal/profile"
)

func TestGenerateWithoutStorage(t *testing.T) {
	svc := NewStatementService(nil, nil)

	stmt, err := svc.Generate(context.Background(), profile.Default(), 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if stmt.ID == "" {
		t.Error("statement ID must be set")
	}
	if stmt.Holder.Name != "James Smith" {
		t.Errorf("holder name = %q, want James Smith", stmt.Holder.Name)
	}
	if stmt.Holder.BankName != "Axis Bank" {
		t.Errorf("bank name = %q, want Axis Bank", stmt.Holder.BankName)
	}
	if len(stmt.Holder.AccountNumber) != 10 {
		t.Errorf("account number %q must have 10 digits", stmt.Holder.AccountNumber)
	}
	if len(stmt.Transactions) == 0 {
		t.Fatal("expected transactions")
	}
	if stmt.Period.Start.String() != "2024-01-01" || stmt.Period.End.String() != "2024-03-31" {
		t.Errorf("unexpected period %s..%s", stmt.Period.Start, stmt.Period.End)
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	svc := NewStatementService(nil, nil)
	prof := profile.Default()

	a, err := svc.Generate(context.Background(), prof, 7)
	if err != nil {
		t.Fatalf("generate a: %v", err)
	}
	b, err := svc.Generate(context.Background(), prof, 7)
	if err != nil {
		t.Fatalf("generate b: %v", err)
	}

	if a.Holder.AccountNumber != b.Holder.AccountNumber {
		t.Errorf("account numbers differ for same seed: %s vs %s",
			a.Holder.AccountNumber, b.Holder.AccountNumber)
	}
	if len(a.Transactions) != len(b.Transactions) {
		t.Fatalf("transaction counts differ: %d vs %d", len(a.Transactions), len(b.Transactions))
	}
	for i := range a.Transactions {
		if a.Transactions[i] != b.Transactions[i] {
			t.Fatalf("transaction %d differs", i)
		}
	}
	if a.ID == b.ID {
		t.Error("statement IDs must be unique across generations")
	}
}

func TestGenerateInvalidProfile(t *testing.T) {
	svc := NewStatementService(nil, nil)

	prof := profile.Default()
	prof.StartDate = "not-a-date"
	if _, err := svc.Generate(context.Background(), prof, 1); err == nil {
		t.Fatal("expected error for invalid start date")
	}

	prof = profile.Default()
	prof.Transactions = -1
	if _, err := svc.Generate(context.Background(), prof, 1); err == nil {
		t.Fatal("expected error for negative transaction count")
	}
}

func TestGetWithoutStorage(t *testing.T) {
	svc := NewStatementService(nil, nil)
	if _, err := svc.Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected error without storage")
	}
}
