package statement

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"bankstmt/internal/core"
)

func TestAssembleCopiesTransactions(t *testing.T) {
	holder := core.AccountHolder{Name: "James Smith", AccountNumber: "1234567890", BankName: "Axis Bank", Currency: "INR"}
	period, _ := core.NewPeriod(core.NewDate(2024, 1, 1), core.NewDate(2024, 3, 31))
	txns := []core.Transaction{
		{Date: core.NewDate(2024, 1, 3), Description: "Paycheck", Type: core.Credit, Amount: core.Money{Cents: 100}, Balance: core.Money{Cents: 100}},
	}

	s, err := Assemble(holder, period, txns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID == "" {
		t.Fatal("statement must get an ID")
	}

	txns[0].Description = "tampered"
	if s.Transactions[0].Description != "Paycheck" {
		t.Fatal("assembled statement must own a copy of the sequence")
	}
}

func TestAssembleRejectsInvalidPeriod(t *testing.T) {
	bad := core.StatementPeriod{Start: core.NewDate(2024, 2, 1), End: core.NewDate(2024, 1, 1)}
	if _, err := Assemble(core.AccountHolder{}, bad, nil); !errors.Is(err, core.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestAssembleEmptySequence(t *testing.T) {
	period, _ := core.NewPeriod(core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 1))
	s, err := Assemble(core.AccountHolder{}, period, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Transactions) != 0 {
		t.Fatalf("expected empty sequence, got %d", len(s.Transactions))
	}
}

func TestRandomHolder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := RandomHolder(rng, "James Smith", "Axis Bank", "INR")
	if len(h.AccountNumber) != 10 {
		t.Fatalf("expected 10-digit account number, got %q", h.AccountNumber)
	}
	if h.BankName != "Axis Bank" || h.Currency != "INR" {
		t.Fatalf("unexpected holder: %+v", h)
	}

	again := RandomHolder(rand.New(rand.NewSource(42)), "James Smith", "Axis Bank", "INR")
	if again.AccountNumber != h.AccountNumber {
		t.Fatal("same seed must yield the same account number")
	}
}

func TestEncodeJSON(t *testing.T) {
	period, _ := core.NewPeriod(core.NewDate(2024, 1, 1), core.NewDate(2024, 3, 31))
	s, err := Assemble(core.AccountHolder{Name: "A", Currency: "INR"}, period, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := EncodeJSON(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"accountHolder", "statementPeriod", "transactions"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing %q in export shape", key)
		}
	}
}
