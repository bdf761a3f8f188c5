package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDateRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 5)
	if d.String() != "2024-01-05" {
		t.Fatalf("unexpected format: %s", d.String())
	}

	parsed, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %s vs %s", parsed, d)
	}

	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2024, 2, 28)
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("leap day expected, got %s", got)
	}
	if got := d.AddDays(2).String(); got != "2024-03-01" {
		t.Fatalf("month rollover expected, got %s", got)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 3, 31)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-03-31"` {
		t.Fatalf("unexpected JSON: %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("JSON round trip mismatch")
	}
}

func TestDateValidate(t *testing.T) {
	if err := NewDate(2024, 1, 1).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); !errors.Is(err, ErrZeroDate) {
		t.Fatalf("expected ErrZeroDate, got %v", err)
	}
}

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionType
		ok   bool
	}{
		{"credit", Credit, true},
		{"DEBIT", Debit, true},
		{" Credit ", Credit, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseTransactionType(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("ParseTransactionType(%q) = %q, %v", tc.in, got, err)
			}
		} else if !errors.Is(err, ErrUnknownType) {
			t.Errorf("ParseTransactionType(%q) expected ErrUnknownType, got %v", tc.in, err)
		}
	}
}

func TestNewPeriod(t *testing.T) {
	if _, err := NewPeriod(NewDate(2024, 1, 1), NewDate(2024, 3, 31)); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// start == end is allowed
	if _, err := NewPeriod(NewDate(2024, 1, 1), NewDate(2024, 1, 1)); err != nil {
		t.Fatalf("expected single-day period to be valid, got %v", err)
	}
	if _, err := NewPeriod(NewDate(2024, 2, 1), NewDate(2024, 1, 1)); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := NewPeriod(Date{}, NewDate(2024, 1, 1)); !errors.Is(err, ErrZeroDate) {
		t.Fatalf("expected ErrZeroDate, got %v", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        NewDate(2024, 1, 2),
		Description: "Paycheck",
		Type:        Credit,
		Amount:      Money{Cents: 50_000},
		Balance:     Money{Cents: 1_050_000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrZeroDate},
		{"empty description", func(tx *Transaction) { tx.Description = "  " }, ErrEmptyDescription},
		{"unknown type", func(tx *Transaction) { tx.Type = "transfer" }, ErrUnknownType},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"negative balance", func(tx *Transaction) { tx.Balance = Money{Cents: -1} }, ErrNegativeBalance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := good
			tc.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestStatementJSONShape(t *testing.T) {
	s := Statement{
		ID: "internal-id",
		Holder: AccountHolder{
			Name:          "James Smith",
			AccountNumber: "1234567890",
			BankName:      "Axis Bank",
			Currency:      "INR",
		},
		Period: StatementPeriod{Start: NewDate(2024, 1, 1), End: NewDate(2024, 3, 31)},
		Transactions: []Transaction{
			{
				Date:        NewDate(2024, 1, 3),
				Description: "Paycheck",
				Type:        Credit,
				Amount:      Money{Cents: 123_450},
				Balance:     Money{Cents: 1_123_450},
			},
		},
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["id"]; ok {
		t.Fatal("internal ID must not leak into the export shape")
	}
	holder, ok := decoded["accountHolder"].(map[string]any)
	if !ok {
		t.Fatal("missing accountHolder object")
	}
	if holder["accountNumber"] != "1234567890" {
		t.Fatalf("unexpected accountNumber: %v", holder["accountNumber"])
	}
	period, ok := decoded["statementPeriod"].(map[string]any)
	if !ok {
		t.Fatal("missing statementPeriod object")
	}
	if period["startDate"] != "2024-01-01" || period["endDate"] != "2024-03-31" {
		t.Fatalf("unexpected period: %v", period)
	}
	txns, ok := decoded["transactions"].([]any)
	if !ok || len(txns) != 1 {
		t.Fatalf("unexpected transactions: %v", decoded["transactions"])
	}
	tx := txns[0].(map[string]any)
	if tx["amount"] != 1234.5 {
		t.Fatalf("amount should encode as a number, got %v", tx["amount"])
	}
	if tx["type"] != "credit" || tx["date"] != "2024-01-03" {
		t.Fatalf("unexpected transaction fields: %v", tx)
	}
}
