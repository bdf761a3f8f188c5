package google

import (
	"context"
	"testing"

	"bankstmt/internal/core"
)

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatal("expected error without GOOGLE_SPREADSHEET_ID")
	}
}

func TestRows(t *testing.T) {
	s := core.Statement{
		ID: "stmt-1",
		Holder: core.AccountHolder{
			Name:     "James Smith",
			BankName: "Axis Bank",
			Currency: "INR",
		},
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

	rows := Rows(s)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if row[0] != "stmt-1" || row[4] != "2024-01-03" || row[6] != "credit" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[7] != "500.00" || row[8] != "10500.00" {
		t.Fatalf("amounts must be two-decimal strings: %v", row)
	}
}

func TestRowsEmptyStatement(t *testing.T) {
	if rows := Rows(core.Statement{ID: "empty"}); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
