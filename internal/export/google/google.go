// Package google exports statements to a Google Sheets spreadsheet.
// Authentication uses a Service Account; the worker appends one row per
// transaction so the sheet stays usable as a flat transaction table.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"bankstmt/internal/core"
	"bankstmt/internal/export"
)

type Client struct {
	svc             *gsheet.Service
	spreadsheetID   string
	statementsSheet string
}

var _ export.StatementWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_STATEMENTS_SHEET_NAME (default "Statements"),
// GOOGLE_SERVICE_ACCOUNT_JSON / GOOGLE_SERVICE_ACCOUNT_FILE /
// GOOGLE_APPLICATION_CREDENTIALS for auth; ADC is the fallback.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheet := strings.TrimSpace(os.Getenv("GOOGLE_STATEMENTS_SHEET_NAME"))
	if sheet == "" {
		sheet = "Statements"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:             svc,
		spreadsheetID:   spreadsheetID,
		statementsSheet: sheet,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentials []byte
	switch {
	case serviceAccountJSON != "":
		credentials = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentials = b
	default:
		// Fall back to Application Default Credentials
		return gsheet.NewService(ctx, goption.WithScopes(gsheet.SpreadsheetsScope))
	}

	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

// AppendStatement appends one row per transaction and returns the
// updated range as the export reference.
func (c *Client) AppendStatement(ctx context.Context, s core.Statement) (string, error) {
	values := Rows(s)
	if len(values) == 0 {
		return "", nil
	}

	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.statementsSheet+"!A:I", &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append statement rows: %w", err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}

// Rows flattens a statement into spreadsheet rows.
func Rows(s core.Statement) [][]interface{} {
	rows := make([][]interface{}, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		rows = append(rows, []interface{}{
			s.ID,
			s.Holder.Name,
			s.Holder.BankName,
			s.Holder.Currency,
			t.Date.String(),
			t.Description,
			string(t.Type),
			t.Amount.String(),
			t.Balance.String(),
		})
	}
	return rows
}
