// Package xlsx renders a statement as an Excel workbook with an
// account summary sheet and a flat transaction sheet.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bankstmt/internal/core"
)

const (
	accountSheet      = "Account"
	transactionsSheet = "Transactions"
)

var transactionHeader = []string{"Date", "Description", "Type", "Amount", "Balance"}

// Build renders the statement into a new workbook. The caller owns the
// returned file and must close it.
func Build(s core.Statement) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(accountSheet); err != nil {
		return nil, fmt.Errorf("create account sheet: %w", err)
	}

	account := [][]interface{}{
		{"Name", s.Holder.Name},
		{"Account Number", s.Holder.AccountNumber},
		{"Bank", s.Holder.BankName},
		{"Currency", s.Holder.Currency},
		{"Period Start", s.Period.Start.String()},
		{"Period End", s.Period.End.String()},
	}
	for i, row := range account {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("account cell: %w", err)
			}
			if err := f.SetCellValue(accountSheet, cell, v); err != nil {
				return nil, fmt.Errorf("set account cell %s: %w", cell, err)
			}
		}
	}

	for j, h := range transactionHeader {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(transactionsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
	}
	for i, t := range s.Transactions {
		row := []interface{}{
			t.Date.String(),
			t.Description,
			string(t.Type),
			t.Amount.Amount(),
			t.Balance.Amount(),
		}
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("transaction cell: %w", err)
			}
			if err := f.SetCellValue(transactionsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("set transaction cell %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

// Write renders the statement and writes the workbook to w.
func Write(s core.Statement, w io.Writer) error {
	f, err := Build(s)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Save renders the statement and saves the workbook to path.
func Save(s core.Statement, path string) error {
	f, err := Build(s)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
