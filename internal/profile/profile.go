// Package profile loads YAML generation profiles. A profile describes
// the shape of a synthetic statement: who it belongs to, the period it
// covers and how its transactions are drawn. Defaults mirror the
// reference dataset (Axis Bank, INR, 10000.00 over Q1 2024).
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bankstmt/internal/core"
	"bankstmt/internal/synth"
)

type Profile struct {
	Name         string  `yaml:"name"`
	HolderName   string  `yaml:"holder_name"`
	BankName     string  `yaml:"bank_name"`
	Currency     string  `yaml:"currency"`
	StartBalance string  `yaml:"start_balance"`
	Transactions int     `yaml:"transactions"`
	StartDate    string  `yaml:"start_date"`
	EndDate      string  `yaml:"end_date"`
	AmountMin    string  `yaml:"amount_min"`
	AmountMax    string  `yaml:"amount_max"`
	CreditWeight float64 `yaml:"credit_weight"`
}

// Default returns the reference profile.
func Default() Profile {
	return Profile{
		Name:         "default",
		HolderName:   "James Smith",
		BankName:     "Axis Bank",
		Currency:     "INR",
		StartBalance: "10000.00",
		Transactions: 50,
		StartDate:    "2024-01-01",
		EndDate:      "2024-03-31",
	}
}

// Load reads a profile from a YAML file. Fields left empty in the file
// fall back to the defaults.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a profile over the defaults.
func Parse(data []byte) (Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Params converts the profile into generation parameters for the given
// seed. Validation of the resulting parameters is left to the
// synthesizer.
func (p Profile) Params(seed int64) (synth.Params, error) {
	balance, err := core.ParseMoney(p.StartBalance)
	if err != nil {
		return synth.Params{}, fmt.Errorf("start_balance: %w", err)
	}
	start, err := core.ParseDate(p.StartDate)
	if err != nil {
		return synth.Params{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := core.ParseDate(p.EndDate)
	if err != nil {
		return synth.Params{}, fmt.Errorf("end_date: %w", err)
	}

	params := synth.Params{
		StartBalance: balance,
		Count:        p.Transactions,
		Start:        start,
		End:          end,
		Seed:         seed,
		CreditWeight: p.CreditWeight,
	}
	if p.AmountMin != "" {
		if params.AmountMin, err = core.ParseMoney(p.AmountMin); err != nil {
			return synth.Params{}, fmt.Errorf("amount_min: %w", err)
		}
	}
	if p.AmountMax != "" {
		if params.AmountMax, err = core.ParseMoney(p.AmountMax); err != nil {
			return synth.Params{}, fmt.Errorf("amount_max: %w", err)
		}
	}
	return params, nil
}

// Period returns the statement period described by the profile.
func (p Profile) Period() (core.StatementPeriod, error) {
	start, err := core.ParseDate(p.StartDate)
	if err != nil {
		return core.StatementPeriod{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := core.ParseDate(p.EndDate)
	if err != nil {
		return core.StatementPeriod{}, fmt.Errorf("end_date: %w", err)
	}
	return core.NewPeriod(start, end)
}
