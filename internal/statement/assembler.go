// Package statement assembles generated or ingested transaction
// sequences into immutable statement records.
package statement

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"bankstmt/internal/core"
)

// Assemble wraps an account holder, a period and a transaction sequence
// into one statement. Construction is pure: the sequence is copied and
// never mutated afterwards. The period must already be valid.
func Assemble(holder core.AccountHolder, period core.StatementPeriod, txns []core.Transaction) (core.Statement, error) {
	if err := period.Validate(); err != nil {
		return core.Statement{}, fmt.Errorf("assemble statement: %w", err)
	}

	out := make([]core.Transaction, len(txns))
	copy(out, txns)

	return core.Statement{
		ID:           uuid.NewString(),
		Holder:       holder,
		Period:       period,
		Transactions: out,
	}, nil
}

// RandomHolder builds an account holder with a random 10-digit account
// number, drawn from the caller-owned rng.
func RandomHolder(rng *rand.Rand, name, bankName, currency string) core.AccountHolder {
	number := 1_000_000_000 + rng.Int63n(9_000_000_000)
	return core.AccountHolder{
		Name:          name,
		AccountNumber: fmt.Sprintf("%d", number),
		BankName:      bankName,
		Currency:      currency,
	}
}

// EncodeJSON renders the statement in the export shape consumed by
// downstream collaborators.
func EncodeJSON(s core.Statement) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
