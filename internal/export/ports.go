// Package export defines the outbound ports for statement export
// targets.
package export

import (
	"context"

	"bankstmt/internal/core"
)

// StatementWriter appends a full statement to an export target and
// returns an opaque reference to where it landed.
type StatementWriter interface {
	AppendStatement(ctx context.Context, s core.Statement) (ref string, err error)
}
