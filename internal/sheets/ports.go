package sheets

import (
	"context"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

// Ports for outbound ledger adapters.
type (
	// LedgerWriter appends one transaction row to the backup ledger.
	LedgerWriter interface {
		Append(ctx context.Context, tx core.Transaction, walletName string) (rowRef string, err error)
	}

	// LedgerDeleter removes a transaction row by its id.
	LedgerDeleter interface {
		Delete(ctx context.Context, transactionID string) error
	}
)
