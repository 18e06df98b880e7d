// Package export serializes transaction sets for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

// csvHeader is the fixed column order of the export.
var csvHeader = []string{"Date", "Time", "Type", "Category", "Amount", "Wallet", "Note"}

// UnknownWallet is written when a transaction references a wallet that no
// longer exists.
const UnknownWallet = "Unknown"

// WriteCSV writes the given (typically pre-filtered) transactions as
// RFC 4180 CSV. Wallet names are resolved by lookup; amounts are plain
// decimals. Fields containing commas or quotes are properly escaped.
func WriteCSV(w io.Writer, txs []core.Transaction, wallets []core.Wallet) error {
	names := make(map[string]string, len(wallets))
	for _, wl := range wallets {
		names[wl.ID] = wl.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		name, ok := names[t.WalletID]
		if !ok {
			name = UnknownWallet
		}
		record := []string{t.Date, t.Time, string(t.Type), t.Category, t.Amount.Decimal(), name, t.Note}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
