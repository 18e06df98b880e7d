package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fairuzulum/ZenFinance/internal/core"
)

func TestWriteCSV(t *testing.T) {
	wallets := []core.Wallet{{ID: "w1", Name: "Main Bank", Type: core.Bank, Currency: "IDR"}}
	txs := []core.Transaction{
		{WalletID: "w1", Type: core.Expense, Amount: core.Money{Cents: 5000000}, Category: "Food", Note: "lunch", Date: "2024-01-01", Time: "12:30"},
		{WalletID: "gone", Type: core.Income, Amount: core.Money{Cents: 20000050}, Category: "Salary", Note: "jan", Date: "2024-01-02", Time: "09:00"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs, wallets); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Time,Type,Category,Amount,Wallet,Note" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "2024-01-01,12:30,expense,Food,50000,Main Bank,lunch" {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if lines[2] != "2024-01-02,09:00,income,Salary,200000.50,Unknown,jan" {
		t.Fatalf("row 2 = %q", lines[2])
	}
}

// The original export wrapped notes in quotes without escaping embedded
// quotes; this implementation emits proper RFC 4180 escaping instead.
func TestWriteCSVEscapesNotes(t *testing.T) {
	txs := []core.Transaction{
		{WalletID: "w1", Type: core.Expense, Amount: core.Money{Cents: 100}, Category: "Food", Note: `dinner, with "friends"`, Date: "2024-01-01", Time: "19:00"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := `2024-01-01,19:00,expense,Food,1,Unknown,"dinner, with ""friends"""`
	if lines[1] != want {
		t.Fatalf("row = %q, want %q", lines[1], want)
	}
}

func TestWriteCSVEmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := strings.TrimRight(buf.String(), "\n"); got != "Date,Time,Type,Category,Amount,Wallet,Note" {
		t.Fatalf("empty export should be header only, got %q", got)
	}
}
