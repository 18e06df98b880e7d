package amqp

import (
	"encoding/json"
	"time"
)

// Message kinds routed through the ledger sync queue.
const (
	KindSync   = "sync"
	KindDelete = "delete"
)

// LedgerMessage is the envelope published for every transaction mutation.
// It carries only identifiers; the worker loads the full transaction from
// storage when syncing.
type LedgerMessage struct {
	Kind          string    `json:"kind"`
	UserID        string    `json:"userId"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewSyncMessage(userID, transactionID string) *LedgerMessage {
	return &LedgerMessage{
		Kind:          KindSync,
		UserID:        userID,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

func NewDeleteMessage(userID, transactionID string) *LedgerMessage {
	return &LedgerMessage{
		Kind:          KindDelete,
		UserID:        userID,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

func (m *LedgerMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerMessageFromJSON(data []byte) (*LedgerMessage, error) {
	var msg LedgerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
