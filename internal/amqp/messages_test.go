package amqp

import "testing"

func TestMessageRoundTrip(t *testing.T) {
	msg := NewSyncMessage("owner@example.com", "tx-1")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := LedgerMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Kind != KindSync || got.UserID != msg.UserID || got.TransactionID != msg.TransactionID {
		t.Fatalf("round trip = %+v, want %+v", got, msg)
	}
}

func TestDeleteMessageKind(t *testing.T) {
	if msg := NewDeleteMessage("u", "tx"); msg.Kind != KindDelete {
		t.Fatalf("kind = %q, want %q", msg.Kind, KindDelete)
	}
}

func TestFromJSONRejectsGarbage(t *testing.T) {
	if _, err := LedgerMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
