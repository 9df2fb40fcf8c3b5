package message

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diacare/diacare/internal/platform/store"
)

func newLocalService(t *testing.T) (*Service, *store.Dual) {
	t.Helper()
	local := store.NewLocal(t.TempDir()).Collection(CollectionName)
	dual := store.NewDual(CollectionName, nil, local, zerolog.Nop())
	return NewService(NewStoreRepo(dual), nil), dual
}

func seedMessage(t *testing.T, dual *store.Dual, sender any, receiver any, text, ts string) {
	t.Helper()
	_, _, err := dual.Create(context.Background(), store.Record{
		"senderId":   sender,
		"receiverId": receiver,
		"text":       text,
		"timestamp":  ts,
		"read":       false,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestConversationIsBidirectional(t *testing.T) {
	ctx := context.Background()
	svc, dual := newLocalService(t)
	seedMessage(t, dual, "A", "B", "hi", "2025-01-01T10:00:00Z")
	seedMessage(t, dual, "B", "A", "hello", "2025-01-01T11:00:00Z")
	seedMessage(t, dual, "A", "C", "other thread", "2025-01-01T12:00:00Z")

	got, err := svc.Conversation(ctx, "A", "B")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Text != "hi" || got[1].Text != "hello" {
		t.Errorf("ascending timestamp order expected: %q, %q", got[0].Text, got[1].Text)
	}

	// Participant order must not matter.
	swapped, err := svc.Conversation(ctx, "B", "A")
	if err != nil {
		t.Fatalf("conversation swapped: %v", err)
	}
	if len(swapped) != 2 {
		t.Errorf("swapped len = %d, want 2", len(swapped))
	}
}

func TestConversationComparesIDsAsStrings(t *testing.T) {
	ctx := context.Background()
	svc, dual := newLocalService(t)
	// Mixed numeric and string identifiers for the same participants.
	seedMessage(t, dual, float64(7), "9", "from seven", "2025-01-01T10:00:00Z")
	seedMessage(t, dual, "9", float64(7), "to seven", "2025-01-01T11:00:00Z")

	got, err := svc.Conversation(ctx, "7", "9")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("numeric/string ids must be interchangeable, got %d messages", len(got))
	}
}

func TestConversationEmptyParticipant(t *testing.T) {
	ctx := context.Background()
	svc, dual := newLocalService(t)
	seedMessage(t, dual, "A", "B", "hi", "2025-01-01T10:00:00Z")

	got, err := svc.Conversation(ctx, "", "B")
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("missing participant should yield no messages, got %d", len(got))
	}
}

func TestSendValidatesInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLocalService(t)

	if _, err := svc.Send(ctx, &Message{SenderID: "A", ReceiverID: "B"}); err == nil {
		t.Error("empty text must be rejected")
	}

	sent, err := svc.Send(ctx, &Message{SenderID: "A", ReceiverID: "B", Text: "hi"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent.ID == "" {
		t.Error("sent message has no id")
	}
	if sent.Timestamp.IsZero() {
		t.Error("timestamp not assigned")
	}
}

type staticAliases struct{ ids []string }

func (s staticAliases) Aliases(ctx context.Context, contactID string) []string { return s.ids }

func TestForContactIncludesAliases(t *testing.T) {
	ctx := context.Background()
	local := store.NewLocal(t.TempDir()).Collection(CollectionName)
	dual := store.NewDual(CollectionName, nil, local, zerolog.Nop())
	svc := NewService(NewStoreRepo(dual), staticAliases{ids: []string{"uid-77"}})

	seedMessage(t, dual, "p1", "doc", "as patient", "2025-01-01T10:00:00Z")
	seedMessage(t, dual, "uid-77", "doc", "as account", "2025-01-01T11:00:00Z")
	seedMessage(t, dual, "stranger", "doc", "unrelated", "2025-01-01T12:00:00Z")

	got, err := svc.ForContact(ctx, "p1")
	if err != nil {
		t.Fatalf("forContact: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want patient plus alias messages", len(got))
	}
}
