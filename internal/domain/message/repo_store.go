package message

import (
	"context"

	"github.com/diacare/diacare/internal/platform/schema"
	"github.com/diacare/diacare/internal/platform/store"
)

// CollectionName is the logical message collection.
const CollectionName = "messages"

// StoreRepo implements Repo over the dual-backend store. Participant
// filtering happens in memory on both paths: the remote store orders by
// timestamp, the pair predicate compares identifiers as strings.
type StoreRepo struct {
	col *store.Dual
}

func NewStoreRepo(col *store.Dual) *StoreRepo {
	return &StoreRepo{col: col}
}

func (r *StoreRepo) Create(ctx context.Context, m *Message) (*Message, error) {
	if m.Timestamp.IsZero() {
		m.Timestamp = schema.Now()
	}
	rec, err := store.Encode(m)
	if err != nil {
		return nil, err
	}
	created, _, err := r.col.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	var out Message
	if err := store.Decode(created, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *StoreRepo) Conversation(ctx context.Context, userID, contactID string) ([]Message, error) {
	if userID == "" || contactID == "" {
		return []Message{}, nil
	}
	all, err := r.ordered(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0)
	for _, m := range all {
		sender := m.SenderID.String()
		receiver := m.ReceiverID.String()
		if (sender == userID && receiver == contactID) ||
			(sender == contactID && receiver == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *StoreRepo) ForContact(ctx context.Context, contactIDs []string) ([]Message, error) {
	if len(contactIDs) == 0 {
		return r.FindAll(ctx)
	}
	ids := make(map[string]bool, len(contactIDs))
	for _, id := range contactIDs {
		ids[id] = true
	}
	all, err := r.ordered(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0)
	for _, m := range all {
		if ids[m.SenderID.String()] || ids[m.ReceiverID.String()] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *StoreRepo) FindAll(ctx context.Context) ([]Message, error) {
	return r.ordered(ctx)
}

func (r *StoreRepo) ordered(ctx context.Context) ([]Message, error) {
	recs, _, err := r.col.Find(ctx, store.Query{}.Order("timestamp", false))
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[Message](recs)
}
