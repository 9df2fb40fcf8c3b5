package message

import "context"

// Repo is the message persistence contract.
type Repo interface {
	Create(ctx context.Context, m *Message) (*Message, error)
	// Conversation returns every message exchanged between the two
	// participants, in either direction, oldest first.
	Conversation(ctx context.Context, userID, contactID string) ([]Message, error)
	// ForContact returns every message a contact sent or received, under
	// any of the given identifier aliases, oldest first.
	ForContact(ctx context.Context, contactIDs []string) ([]Message, error)
	FindAll(ctx context.Context) ([]Message, error)
}
