package message

import (
	"context"

	"github.com/diacare/diacare/internal/platform/schema"
)

// AliasResolver maps a contact identifier to any additional identities the
// same person messages under (a patient record ID and its account UID).
type AliasResolver interface {
	Aliases(ctx context.Context, contactID string) []string
}

type Service struct {
	repo    Repo
	aliases AliasResolver // optional
}

func NewService(repo Repo, aliases AliasResolver) *Service {
	return &Service{repo: repo, aliases: aliases}
}

// Send validates and persists one message.
func (s *Service) Send(ctx context.Context, m *Message) (*Message, error) {
	if err := schema.Validate(m); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, m)
}

// Conversation returns the bidirectional exchange between two participants,
// oldest first. Which participant comes first does not matter.
func (s *Service) Conversation(ctx context.Context, userID, contactID string) ([]Message, error) {
	return s.repo.Conversation(ctx, userID, contactID)
}

// ForContact lists every message involving the contact under any of its
// known identities.
func (s *Service) ForContact(ctx context.Context, contactID string) ([]Message, error) {
	ids := []string{contactID}
	if s.aliases != nil {
		ids = append(ids, s.aliases.Aliases(ctx, contactID)...)
	}
	return s.repo.ForContact(ctx, ids)
}
