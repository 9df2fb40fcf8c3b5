package notification

import "context"

// Repo is the notification persistence contract.
//
// MarkAsRead returns (nil, nil) when the ID does not exist.
type Repo interface {
	Create(ctx context.Context, n *Notification) (*Notification, error)
	FindByUserID(ctx context.Context, userID string, opts ListOptions) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, id string) (*Notification, error)
	MarkAllAsRead(ctx context.Context, userID string) (MarkAllResult, error)
}

// TokenRepo is the device-token persistence contract.
type TokenRepo interface {
	// Register upserts a token keyed by the token value itself.
	Register(ctx context.Context, token, userID string) error
	TokensForUser(ctx context.Context, userID string) ([]string, error)
	// RemoveTokens deletes the listed tokens in one batched removal.
	RemoveTokens(ctx context.Context, tokens []string) error
}
