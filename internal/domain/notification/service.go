package notification

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/diacare/diacare/internal/platform/push"
	"github.com/diacare/diacare/internal/platform/schema"
)

// Service runs the delivery pipeline: persist the in-app record, then fan
// out a push to every device registered for the recipient. Notification
// failures are non-critical and must never interrupt the business operation
// that triggered them.
type Service struct {
	repo   Repo
	tokens TokenRepo
	sender push.Sender // nil when push is disabled
	log    zerolog.Logger

	wg sync.WaitGroup
}

func NewService(repo Repo, tokens TokenRepo, sender push.Sender, log zerolog.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, sender: sender, log: log}
}

// Dispatch persists an in-app notification and fans out the push in the
// background. The returned record is nil when persistence failed; Dispatch
// never returns an error and push outcomes never reach the caller.
func (s *Service) Dispatch(ctx context.Context, userID string, typ Type, title, body string, data map[string]any) *Notification {
	n := &Notification{
		UserID: schema.ID(userID),
		Type:   typ,
		Title:  title,
		Body:   body,
		Data:   data,
	}
	if err := schema.Validate(n); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("invalid notification, not dispatched")
		return nil
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("notification create failed")
		created = nil
	}

	// Push runs detached from the request: its own context, its own error
	// sink. It is attempted even when the in-app write failed.
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pushToUser(context.Background(), userID, title, body, data)
	}()

	return created
}

// Flush waits for in-flight pushes. Used on shutdown and in tests.
func (s *Service) Flush() {
	s.wg.Wait()
}

func (s *Service) pushToUser(ctx context.Context, userID, title, body string, data map[string]any) {
	if s.sender == nil {
		return
	}
	tokens, err := s.tokens.TokensForUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("token lookup failed, push skipped")
		return
	}
	if len(tokens) == 0 {
		return
	}

	result, err := s.sender.SendMulticast(ctx, push.Message{
		Tokens: tokens,
		Title:  title,
		Body:   body,
		Data:   push.StringifyData(data),
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("push send failed")
		return
	}

	s.log.Info().
		Str("user_id", userID).
		Int("success", result.SuccessCount).
		Int("failure", result.FailureCount).
		Msg("push fan-out complete")

	if len(result.InvalidTokens) > 0 {
		if err := s.tokens.RemoveTokens(ctx, result.InvalidTokens); err != nil {
			s.log.Error().Err(err).Int("tokens", len(result.InvalidTokens)).Msg("dead token cleanup failed")
			return
		}
		s.log.Info().Int("tokens", len(result.InvalidTokens)).Msg("dead tokens removed")
	}
}

// List returns a user's notifications, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Notification, error) {
	return s.repo.FindByUserID(ctx, userID, ListOptions{Limit: limit})
}

// UnreadCount counts a user's unread notifications without materializing
// them.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead flips one notification to read. Nil when the ID does not exist.
func (s *Service) MarkRead(ctx context.Context, id string) (*Notification, error) {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllRead flips every unread notification for the user. Idempotent: a
// second call reports zero updates.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (MarkAllResult, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// RegisterToken upserts a device token for the user; the most recent
// registration owns the token.
func (s *Service) RegisterToken(ctx context.Context, token, userID string) error {
	if token == "" {
		return schema.NewValidationError("token", "is required")
	}
	return s.tokens.Register(ctx, token, userID)
}
