package message

import "github.com/diacare/diacare/internal/platform/schema"

// Message is one chat message between two participants. Sender and receiver
// are logical references compared as strings, so numeric and document IDs
// mix freely.
type Message struct {
	ID         schema.ID   `json:"id,omitempty"`
	SenderID   schema.ID   `json:"senderId" validate:"required"`
	ReceiverID schema.ID   `json:"receiverId" validate:"required"`
	Text       string      `json:"text" validate:"required"`
	Timestamp  schema.Time `json:"timestamp"`
	Read       bool        `json:"read"`

	// Joined display names, present when a caller attached them.
	SenderName   string `json:"senderName,omitempty"`
	ReceiverName string `json:"receiverName,omitempty"`
}
