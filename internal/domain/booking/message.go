package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage   = errors.New("message body cannot be empty")
	ErrMessageTooLong = errors.New("message body exceeds maximum length")
)

const MaxMessageLength = 2000

// Message is one entry of a booking's append-only message thread.
type Message struct {
	id        uuid.UUID
	bookingID uuid.UUID
	senderID  uuid.UUID
	body      string
	createdAt time.Time
}

func NewMessage(bookingID, senderID uuid.UUID, body string, now time.Time) (*Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if len(body) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	return &Message{
		id:        uuid.New(),
		bookingID: bookingID,
		senderID:  senderID,
		body:      body,
		createdAt: now,
	}, nil
}

func ReconstructMessage(id, bookingID, senderID uuid.UUID, body string, createdAt time.Time) *Message {
	return &Message{
		id:        id,
		bookingID: bookingID,
		senderID:  senderID,
		body:      body,
		createdAt: createdAt,
	}
}

func (m *Message) ID() uuid.UUID        { return m.id }
func (m *Message) BookingID() uuid.UUID { return m.bookingID }
func (m *Message) SenderID() uuid.UUID  { return m.senderID }
func (m *Message) Body() string         { return m.body }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
