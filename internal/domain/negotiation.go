package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// NegotiationStatus represents the lifecycle state of a negotiation.
// Transitions are one-way: active -> accepted/rejected/expired.
type NegotiationStatus string

const (
	NegotiationActive   NegotiationStatus = "active"
	NegotiationAccepted NegotiationStatus = "accepted"
	NegotiationRejected NegotiationStatus = "rejected"
	NegotiationExpired  NegotiationStatus = "expired"
)

// Terminal reports whether s admits no further transitions.
func (s NegotiationStatus) Terminal() bool {
	return s == NegotiationAccepted || s == NegotiationRejected || s == NegotiationExpired
}

// MessageType identifies who authored a negotiation message.
type MessageType string

const (
	MessageAI     MessageType = "ai"
	MessageSeller MessageType = "seller"
	MessageBuyer  MessageType = "buyer"
)

// NegotiationMessage is one entry in a negotiation transcript. ID is the
// decimal string of the message's 1-based position within the negotiation.
type NegotiationMessage struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"` // RFC 3339
}

// Negotiation is a haggling session between a buyer (via the AI proxy) and a
// seller over a single listing. OriginalPrice is a snapshot of the listing
// price at creation and never changes; CurrentOffer climbs toward it with
// every round but never reaches it.
type Negotiation struct {
	ID            string               `json:"id"`
	SneakerID     string               `json:"sneakerId"`
	BuyerID       string               `json:"buyerId"`
	SellerID      string               `json:"sellerId"`
	OriginalPrice float64              `json:"originalPrice"`
	CurrentOffer  float64              `json:"currentOffer"`
	FinalPrice    *float64             `json:"finalPrice,omitempty"`
	Status        NegotiationStatus    `json:"status"`
	Messages      []NegotiationMessage `json:"messages"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// EncodeMessages serializes each message independently to one JSON string.
// This is the storage representation; in-memory and on the wire, messages are
// always structured values.
func EncodeMessages(msgs []NegotiationMessage) ([]string, error) {
	encoded := make([]string, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("domain: encode message %s: %w", m.ID, err)
		}
		encoded = append(encoded, string(data))
	}
	return encoded, nil
}

// DecodeMessages is the inverse of EncodeMessages. Decoding then encoding a
// transcript yields the identical ordered sequence.
func DecodeMessages(encoded []string) ([]NegotiationMessage, error) {
	msgs := make([]NegotiationMessage, 0, len(encoded))
	for i, s := range encoded {
		var m NegotiationMessage
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			return nil, fmt.Errorf("domain: decode message at index %d: %w", i, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}
