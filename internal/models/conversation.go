// internal/models/conversation.go
package models

import "time"

// MessageRole distinguishes who produced a transcript entry.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry in a conversation transcript.
type Message struct {
	Role           MessageRole `json:"role"`
	Text           string      `json:"text"`
	Timestamp      time.Time   `json:"timestamp"`
	SuggestedItems []MenuItem  `json:"suggestedItems,omitempty"`
	Actions        []string    `json:"actions,omitempty"`
}

// CartItem is a name/qty/price tuple snapshotted from the client cart.
type CartItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ConversationContext carries the per-session state the generator personalizes
// against. It is rebuilt on every assistant invocation and never persisted here.
type ConversationContext struct {
	CustomerName string     `json:"customerName,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	LoyaltyTier  Tier       `json:"loyaltyTier,omitempty"`
	Points       int        `json:"points,omitempty"`
	VisitCount   int        `json:"visitCount,omitempty"`
	Favorites    []string   `json:"favorites,omitempty"`
	Dietary      []string   `json:"dietary,omitempty"`
	Cart         []CartItem `json:"cart,omitempty"`
	LocationID   string     `json:"locationId,omitempty"`
	Language     string     `json:"language,omitempty"`
	Now          time.Time  `json:"-"`
}

// CartTotal sums the cart snapshot.
func (c *ConversationContext) CartTotal() float64 {
	var total float64
	for _, item := range c.Cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
