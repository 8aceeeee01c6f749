// Package dto defines the HTTP request and response shapes.
package dto

import (
	"github.com/quantumtix/quantumticket/internal/domain"
	"github.com/quantumtix/quantumticket/internal/ledger"
)

// CreateEventRequest is the payload for POST /events.
type CreateEventRequest struct {
	Name          string `json:"name" binding:"required"`
	Venue         string `json:"venue"`
	MetadataURI   string `json:"metadata_uri"`
	EventDate     int64  `json:"event_date" binding:"required"`
	EntryOpenTime int64  `json:"entry_open_time"`
	TicketPrice   uint64 `json:"ticket_price" binding:"required"`
	MaxTickets    uint32 `json:"max_tickets" binding:"required"`
}

// Validate checks request fields that gin bindings cannot express.
func (r *CreateEventRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Event name is required"
	}
	if len(r.Name) > 200 {
		return false, "Event name must be at most 200 characters"
	}
	if r.EventDate <= 0 {
		return false, "Event date is required"
	}
	return true, ""
}

// PurchaseTicketRequest is the payload for POST /tickets/purchase. Payment
// is the amount the buyer commits, in wei.
type PurchaseTicketRequest struct {
	EventID     *uint64 `json:"event_id" binding:"required"`
	MetadataURI string  `json:"metadata_uri"`
	Payment     *uint64 `json:"payment" binding:"required"`
}

// TransferTicketRequest is the payload for POST /tickets/:id/transfer.
type TransferTicketRequest struct {
	To string `json:"to" binding:"required"`
}

// ApproveRequest is the payload for POST /tickets/:id/approve. An empty
// spender clears the approval.
type ApproveRequest struct {
	Spender string `json:"spender"`
}

// SetScannerRequest is the payload for POST /events/:id/scanners.
type SetScannerRequest struct {
	Scanner string `json:"scanner" binding:"required"`
	Allowed *bool  `json:"allowed" binding:"required"`
}

// TransferOwnershipRequest is the payload for POST /admin/transfer-ownership.
type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

// EventResponse describes an event.
type EventResponse struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Venue         string `json:"venue,omitempty"`
	MetadataURI   string `json:"metadata_uri,omitempty"`
	EventDate     int64  `json:"event_date"`
	EntryOpenTime int64  `json:"entry_open_time"`
	TicketPrice   uint64 `json:"ticket_price"`
	MaxTickets    uint32 `json:"max_tickets"`
	TicketsSold   uint32 `json:"tickets_sold"`
	Organizer     string `json:"organizer"`
	IsActive      bool   `json:"is_active"`
}

// ToEventResponse converts a domain event to its response shape.
func ToEventResponse(ev domain.Event) *EventResponse {
	return &EventResponse{
		ID:            ev.ID,
		Name:          ev.Name,
		Venue:         ev.Venue,
		MetadataURI:   ev.MetadataURI,
		EventDate:     ev.EventDate,
		EntryOpenTime: ev.EntryOpenTime,
		TicketPrice:   ev.TicketPrice,
		MaxTickets:    ev.MaxTickets,
		TicketsSold:   ev.TicketsSold,
		Organizer:     string(ev.Organizer),
		IsActive:      ev.IsActive,
	}
}

// TicketResponse describes a ticket.
type TicketResponse struct {
	TokenID     uint64 `json:"token_id"`
	EventID     uint64 `json:"event_id"`
	Owner       string `json:"owner"`
	MetadataURI string `json:"metadata_uri,omitempty"`
	IsUsed      bool   `json:"is_used"`
}

// ToTicketResponse converts a domain ticket to its response shape.
func ToTicketResponse(t domain.Ticket) *TicketResponse {
	return &TicketResponse{
		TokenID:     t.TokenID,
		EventID:     t.EventID,
		Owner:       string(t.Owner),
		MetadataURI: t.MetadataURI,
		IsUsed:      t.IsUsed,
	}
}

// PurchaseResponse describes a completed purchase.
type PurchaseResponse struct {
	TokenID uint64 `json:"token_id"`
	EventID uint64 `json:"event_id"`
	Charged uint64 `json:"charged"`
	Change  uint64 `json:"change"`
}

// ToPurchaseResponse converts a purchase receipt to its response shape.
func ToPurchaseResponse(r *ledger.PurchaseReceipt) *PurchaseResponse {
	return &PurchaseResponse{
		TokenID: r.TokenID,
		EventID: r.EventID,
		Charged: r.Charged,
		Change:  r.Change,
	}
}

// RefundResponse describes a completed refund.
type RefundResponse struct {
	TokenID   uint64 `json:"token_id"`
	EventID   uint64 `json:"event_id"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// ToRefundResponse converts a refund receipt to its response shape.
func ToRefundResponse(r *ledger.RefundReceipt) *RefundResponse {
	return &RefundResponse{
		TokenID:   r.TokenID,
		EventID:   r.EventID,
		Recipient: string(r.Recipient),
		Amount:    r.Amount,
	}
}

// WithdrawalResponse describes a completed withdrawal.
type WithdrawalResponse struct {
	Amount uint64 `json:"amount"`
}

// BalanceResponse describes a wallet's holdings.
type BalanceResponse struct {
	Wallet   string   `json:"wallet"`
	Count    uint32   `json:"count"`
	TokenIDs []uint64 `json:"token_ids,omitempty"`
}

// StatusResponse describes the ledger's administrative state.
type StatusResponse struct {
	Owner           string `json:"owner"`
	Paused          bool   `json:"paused"`
	TotalEvents     uint64 `json:"total_events"`
	TotalTickets    uint64 `json:"total_tickets"`
	PlatformBalance uint64 `json:"platform_balance"`
	TotalHeld       uint64 `json:"total_held"`
}
