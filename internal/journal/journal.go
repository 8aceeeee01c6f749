// Package journal is the append-only record of every state change the ledger
// makes. External consumers (the ownership indexer in particular) reconstruct
// derived views by replaying entries; the ledger itself never reads them back.
package journal

import (
	"context"
	"time"

	"github.com/quantumtix/quantumticket/internal/domain"
)

// EntryType discriminates journal entries.
type EntryType string

const (
	EntryEventCreated         EntryType = "event.created"
	EntryEventDeactivated     EntryType = "event.deactivated"
	EntryTicketMinted         EntryType = "ticket.minted"
	EntryTicketTransferred    EntryType = "ticket.transferred"
	EntryTicketUsed           EntryType = "ticket.used"
	EntryScannerUpdated       EntryType = "scanner.updated"
	EntryRefundIssued         EntryType = "refund.issued"
	EntryOrganizerWithdrawal  EntryType = "withdrawal.organizer"
	EntryPlatformWithdrawal   EntryType = "withdrawal.platform"
	EntryLedgerPaused         EntryType = "ledger.paused"
	EntryLedgerUnpaused       EntryType = "ledger.unpaused"
	EntryOwnershipTransferred EntryType = "ledger.ownership_transferred"
)

// Entry is one journal record. Which fields are set depends on Type; ids are
// pointers because both event id 0 and token id 0 are valid subjects.
// Transfer entries use domain.ZeroAddress for the mint (From) and burn (To)
// legs, mirroring the usual token-transfer log convention.
type Entry struct {
	ID        string         `json:"id"`
	Seq       uint64         `json:"seq"`
	Type      EntryType      `json:"type"`
	At        time.Time      `json:"at"`
	EventID   *uint64        `json:"event_id,omitempty"`
	TokenID   *uint64        `json:"token_id,omitempty"`
	From      domain.Address `json:"from,omitempty"`
	To        domain.Address `json:"to,omitempty"`
	Organizer domain.Address `json:"organizer,omitempty"`
	Scanner   domain.Address `json:"scanner,omitempty"`
	Allowed   bool           `json:"allowed,omitempty"`
	Amount    uint64         `json:"amount,omitempty"`
	Name      string         `json:"name,omitempty"`
}

// Sink receives committed entries. Appends happen after the ledger state
// change is final; a sink must not call back into the ledger, and a sink
// error never unwinds the committed state.
type Sink interface {
	Append(ctx context.Context, entries ...Entry) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, entries ...Entry) error

// Append implements Sink.
func (f SinkFunc) Append(ctx context.Context, entries ...Entry) error {
	return f(ctx, entries...)
}

// Uint64 returns a pointer to v, for populating Entry id fields.
func Uint64(v uint64) *uint64 {
	return &v
}
