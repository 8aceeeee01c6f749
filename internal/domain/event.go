package domain

import "time"

// Protocol constants. These are part of the external contract and are the
// same for every event on the ledger.
const (
	// PlatformFee is the flat fee retained per ticket purchase, in the
	// native currency's smallest unit (18-decimal: 0.0001).
	PlatformFee uint64 = 100_000_000_000_000

	// MaxPerWallet is the maximum number of unrefunded tickets a single
	// wallet may purchase for one event.
	MaxPerWallet uint32 = 5

	// MaxTicketsCeiling is the upper bound on an event's ticket supply.
	MaxTicketsCeiling uint32 = 100_000

	// DefaultEntryOffset is how long before the event date entry opens
	// when no explicit entry-open time is given.
	DefaultEntryOffset = 2 * time.Hour
)

// Event is a sellable occurrence. Records are append-only: an event is never
// deleted, and its id is never reused.
type Event struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Venue         string  `json:"venue"`
	MetadataURI   string  `json:"metadata_uri"`
	EventDate     int64   `json:"event_date"`      // Unix seconds
	EntryOpenTime int64   `json:"entry_open_time"` // Unix seconds, always < EventDate
	TicketPrice   uint64  `json:"ticket_price"`
	MaxTickets    uint32  `json:"max_tickets"`
	TicketsSold   uint32  `json:"tickets_sold"`
	Organizer     Address `json:"organizer"`
	IsActive      bool    `json:"is_active"`
}

// SoldOut reports whether the event has no supply left.
func (e *Event) SoldOut() bool {
	return e.TicketsSold >= e.MaxTickets
}

// EntryOpen reports whether entry validation is permitted at the given time.
func (e *Event) EntryOpen(at time.Time) bool {
	return at.Unix() >= e.EntryOpenTime
}

// DatePassed reports whether the event date lies strictly in the past at the
// given time. Ticket transfers unlock once this is true.
func (e *Event) DatePassed(at time.Time) bool {
	return at.Unix() > e.EventDate
}
