// Package ledger is the ticketing ledger: the event registry, ticket
// issuance, payment accounting, entry validation, and the administrative
// surface around them. Every operation is atomic: it either completes in
// full or leaves all state unchanged. All state changes are appended to the
// journal for external consumers.
package ledger

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quantumtix/quantumticket/internal/domain"
	"github.com/quantumtix/quantumticket/internal/journal"
	"go.uber.org/zap"
)

// Params are the protocol constants the ledger enforces. They form part of
// the external contract and default to the domain package values.
type Params struct {
	PlatformFee       uint64
	MaxPerWallet      uint32
	MaxTicketsCeiling uint32
	EntryOffset       time.Duration
}

// DefaultParams returns the standard protocol parameters.
func DefaultParams() Params {
	return Params{
		PlatformFee:       domain.PlatformFee,
		MaxPerWallet:      domain.MaxPerWallet,
		MaxTicketsCeiling: domain.MaxTicketsCeiling,
		EntryOffset:       domain.DefaultEntryOffset,
	}
}

// Config holds the dependencies for a Ledger.
type Config struct {
	// Owner is the administrative identity: platform fee withdrawal,
	// pause/unpause, ownership transfer. Required.
	Owner domain.Address
	// Journal receives every committed state change. Defaults to an
	// in-memory journal.
	Journal journal.Sink
	// Payout delivers withdrawn and refunded funds. Defaults to a
	// log-only payout.
	Payout Payout
	// Clock supplies the current time. Defaults to time.Now.
	Clock func() time.Time
	// Logger is used for journal and payout diagnostics.
	Logger *zap.Logger
	// Params overrides the protocol constants; zero values are filled
	// from DefaultParams.
	Params Params
}

type purchaseKey struct {
	eventID uint64
	wallet  domain.Address
}

type scannerKey struct {
	eventID uint64
	scanner domain.Address
}

// Ledger holds all ticketing state behind a single lock, giving every
// operation the serialized, all-or-nothing semantics of a transaction.
// Storage is arena-style: events and tickets live in append-only slices
// indexed by id, and ids are never reused. A burned ticket leaves a nil slot.
type Ledger struct {
	mu sync.RWMutex

	owner  domain.Address
	paused bool

	events  []domain.Event
	tickets []*domain.Ticket

	purchases  map[purchaseKey]uint32
	scanners   map[scannerKey]bool
	approvals  map[uint64]domain.Address
	balances   map[domain.Address]uint64
	ownedCount map[domain.Address]uint32

	platformBalance uint64
	held            uint64
	seq             uint64

	params  Params
	clock   func() time.Time
	journal journal.Sink
	payout  Payout
	logger  *zap.Logger
}

// New creates a Ledger owned by cfg.Owner.
func New(cfg Config) *Ledger {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Journal == nil {
		cfg.Journal = journal.NewMemoryJournal()
	}
	if cfg.Payout == nil {
		cfg.Payout = NewLoggingPayout(cfg.Logger)
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	defaults := DefaultParams()
	if cfg.Params.PlatformFee == 0 {
		cfg.Params.PlatformFee = defaults.PlatformFee
	}
	if cfg.Params.MaxPerWallet == 0 {
		cfg.Params.MaxPerWallet = defaults.MaxPerWallet
	}
	if cfg.Params.MaxTicketsCeiling == 0 {
		cfg.Params.MaxTicketsCeiling = defaults.MaxTicketsCeiling
	}
	if cfg.Params.EntryOffset == 0 {
		cfg.Params.EntryOffset = defaults.EntryOffset
	}

	return &Ledger{
		owner:      cfg.Owner,
		purchases:  make(map[purchaseKey]uint32),
		scanners:   make(map[scannerKey]bool),
		approvals:  make(map[uint64]domain.Address),
		balances:   make(map[domain.Address]uint64),
		ownedCount: make(map[domain.Address]uint32),
		params:     cfg.Params,
		clock:      cfg.Clock,
		journal:    cfg.Journal,
		payout:     cfg.Payout,
		logger:     cfg.Logger,
	}
}

// emitLocked stamps and appends entries. Called with the write lock held, so
// sequence numbers are strictly ordered with state changes. A sink failure is
// logged, never propagated: the committed state change stands.
func (l *Ledger) emitLocked(ctx context.Context, entries ...journal.Entry) {
	now := l.clock()
	for i := range entries {
		l.seq++
		entries[i].Seq = l.seq
		entries[i].ID = uuid.NewString()
		entries[i].At = now
	}
	if err := l.journal.Append(ctx, entries...); err != nil {
		l.logger.Error("append journal entries", zap.Error(err))
	}
}

// CreateEventParams carries the caller-supplied event fields. An
// EntryOpenTime of zero means "unset" and resolves to the event date minus
// the default entry offset.
type CreateEventParams struct {
	Name          string
	Venue         string
	MetadataURI   string
	EventDate     int64
	EntryOpenTime int64
	TicketPrice   uint64
	MaxTickets    uint32
}

// CreateEvent registers a new event with the caller as organizer and returns
// its id. Any address may organize; the only global gate is the pause flag.
func (l *Ledger) CreateEvent(ctx context.Context, organizer domain.Address, p CreateEventParams) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return 0, ErrPaused
	}
	now := l.clock()
	if p.EventDate <= now.Unix() {
		return 0, ErrPastEventDate
	}
	if p.TicketPrice == 0 {
		return 0, ErrZeroPrice
	}
	if p.TicketPrice > math.MaxUint64-l.params.PlatformFee {
		return 0, ErrPriceTooHigh
	}
	if p.MaxTickets == 0 {
		return 0, ErrZeroSupply
	}
	if p.MaxTickets > l.params.MaxTicketsCeiling {
		return 0, ErrSupplyTooHigh
	}

	entryOpen := p.EntryOpenTime
	if entryOpen == 0 {
		entryOpen = p.EventDate - int64(l.params.EntryOffset/time.Second)
	} else {
		if entryOpen >= p.EventDate {
			return 0, ErrEntryAfterEvent
		}
		if entryOpen <= now.Unix() {
			return 0, ErrEntryInPast
		}
	}

	id := uint64(len(l.events))
	l.events = append(l.events, domain.Event{
		ID:            id,
		Name:          p.Name,
		Venue:         p.Venue,
		MetadataURI:   p.MetadataURI,
		EventDate:     p.EventDate,
		EntryOpenTime: entryOpen,
		TicketPrice:   p.TicketPrice,
		MaxTickets:    p.MaxTickets,
		Organizer:     organizer,
		IsActive:      true,
	})

	l.emitLocked(ctx, journal.Entry{
		Type:      journal.EntryEventCreated,
		EventID:   journal.Uint64(id),
		Name:      p.Name,
		Organizer: organizer,
		Amount:    p.TicketPrice,
	})
	return id, nil
}

// DeactivateEvent permanently stops ticket sales for the event. Sold tickets
// keep their validity for entry.
func (l *Ledger) DeactivateEvent(ctx context.Context, caller domain.Address, eventID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev, err := l.eventLocked(eventID)
	if err != nil {
		return err
	}
	if ev.Organizer != caller {
		return ErrNotOrganizer
	}
	ev.IsActive = false

	l.emitLocked(ctx, journal.Entry{
		Type:      journal.EntryEventDeactivated,
		EventID:   journal.Uint64(eventID),
		Organizer: caller,
	})
	return nil
}

// PurchaseReceipt describes a completed ticket purchase.
type PurchaseReceipt struct {
	TokenID uint64
	EventID uint64
	Charged uint64 // ticket price plus platform fee
	Change  uint64 // excess payment returned to the buyer
}

// BuyTicket mints a ticket for the buyer against the given payment. The
// payment must cover the ticket price plus the platform fee; any excess is
// returned as change on the receipt. The ticket price is credited to the
// organizer's withdrawable balance, the fee to the platform pool.
func (l *Ledger) BuyTicket(ctx context.Context, buyer domain.Address, eventID uint64, metadataURI string, payment uint64) (*PurchaseReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		return nil, ErrPaused
	}
	ev, err := l.eventLocked(eventID)
	if err != nil {
		return nil, err
	}
	if !ev.IsActive {
		return nil, ErrEventInactive
	}
	if ev.TicketsSold >= ev.MaxTickets {
		return nil, ErrSoldOut
	}
	key := purchaseKey{eventID: eventID, wallet: buyer}
	if l.purchases[key] >= l.params.MaxPerWallet {
		return nil, ErrPurchaseLimit
	}
	total := ev.TicketPrice + l.params.PlatformFee
	if payment < total {
		return nil, ErrInsufficientPayment
	}

	tokenID := uint64(len(l.tickets))
	l.tickets = append(l.tickets, &domain.Ticket{
		TokenID:     tokenID,
		EventID:     eventID,
		Owner:       buyer,
		MetadataURI: metadataURI,
	})
	ev.TicketsSold++
	l.purchases[key]++
	l.ownedCount[buyer]++
	l.balances[ev.Organizer] += ev.TicketPrice
	l.platformBalance += l.params.PlatformFee
	l.held += total

	l.emitLocked(ctx,
		journal.Entry{
			Type:    journal.EntryTicketTransferred,
			TokenID: journal.Uint64(tokenID),
			EventID: journal.Uint64(eventID),
			From:    domain.ZeroAddress,
			To:      buyer,
		},
		journal.Entry{
			Type:    journal.EntryTicketMinted,
			TokenID: journal.Uint64(tokenID),
			EventID: journal.Uint64(eventID),
			To:      buyer,
			Amount:  total,
		},
	)
	return &PurchaseReceipt{
		TokenID: tokenID,
		EventID: eventID,
		Charged: total,
		Change:  payment - total,
	}, nil
}

// UseTicket marks the ticket used, granting entry. Permitted from the
// event's entry-open time onward, to the ticket's owner or a scanner the
// organizer authorized. The transition is one-way.
func (l *Ledger) UseTicket(ctx context.Context, caller domain.Address, tokenID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.ticketLocked(tokenID)
	if err != nil {
		return err
	}
	if t.IsUsed {
		return ErrTicketUsed
	}
	ev := &l.events[t.EventID]
	if !ev.EntryOpen(l.clock()) {
		return ErrEntryNotOpen
	}
	if caller != t.Owner && !l.scanners[scannerKey{eventID: t.EventID, scanner: caller}] {
		return ErrNotOwnerOrScanner
	}
	t.IsUsed = true

	l.emitLocked(ctx, journal.Entry{
		Type:    journal.EntryTicketUsed,
		TokenID: journal.Uint64(tokenID),
		EventID: journal.Uint64(t.EventID),
		From:    caller,
	})
	return nil
}

// SetScanner grants or revokes an address's authority to validate tickets
// for the event. Organizer only.
func (l *Ledger) SetScanner(ctx context.Context, caller domain.Address, eventID uint64, scanner domain.Address, allow bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev, err := l.eventLocked(eventID)
	if err != nil {
		return err
	}
	if ev.Organizer != caller {
		return ErrNotOrganizer
	}
	if scanner.IsZero() {
		return ErrZeroAddress
	}
	if allow {
		l.scanners[scannerKey{eventID: eventID, scanner: scanner}] = true
	} else {
		delete(l.scanners, scannerKey{eventID: eventID, scanner: scanner})
	}

	l.emitLocked(ctx, journal.Entry{
		Type:      journal.EntryScannerUpdated,
		EventID:   journal.Uint64(eventID),
		Organizer: caller,
		Scanner:   scanner,
		Allowed:   allow,
	})
	return nil
}

// Approve lets the ticket owner designate one address that may transfer the
// token on their behalf. Cleared automatically on transfer and burn.
func (l *Ledger) Approve(ctx context.Context, caller domain.Address, tokenID uint64, spender domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.ticketLocked(tokenID)
	if err != nil {
		return err
	}
	if t.Owner != caller {
		return ErrNotOwnerOrApproved
	}
	if spender.IsZero() {
		delete(l.approvals, tokenID)
	} else {
		l.approvals[tokenID] = spender
	}
	return nil
}

// TransferTicket moves the ticket to a new owner. Locked until the event
// date has passed: the primary sale is protected from a resale window, and
// afterwards the ticket moves freely.
func (l *Ledger) TransferTicket(ctx context.Context, caller domain.Address, tokenID uint64, to domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.ticketLocked(tokenID)
	if err != nil {
		return err
	}
	if to.IsZero() {
		return ErrZeroAddress
	}
	if caller != t.Owner && l.approvals[tokenID] != caller {
		return ErrNotOwnerOrApproved
	}
	ev := &l.events[t.EventID]
	if !ev.DatePassed(l.clock()) {
		return ErrTransferLocked
	}

	from := t.Owner
	t.Owner = to
	delete(l.approvals, tokenID)
	l.ownedCount[from]--
	l.ownedCount[to]++

	l.emitLocked(ctx, journal.Entry{
		Type:    journal.EntryTicketTransferred,
		TokenID: journal.Uint64(tokenID),
		EventID: journal.Uint64(t.EventID),
		From:    from,
		To:      to,
	})
	return nil
}

// RefundReceipt describes a completed refund.
type RefundReceipt struct {
	TokenID   uint64
	EventID   uint64
	Recipient domain.Address
	Amount    uint64
}

// RefundTicket returns the ticket price to the current holder, burns the
// ticket, and frees one supply slot and one of the holder's purchase slots.
// Organizer only; the refund is paid out of the organizer's accumulated
// balance and fails if that balance cannot cover it, so other holders'
// claims on the pool stay protected.
func (l *Ledger) RefundTicket(ctx context.Context, caller domain.Address, tokenID uint64) (*RefundReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.ticketLocked(tokenID)
	if err != nil {
		return nil, err
	}
	ev := &l.events[t.EventID]
	if ev.Organizer != caller {
		return nil, ErrNotOrganizer
	}
	if t.IsUsed {
		return nil, ErrTicketUsed
	}
	price := ev.TicketPrice
	if l.balances[caller] < price {
		return nil, ErrRefundBalance
	}

	// Apply the refund in full before paying out, saving enough to undo it
	// if the payout is rejected. The lock is held through the payout: the
	// freed supply and purchase slots must not be claimable while the
	// refund's outcome is undecided, or a rejected payout could not restore
	// them without overselling. Payout implementations never call back into
	// the ledger, so this cannot deadlock.
	saved := *t
	key := purchaseKey{eventID: t.EventID, wallet: t.Owner}
	hadCount := l.purchases[key] > 0
	savedApproval, hadApproval := l.approvals[tokenID]

	recipient := t.Owner
	l.balances[caller] -= price
	l.held -= price
	ev.TicketsSold--
	if hadCount {
		l.purchases[key]--
	}
	l.ownedCount[recipient]--
	l.tickets[tokenID] = nil
	delete(l.approvals, tokenID)

	if err := l.payout.Pay(ctx, recipient, price); err != nil {
		restored := saved
		l.tickets[tokenID] = &restored
		l.balances[caller] += price
		l.held += price
		ev.TicketsSold++
		if hadCount {
			l.purchases[key]++
		}
		l.ownedCount[recipient]++
		if hadApproval {
			l.approvals[tokenID] = savedApproval
		}
		l.logger.Error("refund payout rejected",
			zap.Uint64("token_id", tokenID),
			zap.String("recipient", string(recipient)),
			zap.Error(err))
		return nil, &Error{CodePayout, "Refund payout failed"}
	}

	l.emitLocked(ctx,
		journal.Entry{
			Type:    journal.EntryTicketTransferred,
			TokenID: journal.Uint64(tokenID),
			EventID: journal.Uint64(saved.EventID),
			From:    recipient,
			To:      domain.ZeroAddress,
		},
		journal.Entry{
			Type:      journal.EntryRefundIssued,
			TokenID:   journal.Uint64(tokenID),
			EventID:   journal.Uint64(saved.EventID),
			To:        recipient,
			Organizer: caller,
			Amount:    price,
		},
	)

	return &RefundReceipt{
		TokenID:   tokenID,
		EventID:   saved.EventID,
		Recipient: recipient,
		Amount:    price,
	}, nil
}

// WithdrawOrganizerFunds pays the caller their entire accumulated balance.
// The balance is zeroed before the payout is attempted and re-credited only
// if the payout is rejected, so a reentrant or failing payout can never
// double-withdraw.
func (l *Ledger) WithdrawOrganizerFunds(ctx context.Context, caller domain.Address) (uint64, error) {
	l.mu.Lock()
	amount := l.balances[caller]
	if amount == 0 {
		l.mu.Unlock()
		return 0, ErrNothingToWithdraw
	}
	l.balances[caller] = 0
	l.held -= amount
	l.mu.Unlock()

	if err := l.payout.Pay(ctx, caller, amount); err != nil {
		l.mu.Lock()
		l.balances[caller] += amount
		l.held += amount
		l.mu.Unlock()
		l.logger.Error("organizer withdrawal payout rejected",
			zap.String("organizer", string(caller)),
			zap.Error(err))
		return 0, &Error{CodePayout, "Withdrawal payout failed"}
	}

	l.mu.Lock()
	l.emitLocked(ctx, journal.Entry{
		Type:      journal.EntryOrganizerWithdrawal,
		Organizer: caller,
		To:        caller,
		Amount:    amount,
	})
	l.mu.Unlock()
	return amount, nil
}

// WithdrawPlatformFees pays the contract owner the accumulated platform fee
// pool. Same zero-before-pay discipline as organizer withdrawal.
func (l *Ledger) WithdrawPlatformFees(ctx context.Context, caller domain.Address) (uint64, error) {
	l.mu.Lock()
	if caller != l.owner {
		l.mu.Unlock()
		return 0, ErrNotContractOwner
	}
	amount := l.platformBalance
	if amount == 0 {
		l.mu.Unlock()
		return 0, ErrNothingToWithdraw
	}
	l.platformBalance = 0
	l.held -= amount
	l.mu.Unlock()

	if err := l.payout.Pay(ctx, caller, amount); err != nil {
		l.mu.Lock()
		l.platformBalance += amount
		l.held += amount
		l.mu.Unlock()
		l.logger.Error("platform withdrawal payout rejected", zap.Error(err))
		return 0, &Error{CodePayout, "Withdrawal payout failed"}
	}

	l.mu.Lock()
	l.emitLocked(ctx, journal.Entry{
		Type:   journal.EntryPlatformWithdrawal,
		To:     caller,
		Amount: amount,
	})
	l.mu.Unlock()
	return amount, nil
}

// Pause blocks event creation and ticket purchase, the two state-growing,
// payment-accepting operations. Entry validation, refunds and withdrawals
// stay available so holders are never locked out of what they already own.
func (l *Ledger) Pause(ctx context.Context, caller domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrNotContractOwner
	}
	if l.paused {
		return ErrAlreadyPaused
	}
	l.paused = true
	l.emitLocked(ctx, journal.Entry{Type: journal.EntryLedgerPaused, From: caller})
	return nil
}

// Unpause restores normal operation.
func (l *Ledger) Unpause(ctx context.Context, caller domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrNotContractOwner
	}
	if !l.paused {
		return ErrNotPaused
	}
	l.paused = false
	l.emitLocked(ctx, journal.Entry{Type: journal.EntryLedgerUnpaused, From: caller})
	return nil
}

// TransferOwnership hands the administrative identity to a new address in a
// single step.
func (l *Ledger) TransferOwnership(ctx context.Context, caller, newOwner domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.owner {
		return ErrNotContractOwner
	}
	if newOwner.IsZero() {
		return ErrZeroAddress
	}
	previous := l.owner
	l.owner = newOwner

	l.emitLocked(ctx, journal.Entry{
		Type: journal.EntryOwnershipTransferred,
		From: previous,
		To:   newOwner,
	})
	return nil
}

// --- Reads ---

// GetEventDetails returns a copy of the event record.
func (l *Ledger) GetEventDetails(eventID uint64) (domain.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ev, err := l.eventLocked(eventID)
	if err != nil {
		return domain.Event{}, err
	}
	return *ev, nil
}

// TotalEvents returns the number of events ever created.
func (l *Ledger) TotalEvents() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return uint64(len(l.events))
}

// GetTicketDetails returns a copy of the ticket record. Burned tickets do
// not exist.
func (l *Ledger) GetTicketDetails(tokenID uint64) (domain.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, err := l.ticketLocked(tokenID)
	if err != nil {
		return domain.Ticket{}, err
	}
	return *t, nil
}

// TotalTickets returns the number of tickets ever minted, including burned
// ones (token ids are never reused).
func (l *Ledger) TotalTickets() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return uint64(len(l.tickets))
}

// OwnerOf returns the current holder of the ticket.
func (l *Ledger) OwnerOf(tokenID uint64) (domain.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, err := l.ticketLocked(tokenID)
	if err != nil {
		return domain.ZeroAddress, err
	}
	return t.Owner, nil
}

// BalanceOf returns how many tickets the address currently holds, across all
// events. Token enumeration is deliberately not offered; the indexer
// reconstructs it from the journal.
func (l *Ledger) BalanceOf(addr domain.Address) uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.ownedCount[addr]
}

// PurchaseCount returns the wallet's unrefunded purchases for the event.
func (l *Ledger) PurchaseCount(eventID uint64, wallet domain.Address) uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.purchases[purchaseKey{eventID: eventID, wallet: wallet}]
}

// IsScanner reports whether the address may validate tickets for the event.
func (l *Ledger) IsScanner(eventID uint64, addr domain.Address) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.scanners[scannerKey{eventID: eventID, scanner: addr}]
}

// OrganizerBalance returns the organizer's withdrawable balance.
func (l *Ledger) OrganizerBalance(addr domain.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[addr]
}

// PlatformBalance returns the accumulated platform fee pool.
func (l *Ledger) PlatformBalance() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.platformBalance
}

// TotalHeld returns the funds the ledger holds on behalf of organizers and
// the platform. Invariant: it always equals the sum of all organizer
// balances plus the platform pool.
func (l *Ledger) TotalHeld() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.held
}

// Paused reports whether the ledger is paused.
func (l *Ledger) Paused() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.paused
}

// Owner returns the administrative identity.
func (l *Ledger) Owner() domain.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.owner
}

// eventLocked resolves an event id to its record. Caller holds the lock.
func (l *Ledger) eventLocked(eventID uint64) (*domain.Event, error) {
	if eventID >= uint64(len(l.events)) {
		return nil, ErrEventNotFound
	}
	return &l.events[eventID], nil
}

// ticketLocked resolves a token id to its record. Caller holds the lock.
// Burned tickets resolve to not-found.
func (l *Ledger) ticketLocked(tokenID uint64) (*domain.Ticket, error) {
	if tokenID >= uint64(len(l.tickets)) || l.tickets[tokenID] == nil {
		return nil, ErrTicketNotFound
	}
	return l.tickets[tokenID], nil
}
