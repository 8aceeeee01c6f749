package ledger

// Error codes, grouped by failure category. The HTTP edge maps them to
// status codes; the reason string travels to the end user verbatim.
const (
	CodeValidation = "VALIDATION_FAILED"
	CodeNotFound   = "NOT_FOUND"
	CodeState      = "STATE_PRECONDITION"
	CodeForbidden  = "FORBIDDEN"
	CodePayment    = "INSUFFICIENT_PAYMENT"
	CodePaused     = "LEDGER_PAUSED"
	CodePayout     = "PAYOUT_FAILED"
)

// Error is a ledger rejection: a stable machine code plus the user-facing
// reason string. Every failed operation leaves the ledger state untouched.
type Error struct {
	Code   string
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Ledger errors. The reason strings are part of the external contract and
// must stay byte-for-byte stable.
var (
	ErrPaused = &Error{CodePaused, "Contract is paused"}

	ErrEventNotFound  = &Error{CodeNotFound, "Event does not exist"}
	ErrTicketNotFound = &Error{CodeNotFound, "Ticket does not exist"}

	ErrPastEventDate = &Error{CodeValidation, "Event date must be in the future"}
	ErrZeroPrice     = &Error{CodeValidation, "Ticket price must be greater than 0"}
	ErrPriceTooHigh  = &Error{CodeValidation, "Ticket price is too large"}
	ErrZeroSupply    = &Error{CodeValidation, "Max tickets must be greater than 0"}
	ErrSupplyTooHigh = &Error{CodeValidation, "Max tickets cannot exceed 100,000"}
	ErrEntryAfterEvent = &Error{CodeValidation, "Entry open time must be before the event date"}
	ErrEntryInPast     = &Error{CodeValidation, "Entry open time must be in the future"}
	ErrZeroAddress     = &Error{CodeValidation, "Address must not be the zero address"}

	ErrEventInactive     = &Error{CodeState, "Event is not active"}
	ErrSoldOut           = &Error{CodeState, "Event is sold out"}
	ErrPurchaseLimit     = &Error{CodeState, "Purchase limit reached"}
	ErrEntryNotOpen      = &Error{CodeState, "Entry not yet open"}
	ErrTicketUsed        = &Error{CodeState, "Ticket already used"}
	ErrTransferLocked    = &Error{CodeState, "Transfers disabled before event"}
	ErrNothingToWithdraw = &Error{CodeState, "Nothing to withdraw"}
	ErrRefundBalance     = &Error{CodeState, "Insufficient organizer balance for refund"}
	ErrAlreadyPaused     = &Error{CodeState, "Contract is already paused"}
	ErrNotPaused         = &Error{CodeState, "Contract is not paused"}

	ErrNotOrganizer       = &Error{CodeForbidden, "Not the event organizer"}
	ErrNotContractOwner   = &Error{CodeForbidden, "Not the contract owner"}
	ErrNotOwnerOrScanner  = &Error{CodeForbidden, "Not ticket owner or scanner"}
	ErrNotOwnerOrApproved = &Error{CodeForbidden, "Not ticket owner or approved"}

	ErrInsufficientPayment = &Error{CodePayment, "Insufficient payment for ticket and platform fee"}
)
