package domain

// Ticket is a minted, ownable token bound to one event. A refunded ticket is
// destroyed and its token id is never reused.
type Ticket struct {
	TokenID     uint64  `json:"token_id"`
	EventID     uint64  `json:"event_id"`
	Owner       Address `json:"owner"`
	MetadataURI string  `json:"metadata_uri"`
	IsUsed      bool    `json:"is_used"` // one-way: false -> true
}
