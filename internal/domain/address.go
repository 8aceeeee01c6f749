package domain

// Address identifies a wallet on the ledger. The surrounding session layer
// authenticates it; the ledger treats it as an opaque, case-sensitive string.
type Address string

// ZeroAddress is the pseudo-address used for the mint and burn legs of a
// ticket transfer. No wallet may ever hold it.
const ZeroAddress Address = ""

// IsZero reports whether the address is the mint/burn pseudo-address.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}
