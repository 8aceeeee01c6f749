package ledger

import (
	"context"

	"github.com/quantumtix/quantumticket/internal/domain"
	"go.uber.org/zap"
)

// Payout delivers funds to an external party. It is the capability boundary
// around the one step the ledger cannot control: the ledger invokes it only
// after its own state is consistent, and a failure here re-credits the
// balance instead of corrupting it. Implementations must not call back into
// the ledger.
type Payout interface {
	Pay(ctx context.Context, to domain.Address, amount uint64) error
}

// PayoutFunc adapts a function to the Payout interface.
type PayoutFunc func(ctx context.Context, to domain.Address, amount uint64) error

// Pay calls f.
func (f PayoutFunc) Pay(ctx context.Context, to domain.Address, amount uint64) error {
	return f(ctx, to, amount)
}

// LoggingPayout records each payout in the log and always succeeds. It is
// the default when no settlement backend is wired in; an operator reconciles
// the logged payouts against the actual money movement.
type LoggingPayout struct {
	logger *zap.Logger
}

// NewLoggingPayout creates a LoggingPayout.
func NewLoggingPayout(logger *zap.Logger) *LoggingPayout {
	return &LoggingPayout{logger: logger}
}

// Pay logs the payout.
func (p *LoggingPayout) Pay(ctx context.Context, to domain.Address, amount uint64) error {
	p.logger.Info("payout",
		zap.String("to", string(to)),
		zap.Uint64("amount", amount))
	return nil
}
