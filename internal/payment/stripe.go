// Package payment provides settlement backends for funds leaving the ledger.
package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/quantumtix/quantumticket/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/transfer"
	"go.uber.org/zap"
)

// StripeConfig holds Stripe settlement settings.
type StripeConfig struct {
	// APIKey is the secret key for the Stripe account.
	APIKey string
	// Currency for transfers, e.g. "usd". Amounts are passed through in the
	// currency's smallest unit.
	Currency string
}

// StripePayout delivers ledger payouts as Stripe transfers. The recipient's
// ledger address doubles as the destination account identifier, so wallets
// that should receive settlements are onboarded under that id.
type StripePayout struct {
	currency string
	logger   *zap.Logger
}

// NewStripePayout configures the Stripe client and returns the payout
// backend.
func NewStripePayout(cfg StripeConfig, logger *zap.Logger) *StripePayout {
	stripe.Key = cfg.APIKey
	if logger == nil {
		logger = zap.NewNop()
	}
	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripePayout{currency: currency, logger: logger}
}

// Pay creates a transfer to the recipient. It never calls back into the
// ledger; the ledger may hold its lock while this runs.
func (p *StripePayout) Pay(ctx context.Context, to domain.Address, amount uint64) error {
	if amount > math.MaxInt64 {
		return fmt.Errorf("payout amount %d exceeds transferable range", amount)
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(int64(amount)),
		Currency:    stripe.String(p.currency),
		Destination: stripe.String(string(to)),
	}
	params.Context = ctx

	tr, err := transfer.New(params)
	if err != nil {
		return fmt.Errorf("stripe transfer: %w", err)
	}

	p.logger.Info("stripe transfer created",
		zap.String("transfer_id", tr.ID),
		zap.String("destination", string(to)),
		zap.Uint64("amount", amount))
	return nil
}
