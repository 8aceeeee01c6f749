package payment

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/quantumtix/quantumticket/internal/domain"
)

func TestNewStripePayout_CurrencyDefault(t *testing.T) {
	p := NewStripePayout(StripeConfig{APIKey: "sk_test_x"}, nil)
	if p.currency != "usd" {
		t.Errorf("currency = %q, want %q", p.currency, "usd")
	}

	p = NewStripePayout(StripeConfig{APIKey: "sk_test_x", Currency: "eur"}, nil)
	if p.currency != "eur" {
		t.Errorf("currency = %q, want %q", p.currency, "eur")
	}
}

func TestStripePayout_AmountRangeGuard(t *testing.T) {
	p := NewStripePayout(StripeConfig{APIKey: "sk_test_x"}, nil)

	err := p.Pay(context.Background(), domain.Address("acct_123"), math.MaxInt64+1)
	if err == nil {
		t.Fatal("Pay() error = nil, want range error for amount above int64")
	}
	if !strings.Contains(err.Error(), "transferable range") {
		t.Errorf("Pay() error = %v, want transferable range message", err)
	}
}
