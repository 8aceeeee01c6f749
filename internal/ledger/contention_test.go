package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/quantumtix/quantumticket/internal/domain"
)

// Contention tests: many concurrent buyers racing for limited supply must
// produce exactly supply winners, never oversell, and keep the payment pool
// consistent.

func TestConcurrentPurchase_ExactlySellsOut(t *testing.T) {
	c := newFakeClock()
	l := newTestLedger(c)

	supply := uint32(10)
	id, err := l.CreateEvent(context.Background(), organizerAddr, CreateEventParams{
		Name:        "Herd Night",
		EventDate:   c.Now().Add(48 * time.Hour).Unix(),
		TicketPrice: testPrice,
		MaxTickets:  supply,
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	numConcurrent := 100
	var winners, losers, unexpected int32
	var wg sync.WaitGroup

	for i := 0; i < numConcurrent; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			buyer := domain.Address(fmt.Sprintf("0xbuyer%04d", idx))
			_, err := l.BuyTicket(context.Background(), buyer, id, "", testPrice+domain.PlatformFee)
			switch {
			case err == nil:
				atomic.AddInt32(&winners, 1)
			case errors.Is(err, ErrSoldOut):
				atomic.AddInt32(&losers, 1)
			default:
				atomic.AddInt32(&unexpected, 1)
				t.Errorf("BuyTicket() unexpected error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	if winners != int32(supply) {
		t.Errorf("winners = %d, want exactly %d", winners, supply)
	}
	if losers != int32(numConcurrent)-int32(supply) {
		t.Errorf("losers = %d, want %d", losers, int32(numConcurrent)-int32(supply))
	}
	if unexpected != 0 {
		t.Errorf("unexpected errors = %d, want 0", unexpected)
	}

	ev, err := l.GetEventDetails(id)
	if err != nil {
		t.Fatalf("GetEventDetails() error = %v", err)
	}
	if ev.TicketsSold != supply {
		t.Errorf("TicketsSold = %d, want %d", ev.TicketsSold, supply)
	}
	if got := l.TotalTickets(); got != uint64(supply) {
		t.Errorf("TotalTickets() = %d, want %d", got, supply)
	}

	wantHeld := uint64(supply) * (testPrice + domain.PlatformFee)
	if got := l.TotalHeld(); got != wantHeld {
		t.Errorf("TotalHeld() = %d, want %d", got, wantHeld)
	}
}

func TestConcurrentPurchase_LastTicketSingleWinner(t *testing.T) {
	c := newFakeClock()
	l := newTestLedger(c)

	id, err := l.CreateEvent(context.Background(), organizerAddr, CreateEventParams{
		Name:        "Final Seat",
		EventDate:   c.Now().Add(48 * time.Hour).Unix(),
		TicketPrice: testPrice,
		MaxTickets:  1,
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	numConcurrent := 200
	var winners int32
	var wg sync.WaitGroup

	for i := 0; i < numConcurrent; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			buyer := domain.Address(fmt.Sprintf("0xlast%04d", idx))
			if _, err := l.BuyTicket(context.Background(), buyer, id, "", testPrice+domain.PlatformFee); err == nil {
				atomic.AddInt32(&winners, 1)
			}
		}(i)
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("winners = %d, want exactly 1", winners)
	}
}

func TestConcurrentPurchase_PerWalletLimitHolds(t *testing.T) {
	c := newFakeClock()
	l := newTestLedger(c)
	id := mustCreateEvent(t, l, c)

	numConcurrent := 50
	var winners, limited int32
	var wg sync.WaitGroup

	for i := 0; i < numConcurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := l.BuyTicket(context.Background(), aliceAddr, id, "", testPrice+domain.PlatformFee)
			switch {
			case err == nil:
				atomic.AddInt32(&winners, 1)
			case errors.Is(err, ErrPurchaseLimit):
				atomic.AddInt32(&limited, 1)
			default:
				t.Errorf("BuyTicket() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if winners != int32(domain.MaxPerWallet) {
		t.Errorf("winners = %d, want %d", winners, domain.MaxPerWallet)
	}
	if got := l.PurchaseCount(id, aliceAddr); got != domain.MaxPerWallet {
		t.Errorf("PurchaseCount() = %d, want %d", got, domain.MaxPerWallet)
	}
	if got := l.BalanceOf(aliceAddr); got != domain.MaxPerWallet {
		t.Errorf("BalanceOf() = %d, want %d", got, domain.MaxPerWallet)
	}
}

func TestRefundPayoutFailure_ConcurrentPurchaseCannotOversell(t *testing.T) {
	c := newFakeClock()

	payoutStarted := make(chan struct{})
	payoutRelease := make(chan struct{})
	l := New(Config{
		Owner: ownerAddr,
		Clock: c.Now,
		Payout: PayoutFunc(func(ctx context.Context, to domain.Address, amount uint64) error {
			close(payoutStarted)
			<-payoutRelease
			return errors.New("settlement rejected")
		}),
	})

	id, err := l.CreateEvent(context.Background(), organizerAddr, CreateEventParams{
		Name:        "Single Seat",
		EventDate:   c.Now().Add(48 * time.Hour).Unix(),
		TicketPrice: testPrice,
		MaxTickets:  1,
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	receipt, err := l.BuyTicket(context.Background(), aliceAddr, id, "", testPrice+domain.PlatformFee)
	if err != nil {
		t.Fatalf("BuyTicket() error = %v", err)
	}
	heldBefore := l.TotalHeld()

	refundDone := make(chan error, 1)
	go func() {
		_, err := l.RefundTicket(context.Background(), organizerAddr, receipt.TokenID)
		refundDone <- err
	}()

	// Race a purchase against the in-flight refund. The freed slot must not
	// be claimable while the refund's payout is still undecided.
	<-payoutStarted
	buyDone := make(chan error, 1)
	go func() {
		_, err := l.BuyTicket(context.Background(), bobAddr, id, "", testPrice+domain.PlatformFee)
		buyDone <- err
	}()

	time.Sleep(20 * time.Millisecond)
	close(payoutRelease)

	refundErr := <-refundDone
	var lerr *Error
	if !errors.As(refundErr, &lerr) || lerr.Code != CodePayout {
		t.Fatalf("RefundTicket() error = %v, want code %q", refundErr, CodePayout)
	}
	if err := <-buyDone; !errors.Is(err, ErrSoldOut) {
		t.Errorf("BuyTicket() during failed refund error = %v, want %v", err, ErrSoldOut)
	}

	ev, err := l.GetEventDetails(id)
	if err != nil {
		t.Fatalf("GetEventDetails() error = %v", err)
	}
	if ev.TicketsSold > ev.MaxTickets {
		t.Errorf("TicketsSold = %d exceeds MaxTickets = %d", ev.TicketsSold, ev.MaxTickets)
	}
	if ev.TicketsSold != 1 {
		t.Errorf("TicketsSold = %d, want 1 after rollback", ev.TicketsSold)
	}
	owner, err := l.OwnerOf(receipt.TokenID)
	if err != nil {
		t.Fatalf("OwnerOf() error = %v", err)
	}
	if owner != aliceAddr {
		t.Errorf("OwnerOf() = %q, want %q after rollback", owner, aliceAddr)
	}
	if got := l.TotalHeld(); got != heldBefore {
		t.Errorf("TotalHeld() = %d, want %d after rollback", got, heldBefore)
	}
	if got := l.PurchaseCount(id, aliceAddr); got != 1 {
		t.Errorf("PurchaseCount() = %d, want 1 after rollback", got)
	}
}

func TestConcurrentMixedOperations_PoolStaysConsistent(t *testing.T) {
	c := newFakeClock()
	l := newTestLedger(c)
	id := mustCreateEvent(t, l, c)

	buyers := make([]domain.Address, 20)
	for i := range buyers {
		buyers[i] = domain.Address(fmt.Sprintf("0xmixed%04d", i))
	}

	var wg sync.WaitGroup
	for _, b := range buyers {
		wg.Add(1)
		go func(buyer domain.Address) {
			defer wg.Done()

			receipt, err := l.BuyTicket(context.Background(), buyer, id, "", testPrice+domain.PlatformFee)
			if err != nil {
				t.Errorf("BuyTicket() error = %v", err)
				return
			}
			// Organizer refunds roughly half the tickets while sales continue.
			if receipt.TokenID%2 == 0 {
				if _, err := l.RefundTicket(context.Background(), organizerAddr, receipt.TokenID); err != nil {
					t.Errorf("RefundTicket() error = %v", err)
				}
			}
		}(b)
	}
	wg.Wait()

	var balances uint64
	for _, b := range buyers {
		balances += l.OrganizerBalance(b)
	}
	balances += l.OrganizerBalance(organizerAddr)

	if got := l.TotalHeld(); got != balances+l.PlatformBalance() {
		t.Errorf("TotalHeld() = %d, want balances+platform = %d", got, balances+l.PlatformBalance())
	}
}
