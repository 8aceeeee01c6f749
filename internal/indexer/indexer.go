// Package indexer maintains a Redis ownership index over the ticket
// journal. The ledger itself answers only point lookups; enumeration
// queries (all tokens of a wallet, all tokens of an event) are served from
// this index, rebuilt at any time by replaying the journal.
package indexer

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/quantumtix/quantumticket/internal/domain"
	"github.com/quantumtix/quantumticket/internal/journal"
	"go.uber.org/zap"
)

// Key layout.
const (
	keyOwnerTokens = "qt:owner:tokens:" // set of token ids per wallet
	keyEventTokens = "qt:event:tokens:" // set of token ids per event
	keyTokenOwner  = "qt:token:owner:"  // current owner per token
	keyCursor      = "qt:journal:cursor"
)

// OwnershipSource answers authoritative owner lookups, used to verify index
// reads against the ledger.
type OwnershipSource interface {
	OwnerOf(tokenID uint64) (domain.Address, error)
}

// Replayer replays journal entries from a sequence number.
type Replayer interface {
	Replay(ctx context.Context, fromSeq uint64, fn func(journal.Entry) error) error
}

// Indexer applies journal entries to Redis sets. It implements journal.Sink
// and can be wired directly into the ledger's journal tee.
type Indexer struct {
	rdb    redis.UniversalClient
	source OwnershipSource
	logger *zap.Logger
}

// New creates an Indexer. source may be nil; reads are then served from the
// index without verification.
func New(rdb redis.UniversalClient, source OwnershipSource, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{rdb: rdb, source: source, logger: logger}
}

// Append applies entries to the index. Only ownership-changing entries
// matter; everything else advances the cursor and is skipped.
func (ix *Indexer) Append(ctx context.Context, entries ...journal.Entry) error {
	for _, e := range entries {
		if err := ix.apply(ctx, e); err != nil {
			return fmt.Errorf("apply journal entry %d: %w", e.Seq, err)
		}
		if err := ix.rdb.Set(ctx, keyCursor, e.Seq, 0).Err(); err != nil {
			return fmt.Errorf("advance cursor: %w", err)
		}
	}
	return nil
}

func (ix *Indexer) apply(ctx context.Context, e journal.Entry) error {
	if e.Type != journal.EntryTicketTransferred || e.TokenID == nil {
		return nil
	}
	token := strconv.FormatUint(*e.TokenID, 10)

	if !e.From.IsZero() {
		if err := ix.rdb.SRem(ctx, keyOwnerTokens+string(e.From), token).Err(); err != nil {
			return err
		}
	}

	if e.To.IsZero() {
		// Burn: the token leaves the index entirely.
		if err := ix.rdb.Del(ctx, keyTokenOwner+token).Err(); err != nil {
			return err
		}
		if e.EventID != nil {
			return ix.rdb.SRem(ctx, keyEventTokens+strconv.FormatUint(*e.EventID, 10), token).Err()
		}
		return nil
	}

	if err := ix.rdb.SAdd(ctx, keyOwnerTokens+string(e.To), token).Err(); err != nil {
		return err
	}
	if err := ix.rdb.Set(ctx, keyTokenOwner+token, string(e.To), 0).Err(); err != nil {
		return err
	}
	if e.From.IsZero() && e.EventID != nil {
		// Mint: record event membership once.
		return ix.rdb.SAdd(ctx, keyEventTokens+strconv.FormatUint(*e.EventID, 10), token).Err()
	}
	return nil
}

// Cursor returns the sequence number of the last applied entry, zero when
// the index is empty.
func (ix *Indexer) Cursor(ctx context.Context) (uint64, error) {
	val, err := ix.rdb.Get(ctx, keyCursor).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(val, 10, 64)
}

// TicketsOf returns the token ids the wallet currently holds. When an
// ownership source is configured, each id is verified against it and stale
// entries are evicted, so a lagging or corrupted index never misreports
// ownership.
func (ix *Indexer) TicketsOf(ctx context.Context, wallet domain.Address) ([]uint64, error) {
	members, err := ix.rdb.SMembers(ctx, keyOwnerTokens+string(wallet)).Result()
	if err != nil {
		return nil, fmt.Errorf("read owner set: %w", err)
	}

	tokens := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			ix.logger.Warn("skip malformed index member", zap.String("member", m))
			continue
		}
		if ix.source != nil {
			owner, err := ix.source.OwnerOf(id)
			if err != nil || owner != wallet {
				if remErr := ix.rdb.SRem(ctx, keyOwnerTokens+string(wallet), m).Err(); remErr != nil {
					ix.logger.Warn("evict stale index member",
						zap.String("member", m), zap.Error(remErr))
				}
				continue
			}
		}
		tokens = append(tokens, id)
	}
	return tokens, nil
}

// TicketsOfEvent returns the token ids minted for the event and still
// outstanding.
func (ix *Indexer) TicketsOfEvent(ctx context.Context, eventID uint64) ([]uint64, error) {
	members, err := ix.rdb.SMembers(ctx, keyEventTokens+strconv.FormatUint(eventID, 10)).Result()
	if err != nil {
		return nil, fmt.Errorf("read event set: %w", err)
	}

	tokens := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		tokens = append(tokens, id)
	}
	return tokens, nil
}

// OwnerOf returns the indexed owner of a token. Empty when the token is
// unknown or burned.
func (ix *Indexer) OwnerOf(ctx context.Context, tokenID uint64) (domain.Address, error) {
	val, err := ix.rdb.Get(ctx, keyTokenOwner+strconv.FormatUint(tokenID, 10)).Result()
	if err == redis.Nil {
		return domain.ZeroAddress, nil
	}
	if err != nil {
		return domain.ZeroAddress, err
	}
	return domain.Address(val), nil
}

// Rebuild replays the journal from after the current cursor, catching the
// index up with the ledger. Safe to call at startup.
func (ix *Indexer) Rebuild(ctx context.Context, j Replayer) error {
	cursor, err := ix.Cursor(ctx)
	if err != nil {
		return fmt.Errorf("read cursor: %w", err)
	}

	var applied int
	err = j.Replay(ctx, cursor+1, func(e journal.Entry) error {
		applied++
		return ix.Append(ctx, e)
	})
	if err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}

	ix.logger.Info("index rebuilt",
		zap.Uint64("from_seq", cursor+1),
		zap.Int("entries_applied", applied))
	return nil
}
