package journal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quantumtix/quantumticket/internal/domain"
)

// entryColumns defines the columns to select for journal entries.
const entryColumns = `id, seq, entry_type, at, event_id, token_id,
	COALESCE(from_addr, '') as from_addr,
	COALESCE(to_addr, '') as to_addr,
	COALESCE(organizer, '') as organizer,
	COALESCE(scanner, '') as scanner,
	allowed, amount, COALESCE(name, '') as name`

// Schema is the DDL for the journal table. Deployments apply it once; the
// sink assumes the table exists.
const Schema = `
CREATE TABLE IF NOT EXISTS ledger_journal (
	seq        BIGINT PRIMARY KEY,
	id         UUID NOT NULL,
	entry_type TEXT NOT NULL,
	at         TIMESTAMPTZ NOT NULL,
	event_id   BIGINT,
	token_id   BIGINT,
	from_addr  TEXT,
	to_addr    TEXT,
	organizer  TEXT,
	scanner    TEXT,
	allowed    BOOLEAN NOT NULL DEFAULT FALSE,
	amount     BIGINT NOT NULL DEFAULT 0,
	name       TEXT
);
CREATE INDEX IF NOT EXISTS idx_ledger_journal_event ON ledger_journal (event_id);
CREATE INDEX IF NOT EXISTS idx_ledger_journal_token ON ledger_journal (token_id);
CREATE INDEX IF NOT EXISTS idx_ledger_journal_to ON ledger_journal (to_addr);
`

// PostgresJournal persists entries to an append-only PostgreSQL table.
type PostgresJournal struct {
	pool *pgxpool.Pool
}

// NewPostgresJournal creates a new PostgresJournal.
func NewPostgresJournal(pool *pgxpool.Pool) *PostgresJournal {
	return &PostgresJournal{pool: pool}
}

// Append inserts the entries in order. Seq is the primary key, so a retried
// append of an already-written entry fails instead of duplicating it.
func (j *PostgresJournal) Append(ctx context.Context, entries ...Entry) error {
	query := `
		INSERT INTO ledger_journal (seq, id, entry_type, at, event_id, token_id,
			from_addr, to_addr, organizer, scanner, allowed, amount, name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for _, e := range entries {
		_, err := j.pool.Exec(ctx, query,
			e.Seq,
			e.ID,
			string(e.Type),
			e.At,
			e.EventID,
			e.TokenID,
			string(e.From),
			string(e.To),
			string(e.Organizer),
			string(e.Scanner),
			e.Allowed,
			e.Amount,
			e.Name,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// LastSeq returns the highest stored sequence number, or 0 for an empty
// journal.
func (j *PostgresJournal) LastSeq(ctx context.Context) (uint64, error) {
	var seq uint64
	err := j.pool.QueryRow(ctx, `SELECT COALESCE(MAX(seq), 0) FROM ledger_journal`).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// Replay invokes fn for every stored entry with seq >= fromSeq, in sequence
// order.
func (j *PostgresJournal) Replay(ctx context.Context, fromSeq uint64, fn func(Entry) error) error {
	query := `SELECT ` + entryColumns + ` FROM ledger_journal WHERE seq >= $1 ORDER BY seq ASC`
	rows, err := j.pool.Query(ctx, query, fromSeq)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return err
		}
		if err := fn(*e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanEntry(row pgx.Row) (*Entry, error) {
	e := &Entry{}
	var entryType string
	var from, to, organizer, scanner string
	err := row.Scan(
		&e.ID,
		&e.Seq,
		&entryType,
		&e.At,
		&e.EventID,
		&e.TokenID,
		&from,
		&to,
		&organizer,
		&scanner,
		&e.Allowed,
		&e.Amount,
		&e.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.Type = EntryType(entryType)
	e.From = domain.Address(from)
	e.To = domain.Address(to)
	e.Organizer = domain.Address(organizer)
	e.Scanner = domain.Address(scanner)
	return e, nil
}
