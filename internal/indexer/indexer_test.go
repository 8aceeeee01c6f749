package indexer

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/quantumtix/quantumticket/internal/domain"
	"github.com/quantumtix/quantumticket/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource map[uint64]domain.Address

func (f fakeSource) OwnerOf(tokenID uint64) (domain.Address, error) {
	owner, ok := f[tokenID]
	if !ok {
		return domain.ZeroAddress, assert.AnError
	}
	return owner, nil
}

func TestAppend_Mint(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectSAdd("qt:owner:tokens:0xalice", "0").SetVal(1)
	mock.ExpectSet("qt:token:owner:0", "0xalice", 0).SetVal("OK")
	mock.ExpectSAdd("qt:event:tokens:7", "0").SetVal(1)
	mock.ExpectSet("qt:journal:cursor", uint64(1), 0).SetVal("OK")

	err := ix.Append(context.Background(), journal.Entry{
		Seq:     1,
		Type:    journal.EntryTicketTransferred,
		TokenID: journal.Uint64(0),
		EventID: journal.Uint64(7),
		From:    domain.ZeroAddress,
		To:      "0xalice",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_Transfer(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectSRem("qt:owner:tokens:0xalice", "3").SetVal(1)
	mock.ExpectSAdd("qt:owner:tokens:0xbob", "3").SetVal(1)
	mock.ExpectSet("qt:token:owner:3", "0xbob", 0).SetVal("OK")
	mock.ExpectSet("qt:journal:cursor", uint64(9), 0).SetVal("OK")

	err := ix.Append(context.Background(), journal.Entry{
		Seq:     9,
		Type:    journal.EntryTicketTransferred,
		TokenID: journal.Uint64(3),
		EventID: journal.Uint64(7),
		From:    "0xalice",
		To:      "0xbob",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_Burn(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectSRem("qt:owner:tokens:0xbob", "3").SetVal(1)
	mock.ExpectDel("qt:token:owner:3").SetVal(1)
	mock.ExpectSRem("qt:event:tokens:7", "3").SetVal(1)
	mock.ExpectSet("qt:journal:cursor", uint64(12), 0).SetVal("OK")

	err := ix.Append(context.Background(), journal.Entry{
		Seq:     12,
		Type:    journal.EntryTicketTransferred,
		TokenID: journal.Uint64(3),
		EventID: journal.Uint64(7),
		From:    "0xbob",
		To:      domain.ZeroAddress,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_IgnoresNonOwnershipEntries(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectSet("qt:journal:cursor", uint64(4), 0).SetVal("OK")

	err := ix.Append(context.Background(), journal.Entry{
		Seq:     4,
		Type:    journal.EntryTicketUsed,
		TokenID: journal.Uint64(3),
		EventID: journal.Uint64(7),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketsOf_VerifiesAgainstSource(t *testing.T) {
	db, mock := redismock.NewClientMock()
	source := fakeSource{
		0: "0xalice",
		1: "0xbob", // stale: index still lists it under alice
	}
	ix := New(db, source, nil)

	mock.ExpectSMembers("qt:owner:tokens:0xalice").SetVal([]string{"0", "1"})
	mock.ExpectSRem("qt:owner:tokens:0xalice", "1").SetVal(1)

	tokens, err := ix.TicketsOf(context.Background(), "0xalice")
	require.NoError(t, err)
	assert.Equal(t, []uint64{0}, tokens)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketsOf_NoSource(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectSMembers("qt:owner:tokens:0xalice").SetVal([]string{"2", "5"})

	tokens, err := ix.TicketsOf(context.Background(), "0xalice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{2, 5}, tokens)
}

func TestTicketsOfEvent(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectSMembers("qt:event:tokens:7").SetVal([]string{"0", "3"})

	tokens, err := ix.TicketsOfEvent(context.Background(), 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{0, 3}, tokens)
}

func TestOwnerOf(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectGet("qt:token:owner:3").SetVal("0xbob")

	owner, err := ix.OwnerOf(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Address("0xbob"), owner)
}

func TestOwnerOf_Unknown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectGet("qt:token:owner:99").RedisNil()

	owner, err := ix.OwnerOf(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, domain.ZeroAddress, owner)
}

func TestCursor_Empty(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	mock.ExpectGet("qt:journal:cursor").RedisNil()

	cursor, err := ix.Cursor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)
}

func TestRebuild_ReplaysFromCursor(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ix := New(db, nil, nil)

	j := journal.NewMemoryJournal()
	require.NoError(t, j.Append(context.Background(),
		journal.Entry{
			Seq:     1,
			Type:    journal.EntryTicketTransferred,
			TokenID: journal.Uint64(0),
			EventID: journal.Uint64(2),
			From:    domain.ZeroAddress,
			To:      "0xalice",
		},
		journal.Entry{
			Seq:  2,
			Type: journal.EntryTicketUsed,
		},
	))

	mock.ExpectGet("qt:journal:cursor").RedisNil()
	mock.ExpectSAdd("qt:owner:tokens:0xalice", "0").SetVal(1)
	mock.ExpectSet("qt:token:owner:0", "0xalice", 0).SetVal("OK")
	mock.ExpectSAdd("qt:event:tokens:2", "0").SetVal(1)
	mock.ExpectSet("qt:journal:cursor", uint64(1), 0).SetVal("OK")
	mock.ExpectSet("qt:journal:cursor", uint64(2), 0).SetVal("OK")

	require.NoError(t, ix.Rebuild(context.Background(), j))
	require.NoError(t, mock.ExpectationsWereMet())
}
