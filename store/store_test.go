package store

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/bountypager"
)

var _bountyColumns = []string{
	"ledger_index", "bounty_id", "issuer", "name", "description",
	"amount_wei", "claimer", "claim_id", "created_at", "synced_at",
}

func Test_Store_Length(t *testing.T) {
	for _, sqlMockFn := range _sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery("^SELECT count\\(\\*\\) FROM [`'\"]bounties[`'\"]$").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

			length, err := New(db).Length(context.Background())
			require.NoError(t, err)
			require.Equal(t, 42, length)
			require.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_Store_Length_Error(t *testing.T) {
	for _, sqlMockFn := range _sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery("SELECT count").WillReturnError(errors.New("connection reset"))

			_, err := New(db).Length(context.Background())
			require.ErrorIs(t, err, bountypager.ErrRemoteUnavailable)
		})
	}
}

func Test_Store_FetchRange(t *testing.T) {
	synced := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for _, sqlMockFn := range _sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectQuery("^SELECT \\* FROM [`'\"]bounties[`'\"] WHERE ledger_index BETWEEN (\\?|\\$1) AND (\\?|\\$2) ORDER BY ledger_index ASC$").
				WithArgs(2, 3).
				WillReturnRows(sqlmock.NewRows(_bountyColumns).
					AddRow(2, 7, "0xaa", "sunrise", "photo", "1000000000000000000", bountypager.EmptyIdentity, 0, 100, synced).
					AddRow(3, 8, "0xaa", "sunset", "photo", "0", "0xbb", 1, 200, synced))

			raw, err := New(db).FetchRange(context.Background(), 2, 3)
			require.NoError(t, err)
			require.Len(t, raw, 2)

			wei, _ := new(big.Int).SetString("1000000000000000000", 10)
			require.Equal(t, uint64(7), raw[0].ID)
			require.Equal(t, 0, wei.Cmp(raw[0].Amount))
			require.Equal(t, int64(100), raw[0].CreatedAt)
			require.Equal(t, "0xbb", raw[1].Claimer)
			require.Equal(t, uint64(1), raw[1].ClaimID)
			require.Equal(t, 0, raw[1].Amount.Sign())
			require.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_Store_Upsert(t *testing.T) {
	for _, sqlMockFn := range _sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()
		t.Run(dialect, func(t *testing.T) {
			require.NoError(t, err)

			dbMock.ExpectExec("^INSERT INTO [`'\"]bounties[`'\"] .* (ON CONFLICT \\(\"ledger_index\"\\) DO UPDATE SET|ON DUPLICATE KEY UPDATE) .*amount_wei").
				WillReturnResult(sqlmock.NewResult(0, 2))

			s := New(db)
			s.now = func() time.Time { return time.Unix(0, 0) }
			err := s.Upsert(context.Background(), 5, []bountypager.RawBounty{
				{ID: 5, Amount: big.NewInt(10), Claimer: bountypager.EmptyIdentity, CreatedAt: 1},
				{ID: 6, Claimer: bountypager.EmptyIdentity, CreatedAt: 2},
			})
			require.NoError(t, err)
			require.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_Store_Upsert_Empty(t *testing.T) {
	_, db, dbMock, err := newGORMPostgresMock()
	require.NoError(t, err)

	require.NoError(t, New(db).Upsert(context.Background(), 0, nil))
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_Store_WithEngine(t *testing.T) {
	_, db, dbMock, err := newGORMPostgresMock()
	require.NoError(t, err)

	dbMock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	dbMock.ExpectQuery("BETWEEN").
		WithArgs(0, 2).
		WillReturnRows(sqlmock.NewRows(_bountyColumns).
			AddRow(0, 0, "0xaa", "a", "", "5", bountypager.EmptyIdentity, 0, 10, time.Now()).
			AddRow(1, 1, "0xaa", "b", "", "5", "0xbb", 0, 20, time.Now()).
			AddRow(2, 2, "0xaa", "c", "", "5", bountypager.EmptyIdentity, 0, 30, time.Now()))

	res, err := bountypager.NewEngine(New(db)).Paginate(context.Background(), bountypager.NewCursorPager())
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	require.Equal(t, uint64(2), res.Items[0].ID)
	require.Equal(t, uint64(0), res.Items[1].ID)
	require.False(t, res.HasMore)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_Open_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "dsn")
	require.ErrorContains(t, err, "unsupported database driver")
}
