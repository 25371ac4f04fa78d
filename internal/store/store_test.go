package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

// fakeTx satisfies pgx.Tx and records how the coordinator resolves it.
type fakeTx struct {
	committed   bool
	rolledBack  bool
	rollbackCtx context.Context
	commitErr   error
	rollbackErr error
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rollbackCtx = ctx
	if t.committed || t.rolledBack {
		return pgx.ErrTxClosed
	}
	if t.rollbackErr != nil {
		return t.rollbackErr
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                               { return nil }

func TestWithTx(t *testing.T) {
	t.Run("commits when fn succeeds", func(t *testing.T) {
		tx := &fakeTx{}
		s := newWithBeginner(&fakeBeginner{tx: tx})

		err := s.WithTx(context.Background(), func(pgx.Tx) error { return nil })

		require.NoError(t, err)
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("rolls back and returns the fn error unchanged", func(t *testing.T) {
		tx := &fakeTx{}
		s := newWithBeginner(&fakeBeginner{tx: tx})
		wantErr := errors.New("verification failed")

		err := s.WithTx(context.Background(), func(pgx.Tx) error { return wantErr })

		require.ErrorIs(t, err, wantErr)
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
	})

	t.Run("attaches rollback failure to the fn error", func(t *testing.T) {
		rollbackErr := errors.New("connection lost")
		tx := &fakeTx{rollbackErr: rollbackErr}
		s := newWithBeginner(&fakeBeginner{tx: tx})
		fnErr := errors.New("delete failed")

		err := s.WithTx(context.Background(), func(pgx.Tx) error { return fnErr })

		require.ErrorIs(t, err, fnErr)
		require.ErrorIs(t, err, rollbackErr)
	})

	t.Run("propagates begin failure", func(t *testing.T) {
		beginErr := errors.New("pool exhausted")
		s := newWithBeginner(&fakeBeginner{beginErr: beginErr})

		err := s.WithTx(context.Background(), func(pgx.Tx) error { return nil })

		require.ErrorIs(t, err, beginErr)
	})

	t.Run("reports commit failure", func(t *testing.T) {
		commitErr := errors.New("serialization failure")
		tx := &fakeTx{commitErr: commitErr}
		s := newWithBeginner(&fakeBeginner{tx: tx})

		err := s.WithTx(context.Background(), func(pgx.Tx) error { return nil })

		require.ErrorIs(t, err, commitErr)
	})

	t.Run("rolls back on panic and repanics", func(t *testing.T) {
		tx := &fakeTx{}
		s := newWithBeginner(&fakeBeginner{tx: tx})

		assert.PanicsWithValue(t, "boom", func() {
			_ = s.WithTx(context.Background(), func(pgx.Tx) error { panic("boom") })
		})
		assert.True(t, tx.rolledBack)
	})

	t.Run("rolls back even when the caller context is canceled", func(t *testing.T) {
		tx := &fakeTx{}
		s := newWithBeginner(&fakeBeginner{tx: tx})

		ctx, cancel := context.WithCancel(context.Background())

		err := s.WithTx(ctx, func(pgx.Tx) error {
			cancel()
			return ctx.Err()
		})

		require.Error(t, err)
		assert.True(t, tx.rolledBack)
		require.NotNil(t, tx.rollbackCtx)
		assert.NoError(t, tx.rollbackCtx.Err(), "rollback must run detached from the canceled request context")
	})
}
