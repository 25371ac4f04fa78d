package account_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quirzy/backend/internal/account"
	"github.com/quirzy/backend/internal/auth"
	"github.com/quirzy/backend/internal/testhelper"
	"github.com/quirzy/backend/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSessions implements auth.Storage and records revocations.
type recordingSessions struct {
	mu      sync.Mutex
	revoked []int64
}

func (s *recordingSessions) Get(context.Context, string) (auth.TokenInfo, error) {
	return auth.TokenInfo{}, auth.ErrNotFound
}

func (s *recordingSessions) Create(context.Context, auth.TokenInfo) (string, error) {
	return "", nil
}

func (s *recordingSessions) Delete(context.Context, string) error { return nil }

func (s *recordingSessions) DeleteByAccount(_ context.Context, accountID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = append(s.revoked, accountID)
	return nil
}

func assertGraphGone(t *testing.T, counts map[string]int) {
	t.Helper()
	for table, n := range counts {
		assert.Zero(t, n, "table %s still references the deleted account", table)
	}
}

func TestDeleteAccount_PasswordMethod(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	st := testhelper.NewStore(t)
	pool := st.Pool()
	fx := testhelper.SeedAccountGraph(t, pool, "a@x.com", "Jane Doe", "secret")

	sessions := &recordingSessions{}
	accounts := account.NewContext(st, sessions, nil)

	req := account.VerifyRequest{Email: "a@x.com", Method: account.MethodPassword, Password: "secret"}
	require.NoError(t, accounts.DeleteAccount(context.Background(), req))

	assertGraphGone(t, testhelper.CountReferencing(t, pool, fx.AccountID))

	// the opponent account survives, only the shared challenges are gone
	assert.Equal(t, 1, testhelper.TotalRows(t, pool, "account"))
	assert.Equal(t, 0, testhelper.TotalRows(t, pool, "challenge"))

	// sessions are revoked once the background work drains
	workers.Global.Wait()
	assert.Equal(t, []int64{fx.AccountID}, sessions.revoked)

	// deleting again finds nothing, it does not crash
	err := accounts.DeleteAccount(context.Background(), req)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestDeleteAccount_NameMethod(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	st := testhelper.NewStore(t)
	pool := st.Pool()

	// external-auth account: no credential at all
	fx := testhelper.SeedAccountGraph(t, pool, "a@x.com", "Jane Doe", "")

	accounts := account.NewContext(st, nil, nil)

	err := accounts.DeleteAccount(context.Background(), account.VerifyRequest{
		Email:    "a@x.com",
		Method:   account.MethodName,
		FullName: "jane doe",
	})
	require.NoError(t, err)

	assertGraphGone(t, testhelper.CountReferencing(t, pool, fx.AccountID))
}

func TestDeleteAccount_DeniedLeavesDataIntact(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	st := testhelper.NewStore(t)
	pool := st.Pool()
	fx := testhelper.SeedAccountGraph(t, pool, "a@x.com", "Jane Doe", "secret")

	accounts := account.NewContext(st, nil, nil)

	err := accounts.DeleteAccount(context.Background(), account.VerifyRequest{
		Email:    "a@x.com",
		Method:   account.MethodPassword,
		Password: "wrong",
	})
	require.ErrorIs(t, err, account.ErrIncorrectPassword)

	counts := testhelper.CountReferencing(t, pool, fx.AccountID)
	assert.Equal(t, 1, counts["account"])
	assert.Equal(t, 1, counts["owned_quiz"])
	assert.Equal(t, 2, counts["question"])
	assert.Equal(t, 1, counts["quiz_result"])
	assert.Equal(t, 1, counts["account_settings"])
	assert.Equal(t, 2, counts["challenge"])
}

// faultyDB passes through to the transaction until it reaches the
// question step, then fails.
type faultyDB struct {
	account.DBTX
}

func (db faultyDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if strings.HasPrefix(sql, "DELETE FROM question") {
		return pgconn.CommandTag{}, errors.New("simulated storage fault")
	}

	return db.DBTX.Exec(ctx, sql, args...)
}

func TestDeleteAccount_RollsBackOnCascadeFault(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	st := testhelper.NewStore(t)
	pool := st.Pool()
	fx := testhelper.SeedAccountGraph(t, pool, "a@x.com", "Jane Doe", "secret")

	err := st.WithTx(context.Background(), func(tx pgx.Tx) error {
		id, err := account.Verify(context.Background(), tx, account.VerifyRequest{
			Email:    "a@x.com",
			Method:   account.MethodPassword,
			Password: "secret",
		})
		if err != nil {
			return err
		}

		return account.DeleteGraph(context.Background(), faultyDB{DBTX: tx}, id)
	})
	require.ErrorContains(t, err, "simulated storage fault")

	// nothing is missing: the partial cascade was rolled back entirely
	counts := testhelper.CountReferencing(t, pool, fx.AccountID)
	assert.Equal(t, 1, counts["account"])
	assert.Equal(t, 2, counts["question"])
	assert.Equal(t, 2, counts["challenge"])
	assert.Equal(t, 1, counts["quiz_result"])
}

func TestDeleteAccount_ConcurrentRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	st := testhelper.NewStore(t)
	pool := st.Pool()
	fx := testhelper.SeedAccountGraph(t, pool, "a@x.com", "Jane Doe", "secret")

	accounts := account.NewContext(st, nil, nil)
	req := account.VerifyRequest{Email: "a@x.com", Method: account.MethodPassword, Password: "secret"}

	results := make(chan error, 2)
	for range 2 {
		go func() {
			results <- accounts.DeleteAccount(context.Background(), req)
		}()
	}

	var succeeded int
	for range 2 {
		err := <-results
		if err == nil {
			succeeded++
			continue
		}

		// the verification read locks the account row, so the loser
		// waits out the winner's commit and then finds nothing
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	}

	require.Equal(t, 1, succeeded)
	assertGraphGone(t, testhelper.CountReferencing(t, pool, fx.AccountID))
}
