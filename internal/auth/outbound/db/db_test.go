package db

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/ailabstn/authapi/internal/pkg/instrument"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The store tests need a real Postgres. They are skipped unless
// AUTHAPI_TEST_DATABASE_URL points at a disposable database.
const testDatabaseURLEnv = "AUTHAPI_TEST_DATABASE_URL"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

var testID atomic.Int64

func nextID() int64 {
	return testID.Add(1)
}

func newTestDB(t *testing.T) (*DB, *fakeClock) {
	t.Helper()

	url := os.Getenv(testDatabaseURLEnv)
	if url == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}

	ctx := t.Context()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS auth_otp (
			id          BIGINT PRIMARY KEY,
			email       TEXT NOT NULL,
			phone       TEXT,
			code        TEXT NOT NULL,
			purpose     TEXT NOT NULL CHECK (purpose IN ('register', 'login')),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			expires_at  TIMESTAMPTZ NOT NULL,
			consumed_at TIMESTAMPTZ
		)`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	clk := &fakeClock{now: time.Now().UTC().Truncate(time.Microsecond)}
	return NewDB(pool, clk, instrument.NewNoop()), clk
}

// uniqueEmail keeps tests independent without truncating the shared table.
func uniqueEmail(t *testing.T) string {
	return fmt.Sprintf("%s-%d@example.com", t.Name(), time.Now().UnixNano())
}

func issue(t *testing.T, store *DB, email, code string, p entity.Purpose, expiry time.Time) {
	t.Helper()

	err := store.IssueOTP(t.Context(), entity.NewOTP{
		ID:        nextID(),
		Email:     email,
		Code:      code,
		Purpose:   p,
		ExpiresAt: expiry,
	})
	if err != nil {
		t.Fatalf("IssueOTP returned error: %v", err)
	}
}

func TestIssueAndVerify(t *testing.T) {
	store, clk := newTestDB(t)
	email := uniqueEmail(t)

	issue(t, store, email, "123456", entity.PurposeRegister, clk.Now().Add(10*time.Minute))

	ok, err := store.VerifyOTP(t.Context(), email, "123456", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if !ok {
		t.Fatal("VerifyOTP = false, want true")
	}

	// A consumed code never verifies twice.
	ok, err = store.VerifyOTP(t.Context(), email, "123456", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("second VerifyOTP returned error: %v", err)
	}
	if ok {
		t.Fatal("second VerifyOTP = true, want false")
	}
}

func TestVerifyWrongCode(t *testing.T) {
	store, clk := newTestDB(t)
	email := uniqueEmail(t)

	issue(t, store, email, "123456", entity.PurposeRegister, clk.Now().Add(10*time.Minute))

	ok, err := store.VerifyOTP(t.Context(), email, "654321", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if ok {
		t.Fatal("VerifyOTP accepted the wrong code")
	}

	// The failed attempt must not consume the record.
	ok, err = store.VerifyOTP(t.Context(), email, "123456", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if !ok {
		t.Fatal("correct code no longer verifies after a wrong attempt")
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	store, clk := newTestDB(t)
	email := uniqueEmail(t)

	issue(t, store, email, "123456", entity.PurposeRegister, clk.Now().Add(10*time.Minute))
	clk.Advance(11 * time.Minute)

	ok, err := store.VerifyOTP(t.Context(), email, "123456", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if ok {
		t.Fatal("VerifyOTP accepted an expired code")
	}
}

func TestVerifyNoCodeIssued(t *testing.T) {
	store, _ := newTestDB(t)

	ok, err := store.VerifyOTP(t.Context(), uniqueEmail(t), "123456", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if ok {
		t.Fatal("VerifyOTP = true without any issued code")
	}
}

func TestIssueSupersedesPreviousCode(t *testing.T) {
	store, clk := newTestDB(t)
	email := uniqueEmail(t)

	issue(t, store, email, "111111", entity.PurposeRegister, clk.Now().Add(10*time.Minute))
	clk.Advance(time.Second)
	issue(t, store, email, "222222", entity.PurposeRegister, clk.Now().Add(10*time.Minute))

	ok, err := store.VerifyOTP(t.Context(), email, "111111", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if ok {
		t.Fatal("superseded code still verifies")
	}

	ok, err = store.VerifyOTP(t.Context(), email, "222222", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if !ok {
		t.Fatal("latest code does not verify")
	}
}

func TestPurposesAreIsolated(t *testing.T) {
	store, clk := newTestDB(t)
	email := uniqueEmail(t)

	issue(t, store, email, "111111", entity.PurposeRegister, clk.Now().Add(10*time.Minute))
	issue(t, store, email, "222222", entity.PurposeLogin, clk.Now().Add(10*time.Minute))

	ok, err := store.VerifyOTP(t.Context(), email, "222222", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if ok {
		t.Fatal("login code verified against the register purpose")
	}

	ok, err = store.VerifyOTP(t.Context(), email, "111111", entity.PurposeRegister)
	if err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if !ok {
		t.Fatal("register code does not verify after issuing a login code")
	}
}

func TestConcurrentVerifyConsumesOnce(t *testing.T) {
	store, clk := newTestDB(t)
	email := uniqueEmail(t)

	issue(t, store, email, "123456", entity.PurposeLogin, clk.Now().Add(10*time.Minute))

	const attempts = 8
	results := make(chan bool, attempts)

	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.VerifyOTP(context.Background(), email, "123456", entity.PurposeLogin)
			if err != nil {
				t.Errorf("VerifyOTP returned error: %v", err)
			}
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("successful verifications = %d, want exactly 1", succeeded)
	}
}
