package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ailabstn/authapi/internal/auth/entity"
	"github.com/jackc/pgx/v5"
)

// IssueOTP consumes every unconsumed code for the record's (email, purpose)
// pair and inserts the new one, in a single transaction. After it returns,
// exactly one unconsumed row exists for the pair.
func (s *DB) IssueOTP(ctx context.Context, in entity.NewOTP) (err error) {
	ctx, span := s.startSpan(ctx, "IssueOTP")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	now := s.clock.Now()

	if _, err = tx.Exec(ctx, `
		UPDATE auth_otp
		   SET consumed_at = $1
		 WHERE email = $2
		   AND purpose = $3
		   AND consumed_at IS NULL`,
		now, in.Email, in.Purpose.String(),
	); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO auth_otp (id, email, code, purpose, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		in.ID, in.Email, in.Code, in.Purpose.String(), now, in.ExpiresAt,
	); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

// VerifyOTP checks the supplied code against the latest record for the pair
// and consumes it on success. It reports false for every failure cause
// (missing, consumed, expired, mismatch, lost race); callers never learn
// which one applied.
func (s *DB) VerifyOTP(ctx context.Context, email, code string, p entity.Purpose) (ok bool, err error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer func() { s.endSpan(span, err) }()

	var (
		id         int64
		storedCode string
		expiresAt  time.Time
		consumedAt *time.Time
	)

	err = s.conn.QueryRow(ctx, `
		SELECT id, code, expires_at, consumed_at
		  FROM auth_otp
		 WHERE email = $1
		   AND purpose = $2
		 ORDER BY created_at DESC
		 LIMIT 1`,
		email, p.String(),
	).Scan(&id, &storedCode, &expiresAt, &consumedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		slog.DebugContext(ctx, "otp verification failed: no code issued", "purpose", p)
		return false, nil
	}
	if err != nil {
		return false, s.mapError(err)
	}

	if consumedAt != nil {
		slog.DebugContext(ctx, "otp verification failed: code already consumed", "purpose", p)
		return false, nil
	}

	if s.clock.Now().After(expiresAt) {
		slog.DebugContext(ctx, "otp verification failed: code expired", "purpose", p)
		return false, nil
	}

	if storedCode != code {
		slog.DebugContext(ctx, "otp verification failed: code mismatch", "purpose", p)
		return false, nil
	}

	// The conditional update is the consuming act. Zero rows affected means a
	// concurrent verification consumed the record first.
	tag, err := s.conn.Exec(ctx, `
		UPDATE auth_otp
		   SET consumed_at = $1
		 WHERE id = $2
		   AND consumed_at IS NULL`,
		s.clock.Now(), id,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	if tag.RowsAffected() != 1 {
		slog.DebugContext(ctx, "otp verification failed: code consumed concurrently", "purpose", p)
		return false, nil
	}

	return true, nil
}
