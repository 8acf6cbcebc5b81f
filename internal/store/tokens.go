package store

import (
	"context"
	"fmt"
	"time"

	"github.com/17okk-xie/portfolio/internal/db"
)

// RevokeToken adds a session token's JTI to the revocation list.
func RevokeToken(ctx context.Context, d *db.DB, jti string, expiresAt time.Time) error {
	_, err := d.ExecContext(ctx,
		d.Rebind(`INSERT INTO revoked_tokens (jti, expires_at) VALUES (?, ?) ON CONFLICT (jti) DO NOTHING`),
		jti, expiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	// Opportunistically clean up expired revocations.
	_, _ = d.ExecContext(ctx,
		d.Rebind(`DELETE FROM revoked_tokens WHERE expires_at < ?`), time.Now().UTC(),
	)

	return nil
}

// IsTokenRevoked checks if a token's JTI has been revoked.
func IsTokenRevoked(ctx context.Context, d *db.DB, jti string) (bool, error) {
	var count int
	err := d.QueryRowContext(ctx,
		d.Rebind(`SELECT COUNT(*) FROM revoked_tokens WHERE jti = ?`), jti,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return count > 0, nil
}

// Revocations adapts the token functions to a value the HTTP layers can hold.
type Revocations struct {
	DB *db.DB
}

func (r Revocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return RevokeToken(ctx, r.DB, jti, expiresAt)
}

func (r Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return IsTokenRevoked(ctx, r.DB, jti)
}
