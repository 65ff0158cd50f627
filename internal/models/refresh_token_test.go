package models

import (
	"testing"
	"time"
)

func TestRefreshTokenValid(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		token RefreshToken
		want  bool
	}{
		{
			name:  "live token",
			token: RefreshToken{ExpiresAt: now.Add(time.Hour)},
			want:  true,
		},
		{
			name:  "revoked token",
			token: RefreshToken{ExpiresAt: now.Add(time.Hour), IsRevoked: true},
			want:  false,
		},
		{
			name:  "expired token",
			token: RefreshToken{ExpiresAt: now.Add(-time.Minute)},
			want:  false,
		},
		{
			name:  "expiry is exclusive",
			token: RefreshToken{ExpiresAt: now},
			want:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.Valid(now); got != tc.want {
				t.Errorf("Valid = %v, want %v", got, tc.want)
			}
		})
	}
}
