package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRevoked(t *testing.T) {
	logout := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	// Never logged out: nothing is revoked.
	fresh := &User{}
	assert.False(t, fresh.TokenRevoked(logout.Add(-time.Hour).Unix()))

	u := &User{LastLogoutAt: &logout}

	// A token issued before the logout no longer works, even though its
	// own expiry is days away.
	assert.True(t, u.TokenRevoked(logout.Add(-time.Hour).Unix()))
	assert.True(t, u.TokenRevoked(logout.Add(-7*24*time.Hour).Unix()))

	// A token from a fresh login after the logout works.
	assert.False(t, u.TokenRevoked(logout.Add(time.Second).Unix()))
	// Same-second issue and logout resolve in the token's favor.
	assert.False(t, u.TokenRevoked(logout.Unix()))
}
