// Package authcache persists the last known-good authenticated identity so
// the app stays usable without connectivity. Stored tokens are trusted at
// face value; the cache only decides whether they are still within their
// validity and enforcement windows.
package authcache

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/PhantomXD-nepal/np-wallet/internal/client/store"
	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

// DefaultSessionValidity is the validity window applied to a session
// snapshot at save time.
const DefaultSessionValidity = 7 * 24 * time.Hour

// DefaultMaxDaysOffline is the enforcement window: past it, cached
// credentials must no longer be trusted for full access.
const DefaultMaxDaysOffline = 7

// Store is the durable local store surface the cache needs.
type Store interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, data []byte) error
	Clear(keys ...string) error
}

// Cache is the sole owner of the cached auth record.
type Cache struct {
	store Store
	log   *zap.Logger
	now   func() time.Time

	// SessionValidity overrides DefaultSessionValidity when positive.
	SessionValidity time.Duration
}

// New constructs a Cache over the given store.
func New(s Store, log *zap.Logger) *Cache {
	return &Cache{
		store:           s,
		log:             log,
		now:             time.Now,
		SessionValidity: DefaultSessionValidity,
	}
}

// SaveAuthData persists a snapshot of the signed-in user and session for
// offline use. Called only after a successful online authentication; any
// prior record is overwritten unconditionally. The session expiry is
// recomputed here as save-time plus the validity window, and the
// last-online-check timestamp is bumped as part of the same save.
func (c *Cache) SaveAuthData(user models.UserProfile, session models.Session) error {
	if user.ID == "" || session.Token == "" {
		return fmt.Errorf("save auth data: missing user or session")
	}

	now := c.now()
	user.LastUpdated = now
	session.ExpiresAt = now.Add(c.validity())
	session.LastVerifiedOnline = now

	userBlob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode auth user: %w", err)
	}
	sessionBlob, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode auth session: %w", err)
	}

	if err := c.store.Write(store.KeyAuthUser, userBlob); err != nil {
		return fmt.Errorf("save auth data: %w", err)
	}
	if err := c.store.Write(store.KeyAuthSession, sessionBlob); err != nil {
		return fmt.Errorf("save auth data: %w", err)
	}
	if err := c.writeLastOnlineCheck(now); err != nil {
		return err
	}

	c.log.Info("auth data saved locally for offline use", zap.String("user", user.ID))
	return nil
}

// GetAuthData reads the cached record. Absence of either blob yields nil.
// An expired session is still returned, flagged, so callers can keep
// showing last-known state read-only.
func (c *Cache) GetAuthData() *models.AuthData {
	userBlob, okUser, err := c.store.Read(store.KeyAuthUser)
	if err != nil {
		c.log.Error("failed to read cached auth user", zap.Error(err))
		return nil
	}
	sessionBlob, okSession, err := c.store.Read(store.KeyAuthSession)
	if err != nil {
		c.log.Error("failed to read cached auth session", zap.Error(err))
		return nil
	}
	if !okUser || !okSession {
		return nil
	}

	var data models.AuthData
	if err := json.Unmarshal(userBlob, &data.User); err != nil {
		c.log.Error("failed to decode cached auth user", zap.Error(err))
		return nil
	}
	if err := json.Unmarshal(sessionBlob, &data.Session); err != nil {
		c.log.Error("failed to decode cached auth session", zap.Error(err))
		return nil
	}

	data.IsExpired = data.Session.ExpiresAt.Before(c.now())
	if data.IsExpired {
		c.log.Warn("offline session is expired", zap.Time("expired_at", data.Session.ExpiresAt))
	}
	return &data
}

// Clear removes the full cached record on sign-out. The user blob, session
// blob, and last-online-check timestamp go as one atomic unit.
func (c *Cache) Clear() error {
	if err := c.store.Clear(store.KeyAuthUser, store.KeyAuthSession, store.KeyLastOnlineCheck); err != nil {
		return fmt.Errorf("clear auth data: %w", err)
	}
	c.log.Info("local auth data cleared")
	return nil
}

// UpdateLastOnlineCheck records a successful online re-verification without
// rewriting the full record.
func (c *Cache) UpdateLastOnlineCheck() error {
	return c.writeLastOnlineCheck(c.now())
}

// LastOnlineCheck returns the most recent successful online verification
// time, or zero if none is recorded.
func (c *Cache) LastOnlineCheck() (time.Time, bool) {
	b, ok, err := c.store.Read(store.KeyLastOnlineCheck)
	if err != nil {
		c.log.Error("failed to read last online check", zap.Error(err))
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, string(b))
	if err != nil {
		c.log.Error("failed to parse last online check", zap.Error(err))
		return time.Time{}, false
	}
	return t, true
}

// ShouldEnforceOnlineAuth reports whether the user has been offline past
// the enforcement window: true when nothing is recorded, or when whole
// elapsed days (rounded up) exceed maxDaysOffline. This window is
// independent of the session expiry.
func (c *Cache) ShouldEnforceOnlineAuth(maxDaysOffline int) bool {
	last, ok := c.LastOnlineCheck()
	if !ok {
		return true
	}
	elapsed := c.now().Sub(last)
	days := int(math.Ceil(elapsed.Hours() / 24))
	return days > maxDaysOffline
}

func (c *Cache) validity() time.Duration {
	if c.SessionValidity > 0 {
		return c.SessionValidity
	}
	return DefaultSessionValidity
}

func (c *Cache) writeLastOnlineCheck(t time.Time) error {
	if err := c.store.Write(store.KeyLastOnlineCheck, []byte(t.Format(time.RFC3339Nano))); err != nil {
		return fmt.Errorf("update last online check: %w", err)
	}
	return nil
}
