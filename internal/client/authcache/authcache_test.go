package authcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PhantomXD-nepal/np-wallet/internal/client/store"
	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

func newTestCache(t *testing.T) (*Cache, *time.Time) {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	c := New(fs, zap.NewNop())
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func testUser() models.UserProfile {
	return models.UserProfile{
		ID:        "user_1",
		Email:     "a@b.test",
		FirstName: "Asha",
		LastName:  "Rai",
	}
}

func TestSaveAndGet(t *testing.T) {
	c, now := newTestCache(t)

	require.NoError(t, c.SaveAuthData(testUser(), models.Session{Token: "tok"}))

	data := c.GetAuthData()
	require.NotNil(t, data)
	require.Equal(t, "user_1", data.User.ID)
	require.Equal(t, "tok", data.Session.Token)
	require.False(t, data.IsExpired)
	require.Equal(t, now.Add(DefaultSessionValidity), data.Session.ExpiresAt)
	require.Equal(t, *now, data.Session.LastVerifiedOnline)
}

func TestSave_RejectsMissingUserOrToken(t *testing.T) {
	c, _ := newTestCache(t)

	require.Error(t, c.SaveAuthData(models.UserProfile{}, models.Session{Token: "tok"}))
	require.Error(t, c.SaveAuthData(testUser(), models.Session{}))
	require.Nil(t, c.GetAuthData())
}

func TestGet_AbsentRecordIsNil(t *testing.T) {
	c, _ := newTestCache(t)
	require.Nil(t, c.GetAuthData())
}

func TestGet_ExpiredStillReturned(t *testing.T) {
	c, now := newTestCache(t)

	require.NoError(t, c.SaveAuthData(testUser(), models.Session{Token: "tok"}))

	// Move the clock past the validity window.
	*now = now.Add(DefaultSessionValidity + time.Hour)

	data := c.GetAuthData()
	require.NotNil(t, data, "expired data must still be returned")
	require.True(t, data.IsExpired)
	require.Equal(t, "user_1", data.User.ID)
	require.Equal(t, "tok", data.Session.Token)
}

func TestSave_OverwritesUnconditionally(t *testing.T) {
	c, now := newTestCache(t)

	require.NoError(t, c.SaveAuthData(testUser(), models.Session{Token: "old"}))
	*now = now.Add(48 * time.Hour)
	require.NoError(t, c.SaveAuthData(testUser(), models.Session{Token: "new"}))

	data := c.GetAuthData()
	require.NotNil(t, data)
	require.Equal(t, "new", data.Session.Token)
	require.Equal(t, now.Add(DefaultSessionValidity), data.Session.ExpiresAt, "validity clock resets on overwrite")
}

func TestClear_Atomic(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.SaveAuthData(testUser(), models.Session{Token: "tok"}))
	require.NoError(t, c.Clear())

	require.Nil(t, c.GetAuthData())
	_, ok := c.LastOnlineCheck()
	require.False(t, ok, "last-online-check must be cleared with the record")
}

func TestShouldEnforceOnlineAuth(t *testing.T) {
	c, now := newTestCache(t)

	// No record at all: enforce.
	require.True(t, c.ShouldEnforceOnlineAuth(7))

	require.NoError(t, c.SaveAuthData(testUser(), models.Session{Token: "tok"}))
	require.False(t, c.ShouldEnforceOnlineAuth(7))

	// Exactly at the window boundary: still allowed.
	*now = now.Add(7 * 24 * time.Hour)
	require.False(t, c.ShouldEnforceOnlineAuth(7))

	// Past it: enforce.
	*now = now.Add(24 * time.Hour)
	require.True(t, c.ShouldEnforceOnlineAuth(7))
}

func TestShouldEnforce_IndependentOfSessionExpiry(t *testing.T) {
	c, now := newTestCache(t)
	c.SessionValidity = time.Hour

	require.NoError(t, c.SaveAuthData(testUser(), models.Session{Token: "tok"}))

	// Two hours later the session is expired, but the enforcement window
	// (days) has not lapsed.
	*now = now.Add(2 * time.Hour)
	data := c.GetAuthData()
	require.NotNil(t, data)
	require.True(t, data.IsExpired)
	require.False(t, c.ShouldEnforceOnlineAuth(7))
}

func TestUpdateLastOnlineCheck(t *testing.T) {
	c, now := newTestCache(t)

	require.NoError(t, c.SaveAuthData(testUser(), models.Session{Token: "tok"}))
	*now = now.Add(6 * 24 * time.Hour)
	require.NoError(t, c.UpdateLastOnlineCheck())

	// The re-verification pushed the window out without a record rewrite.
	*now = now.Add(5 * 24 * time.Hour)
	require.False(t, c.ShouldEnforceOnlineAuth(7))
	last, ok := c.LastOnlineCheck()
	require.True(t, ok)
	require.Equal(t, now.Add(-5*24*time.Hour), last)
}
