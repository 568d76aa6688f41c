// Package gate computes navigational permissions from the offline auth
// cache and current connectivity. It is a consumer of the core, not part
// of it: decisions come back as plain values for the presentation layer.
package gate

import (
	"context"
	"strings"

	"github.com/PhantomXD-nepal/np-wallet/internal/client/authcache"
	"github.com/PhantomXD-nepal/np-wallet/internal/client/netmon"
)

// Routes reachable while offline: viewing transactions and creating new
// ones. Everything else needs connectivity.
var allowedOfflineRoutes = []string{
	"/",
	"/index",
	"/create",
}

// Decision is the gate's view of what the user may currently do.
type Decision struct {
	// Offline is true when the device has no connectivity.
	Offline bool
	// CanUseOffline is true when a valid (unexpired) cached auth record
	// exists, granting offline feature access.
	CanUseOffline bool
	// EnforceOnline is true when the enforcement window has lapsed and
	// cached credentials must no longer be trusted for full access.
	EnforceOnline bool
}

// Gate wires the auth cache to connectivity checks.
type Gate struct {
	cache   *authcache.Cache
	network netmon.Checker
	// MaxDaysOffline is the enforcement window in days.
	MaxDaysOffline int
}

// New constructs a Gate with the default enforcement window.
func New(cache *authcache.Cache, network netmon.Checker) *Gate {
	return &Gate{
		cache:          cache,
		network:        network,
		MaxDaysOffline: authcache.DefaultMaxDaysOffline,
	}
}

// Evaluate computes the current access decision.
func (g *Gate) Evaluate(ctx context.Context) Decision {
	d := Decision{
		Offline:       !g.network.Fetch(ctx),
		EnforceOnline: g.cache.ShouldEnforceOnlineAuth(g.MaxDaysOffline),
	}
	if auth := g.cache.GetAuthData(); auth != nil && !auth.IsExpired {
		d.CanUseOffline = true
	}
	return d
}

// RouteAllowed reports whether the given route may be entered under the
// decision. Online, everything is allowed; offline, only the home and
// create routes are.
func (d Decision) RouteAllowed(route string) bool {
	if !d.Offline {
		return true
	}
	for _, p := range allowedOfflineRoutes {
		if route == p || (p != "/" && strings.HasPrefix(route, p)) {
			return true
		}
	}
	return false
}
