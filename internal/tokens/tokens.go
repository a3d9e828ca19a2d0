// Package tokens owns the client side of the credential pair: persistent
// storage of the access and refresh tokens plus the unverified pre-flight
// inspection of access token claims.
//
// Storage is deliberately forgiving: a broken or unavailable backing store
// reads as "no token", never as an error, so the worst outcome is an
// unauthenticated session.
package tokens

// Cookie names the backend uses for the credential pair. Every store keys
// tokens by these names so the clearing path is identical across
// implementations.
const (
	AccessTokenName  = "access_token_cookie"
	RefreshTokenName = "refresh_token_cookie"
)

// Store reads and writes the credential pair.
type Store interface {
	// Get returns the named token, or ok=false when it is absent or the
	// backing storage is unavailable.
	Get(name string) (value string, ok bool)
	// Set stores the named token. Failures are swallowed (logged only).
	Set(name, value string)
	// Remove deletes the named tokens. Idempotent: removing tokens that do
	// not exist is a no-op.
	Remove(names ...string)
}

// Clear removes both credentials through a single call so no partial state
// (access cleared, refresh retained) can be observed.
func Clear(s Store) {
	s.Remove(AccessTokenName, RefreshTokenName)
}
