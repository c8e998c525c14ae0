package interfaces

// -----------------------------------------------------------------------------
// ITokenStore wraps the durable slot holding the current bearer token.
// -----------------------------------------------------------------------------

type ITokenStore interface {

	// -----------------------------------------------------------------------------

	// Get returns the stored token, or empty string if the slot is absent.
	// An empty slot simply means "unauthenticated", not a failure.
	Get() (string, error)

	// -----------------------------------------------------------------------------

	// Set stores a new bearer token, replacing any previous one.
	Set(token string) error

	// -----------------------------------------------------------------------------

	// Clear evicts the token. Clearing an empty slot is a no-op.
	Clear() error

	// -----------------------------------------------------------------------------

	// Close releases the underlying storage.
	Close() error
}
