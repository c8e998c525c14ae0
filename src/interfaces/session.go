package interfaces

// -----------------------------------------------------------------------------
// ISessionEvictor destroys the live session identity. The state store
// implements it; the gateway calls it on authentication failure so an evicted
// token never leaves a usable session behind.
// -----------------------------------------------------------------------------

type ISessionEvictor interface {

	// -----------------------------------------------------------------------------

	// ClearSession drops the in-memory token and profile.
	ClearSession()
}
