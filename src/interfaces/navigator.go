package interfaces

// -----------------------------------------------------------------------------
// INavigator is the routing surface the gateway needs when a session dies.
// -----------------------------------------------------------------------------

type INavigator interface {

	// -----------------------------------------------------------------------------

	// ForceLogin unconditionally routes to the login entry point. Called
	// centrally on authentication failure, exactly once per 401 response.
	ForceLogin()
}
