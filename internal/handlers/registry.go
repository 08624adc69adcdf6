package handlers

// AppHandlers aggregates all HTTP handlers for route registration.
type AppHandlers struct {
	AuthHandler *AuthHandler
	BookHandler *BookHandler
}
