package store

import "context"

// Backend is used as lifecycle entrypoint for every remote store implementation.
type Backend interface {
	// Name returns the identifier name defined for this backend
	Name() string
	// Open is part of the lifecycle behaviour and gets called before the first request.
	Open(ctx context.Context) error
	// Close is part of the lifecycle behaviour and releases any client resources.
	Close(ctx context.Context) error

	// GetCapabilities returns a list of capabilities supported by this backend.
	GetCapabilities() *BackendCapabilities
}
