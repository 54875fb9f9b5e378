package core

import "context"

// Registry defines the contract with the DOI registration service.
type Registry interface {
	// RegisterMetadata upserts the serialized metadata record for a DOI.
	// The call is an idempotent PUT; repeating it converges to the same state.
	RegisterMetadata(ctx context.Context, doi string, metadata []byte) error

	// RegisterURL upserts the URL mapping for a previously registered DOI.
	RegisterURL(ctx context.Context, doi string, url string) error
}
