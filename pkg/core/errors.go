package core

import "errors"

// Common errors.
var (
	// ErrDOIExists signals that the post already carries a DOI and the
	// force flag was not given. Raised before any network call.
	ErrDOIExists = errors.New("post already has a DOI")

	// ErrMissingCredentials signals missing registry username or password.
	ErrMissingCredentials = errors.New("missing registry credentials")

	// ErrUnknownLicense signals a license short-code outside the known table.
	ErrUnknownLicense = errors.New("unknown license")

	// ErrInvalidConfig signals missing required keys in the blog configuration.
	ErrInvalidConfig = errors.New("invalid blog configuration")

	// ErrInvalidPost signals a post lacking required frontmatter keys.
	ErrInvalidPost = errors.New("invalid post frontmatter")

	// ErrRegistryFailed signals a non-ok response from the registry.
	ErrRegistryFailed = errors.New("registry request failed")
)
