package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrPurchaseRejected indicates the ebook is not offered in the catalog
	ErrPurchaseRejected = errors.New("ebook is not in the catalog")

	// ErrAuthFailed indicates the credentials did not match a known user
	ErrAuthFailed = errors.New("authentication failed")

	// ErrLoginRequired indicates the operation needs a logged-in session
	ErrLoginRequired = errors.New("login required")

	// ErrEmptyUserName indicates a login without a display name
	ErrEmptyUserName = errors.New("user name is empty")

	// ErrCatalogFetch indicates the book-metadata service could not be read
	ErrCatalogFetch = errors.New("catalog could not be loaded")
)
