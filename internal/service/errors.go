// Package service contains the business logic of the budget service.
package service

import "errors"

var (
	// ErrRepositoryNotConfigured is returned when MongoDB is disabled and a
	// stateful operation is requested.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrMenuNotFound is returned when a menu ID does not exist.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrPurchaseNotFound is returned when a purchase does not exist or
	// belongs to another user.
	ErrPurchaseNotFound = errors.New("purchase not found")
	// ErrInvalidCatalog is returned for catalogs with negative prices or
	// duplicate IDs.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrInvalidMonth is returned for out-of-range year or month values.
	ErrInvalidMonth = errors.New("invalid year or month")
)
