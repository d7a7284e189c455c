// Package secrets holds the stores credentials are kept in.
package secrets

import "errors"

var (
	ErrNotFound = errors.New("secret not found")
	ErrReadOnly = errors.New("secret store is read only")
)
