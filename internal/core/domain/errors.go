package domain

import (
	"errors"
	"fmt"
)

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrProductNotFound = errors.New("product not found")
var ErrUserNotFound = errors.New("user not found")
var ErrSaleNotFound = errors.New("sale not found")
var ErrCartEmpty = errors.New("cart is empty")
var ErrSessionExpired = errors.New("session expired")
var ErrBackendUnavailable = errors.New("backend unavailable")

// RemoteError is a backend-reported failure: a non-2xx response whose body
// carried a message. The message is passed through to users verbatim;
// transport failures never produce a RemoteError.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

