package repository

import "errors"

// ErrEmailExists is returned when registering a user with an email
// address that is already taken.  Handlers translate this into an
// HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is returned when registering a user with a login
// name that is already taken.
var ErrUsernameExists = errors.New("username already exists")
