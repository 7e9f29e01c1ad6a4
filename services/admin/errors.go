package admin

import "errors"

// ErrSelfToggle blocks an admin from changing their own active status.
var ErrSelfToggle = errors.New("you cannot disable your own user")
