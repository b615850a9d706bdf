package contact

import "errors"

var ErrQueryNotFound = errors.New("contact query not found")
