package document

import "errors"

// ErrEmptyURL indicates IndexURL was called without a URL.
var ErrEmptyURL = errors.New("url is required")
