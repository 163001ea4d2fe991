package images

import "errors"

// ErrNotFound reports a mapped image whose stored file is absent.
var ErrNotFound = errors.New("image file not found")
