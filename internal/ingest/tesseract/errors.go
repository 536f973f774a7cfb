package tesseract

import "errors"

// ErrUnavailable is returned by binaries built without cgo.
var ErrUnavailable = errors.New("tesseract: built without cgo")
