package sample

import "errors"

var (
	// ErrDecode reports a malformed container: wrong tags or a missing chunk.
	ErrDecode = errors.New("malformed wav container")
	// ErrUnsupportedFormat reports a well-formed file the mixer cannot play.
	ErrUnsupportedFormat = errors.New("unsupported wav format (need 16-bit linear PCM)")
	// ErrMissingAsset reports that no file exists for a note.
	ErrMissingAsset = errors.New("missing sample asset")
)
