package segplay

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotLoaded is returned by playback operations before a source is loaded
	ErrNotLoaded = errors.New("no source loaded")
	// ErrPlayFailed is returned when the output primitive rejects a start request
	ErrPlayFailed = errors.New("output rejected play request")
)

// InvalidRangeError reports a segment request that collapses to zero or
// negative length after clamping. It carries the original requested bounds,
// not the clamped ones.
type InvalidRangeError struct {
	Start, End time.Duration
	Duration   time.Duration
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid segment range %s-%s for source of %s", e.Start, e.End, e.Duration)
}

// DecodeError wraps a failure of the output primitive to decode source bytes
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("source decode failed: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// ResourceNotFoundError reports a name that could not be resolved in a bundle
type ResourceNotFoundError struct {
	Name, Ext string
	Scope     []string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource %q.%s not found in scope %v", e.Name, e.Ext, e.Scope)
}

// DataLoadingError reports a resolved file that could not be read
type DataLoadingError struct {
	Path  string
	Cause error
}

func (e *DataLoadingError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Cause)
}

func (e *DataLoadingError) Unwrap() error { return e.Cause }

// JSONDecodingError reports a manifest that could not be decoded or validated
type JSONDecodingError struct {
	Name  string
	Cause error
}

func (e *JSONDecodingError) Error() string {
	return fmt.Sprintf("decoding manifest %q: %v", e.Name, e.Cause)
}

func (e *JSONDecodingError) Unwrap() error { return e.Cause }
