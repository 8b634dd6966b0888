package generate

import (
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/mdmeta/internal/storage"
)

// ErrModelUnavailable is returned when the backend does not serve a
// configured model.
var ErrModelUnavailable = errors.New("model not available")

// ErrOutputExists is returned when the output file is already present.
var ErrOutputExists = storage.ErrOutputExists

// IOError wraps a failure to read the source or persist the result.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
