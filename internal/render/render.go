// Package render turns a snapshot into output for the terminal.
package render

import (
	"errors"
	"io"

	"github.com/monify-labs/hostfetch/pkg/models"
)

// ErrNilSnapshot is returned when a renderer is handed no snapshot
var ErrNilSnapshot = errors.New("nothing to render: snapshot is nil")

// Renderer is the interface for writing a snapshot to an output
type Renderer interface {
	// Render writes info to w
	Render(w io.Writer, info *models.SystemInfo) error
}
