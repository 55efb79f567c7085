package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/monify-labs/hostfetch/pkg/models"
)

// JSONRenderer writes the snapshot as indented JSON
type JSONRenderer struct{}

// NewJSONRenderer creates a new JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render encodes info to w
func (JSONRenderer) Render(w io.Writer, info *models.SystemInfo) error {
	if info == nil {
		return ErrNilSnapshot
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}
