// Package render serializes converted schema documents.
package render

import (
	"bytes"
	"encoding/json"

	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
)

// Renderer turns a schema document into output bytes.
type Renderer interface {
	Render(doc *model.SchemaDocument) ([]byte, error)
}

// JSONRenderer writes the document as JSON with a trailing newline.
// HTML characters are not escaped so values survive verbatim.
type JSONRenderer struct {
	Pretty bool
}

func (r JSONRenderer) Render(doc *model.SchemaDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders doc with a JSONRenderer.
func JSON(doc *model.SchemaDocument, pretty bool) ([]byte, error) {
	return JSONRenderer{Pretty: pretty}.Render(doc)
}
