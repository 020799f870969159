package export

import (
	"encoding/json"
	"io"

	"github.com/argotchat/argot/internal"
	"github.com/pkg/errors"
)

// JSONExporter writes the whole session, messages included, as one
// indented JSON document.
type JSONExporter struct{}

func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrapf(enc.Encode(session), "encode session %s", session.ID)
}

func (e *JSONExporter) Extension() string {
	return "json"
}
