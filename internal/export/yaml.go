package export

import (
	"io"

	"github.com/argotchat/argot/internal"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes the whole session as one YAML document.
type YAMLExporter struct{}

func (e *YAMLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(session); err != nil {
		_ = enc.Close()
		return errors.Wrapf(err, "encode session %s", session.ID)
	}
	return errors.Wrap(enc.Close(), "flush yaml encoder")
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
