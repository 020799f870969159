package export

import (
	"fmt"
	"io"

	"github.com/argotchat/argot/internal"
)

// Exporter writes one session transcript to w in a single format.
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

var formats = map[string]func() Exporter{
	"jsonl":    func() Exporter { return &JSONLExporter{} },
	"md":       func() Exporter { return &MarkdownExporter{} },
	"markdown": func() Exporter { return &MarkdownExporter{} },
	"yaml":     func() Exporter { return &YAMLExporter{} },
	"json":     func() Exporter { return &JSONExporter{} },
}

// NewExporter returns the exporter for a format name.
func NewExporter(format string) (Exporter, error) {
	mk, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
	return mk(), nil
}
