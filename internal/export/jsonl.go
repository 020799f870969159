package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/argotchat/argot/internal"
	"github.com/pkg/errors"
)

// JSONLExporter writes one JSON object per message, one per line.
// Session metadata is not included; the filename carries the id.
type JSONLExporter struct{}

type jsonlRecord struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsError   bool      `json:"is_error,omitempty"`
}

func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, msg := range session.Messages {
		rec := jsonlRecord{
			Role:      string(msg.Role),
			Content:   msg.Content,
			Timestamp: msg.CreatedAt,
			IsError:   msg.IsError,
		}
		if err := enc.Encode(rec); err != nil {
			return errors.Wrapf(err, "encode message %s", msg.ID)
		}
	}
	return nil
}

func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
