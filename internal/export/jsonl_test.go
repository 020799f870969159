package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/argotchat/argot/internal"
)

func TestJSONLExporter_Export(t *testing.T) {
	session := internal.CreateTestSessionWithMessages("jsonl-test", []internal.Message{
		{
			Role:      internal.RoleUser,
			Content:   "question",
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			Role:      internal.RoleAssistant,
			Content:   "API Error: API returned status code 500",
			IsError:   true,
			CreatedAt: time.Date(2024, 1, 1, 10, 0, 2, 0, time.UTC),
		},
	})

	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []map[string]interface{}
	for scanner.Scan() {
		var obj map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, obj)
	}

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["role"] != "user" || lines[0]["content"] != "question" {
		t.Errorf("lines[0] = %v", lines[0])
	}
	if _, present := lines[0]["is_error"]; present {
		t.Error("plain messages should omit is_error")
	}
	if lines[1]["is_error"] != true {
		t.Errorf("lines[1] should carry is_error, got %v", lines[1])
	}
}

func TestJSONLExporter_EmptySession(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONLExporter{}).Export(internal.CreateTestSessionWithMessages("empty", nil), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty session should produce no output, got %q", buf.String())
	}
}
