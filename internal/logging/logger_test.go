package logging

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/goccy/go-json"
)

func TestLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("info")
	defer SetOutput(os.Stdout)

	Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %s", buf.String())
	}

	Error("boom", errors.New("bad"), Fields{"battle_id": "b1"})
	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if line["level"] != "error" || line["message"] != "boom" || line["error"] != "bad" || line["battle_id"] != "b1" {
		t.Fatalf("unexpected line: %v", line)
	}
}

func TestSetLevelUnknownFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("chatty")
	defer SetOutput(os.Stdout)

	Info("shown", nil)
	if buf.Len() == 0 {
		t.Fatalf("info line missing")
	}
}
