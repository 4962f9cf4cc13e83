package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tgbot/pkg/tgbot"
)

const (
	groupTextUpdate = `{"update_id":1,"message":{"message_id":10,"date":0,` +
		`"chat":{"id":5,"type":"group","title":"g"},"from":{"id":2,"first_name":"A"},"text":"hello"}}`
	missingSenderUpdate = `{"update_id":2,"message":{"message_id":11,"date":0,` +
		`"chat":{"id":5,"type":"group","title":"g"},"text":"hello"}}`
	channelPhotoUpdate = `{"update_id":3,"channel_post":{"message_id":12,"date":0,` +
		`"chat":{"id":-1,"type":"channel"},"photo":[{"file_id":"p","width":1,"height":1}],"caption":"pic"}}`
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg, err := loadConfig("", nil)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	return cfg
}

func outputLines(out string) []string {
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestDecodeStreamLines(t *testing.T) {
	cfg := testConfig(t)
	cfg.Decode.BatchSize = 2
	cfg.Decode.Workers = 2

	input := strings.Join([]string{groupTextUpdate, "", missingSenderUpdate, channelPhotoUpdate}, "\n")
	var out bytes.Buffer
	if err := decodeStream(context.Background(), cfg, strings.NewReader(input), &out, discardLogger()); err != nil {
		t.Fatalf("decodeStream failed: %v", err)
	}

	lines := outputLines(out.String())
	if len(lines) != 3 {
		t.Fatalf("output lines = %d, want 3:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], `{"sequence":0,"update_id":1,"kind":"message"`) {
		t.Fatalf("line 0 = %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `{"sequence":1,"error":`) || !strings.Contains(lines[1], `\"from\" field is missing`) {
		t.Fatalf("line 1 = %s, want missing sender error", lines[1])
	}
	if !strings.Contains(lines[2], `"data":"photo","caption":{"data":"pic"}`) {
		t.Fatalf("line 2 = %s, want photo with caption", lines[2])
	}
}

func TestDecodeStreamAbort(t *testing.T) {
	cfg := testConfig(t)
	cfg.Decode.OnError = "abort"
	cfg.Decode.Workers = 1

	input := strings.Join([]string{groupTextUpdate, missingSenderUpdate, channelPhotoUpdate}, "\n")
	var out bytes.Buffer
	err := decodeStream(context.Background(), cfg, strings.NewReader(input), &out, discardLogger())
	if !errors.Is(err, tgbot.ErrMissingField) {
		t.Fatalf("decodeStream error = %v, want ErrMissingField", err)
	}
	if lines := outputLines(out.String()); len(lines) != 3 {
		t.Fatalf("output lines = %d, want every slot rendered", len(lines))
	}
}

func TestDecodeStreamUpdatesResponse(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input.Format = "updates"

	input := `{"ok":true,"result":[` + groupTextUpdate + `,` + channelPhotoUpdate + `]}`
	var out bytes.Buffer
	if err := decodeStream(context.Background(), cfg, strings.NewReader(input), &out, discardLogger()); err != nil {
		t.Fatalf("decodeStream failed: %v", err)
	}
	lines := outputLines(out.String())
	if len(lines) != 2 || !strings.Contains(lines[1], `"kind":"channel_post"`) {
		t.Fatalf("output = %s, want two updates", out.String())
	}

	out.Reset()
	err := decodeStream(context.Background(), cfg, strings.NewReader(`{"ok":false,"description":"Unauthorized"}`), &out, discardLogger())
	if err == nil || !strings.Contains(err.Error(), "Unauthorized") {
		t.Fatalf("error = %v, want failed response", err)
	}
}

func TestRootCommandReadsInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updates.jsonl")
	message := `{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},"from":{"id":1,"first_name":"A"},"text":"x"}`
	if err := os.WriteFile(path, []byte(message+"\n"), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(strings.NewReader(""), &stdout, &stderr)
	cmd.SetArgs([]string{"--input", path, "--payload", "message", "--log-level", "error"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := `{"sequence":0,"update_id":0,"kind":"message","field":"message","message":{"id":1,"date":0,` +
		`"chat":{"id":1,"type":"private"},"sender":{"id":1,"first_name":"A"},"data":"text","text":{"data":"x"}}}` + "\n"
	if stdout.String() != want {
		t.Fatalf("stdout = %s, want %s", stdout.String(), want)
	}
}

func TestRootCommandRejectsInvalidFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(strings.NewReader(""), &stdout, &stderr)
	cmd.SetArgs([]string{"--workers", "0"})
	err := cmd.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("error = %v, want config error", err)
	}
}
