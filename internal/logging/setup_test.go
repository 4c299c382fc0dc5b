package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetupTagsServiceAndFansOut(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup(slog.LevelWarn, "payout-engine", slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("reaches the json handler only", "k", 1)
	slog.Info("via default")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 json records, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal(lines[0], &rec); err != nil {
		t.Fatal(err)
	}
	if rec["service"] != "payout-engine" || rec["msg"] != "reaches the json handler only" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestMultiHandlerGroups(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	slog.New(h).WithGroup("req").Info("hit", "path", "/health")

	for _, buf := range []*bytes.Buffer{&a, &b} {
		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatal(err)
		}
		group, ok := rec["req"].(map[string]any)
		if !ok || group["path"] != "/health" {
			t.Fatalf("unexpected record %v", rec)
		}
	}
}
