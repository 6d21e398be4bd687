package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"palisade-hq/palisade/pkg/config"
)

func TestSetupWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("SetupWithWriter() failed: %v", err)
	}

	logger.Info("cache created", "regions", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "cache created" {
		t.Errorf("msg = %v, want %q", record["msg"], "cache created")
	}
	if record["regions"] != float64(3) {
		t.Errorf("regions = %v, want 3", record["regions"])
	}
}

func TestSetupWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("SetupWithWriter() failed: %v", err)
	}

	logger.Debug("realm registered", "realm", "users")

	out := buf.String()
	if !strings.Contains(out, "realm registered") || !strings.Contains(out, "realm=users") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestSetupWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("SetupWithWriter() failed: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info record emitted at warn level")
	}
	if !strings.Contains(out, "emitted") {
		t.Error("warn record missing")
	}
}

func TestSetupWithWriter_Defaults(t *testing.T) {
	var buf bytes.Buffer
	if _, err := SetupWithWriter(config.LoggingConfig{}, &buf); err != nil {
		t.Errorf("SetupWithWriter() with empty config failed: %v", err)
	}
}

func TestSetupWithWriter_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	if _, err := SetupWithWriter(config.LoggingConfig{Level: "loud"}, &buf); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestSetupWithWriter_InvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := SetupWithWriter(config.LoggingConfig{Format: "xml"}, &buf); err == nil {
		t.Error("expected error for invalid format")
	}
}
