package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput(&buf, "production", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v, want debug", l.GetLevel())
	}

	l.WithField("application_id", "abc").Info("transitioned")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %q (%v)", buf.String(), err)
	}
	if got["message"] != "transitioned" || got["application_id"] != "abc" {
		t.Fatalf("unexpected fields: %v", got)
	}
}

func TestNew_DevelopmentWritesText(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput(&buf, "development", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.GetLevel() != logrus.InfoLevel {
		t.Fatalf("default level = %v, want info", l.GetLevel())
	}
	l.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("text output = %q", buf.String())
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("production", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := map[string]bool{
		"":            true,
		"development": true,
		"Local":       true,
		"staging":     false,
		"production":  false,
	}
	for env, want := range tests {
		if got := IsDevelopment(env); got != want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", env, got, want)
		}
	}
}
