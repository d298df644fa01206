package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/fiber/pkg/host"
)

const counterScene = `
name: counter demo
description: two counters
root:
  tag: div
  attrs: {id: app}
  children:
    - component: counter
      props: {start: 3, label: Clicks}
`

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "counter.yaml"), []byte(counterScene), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := `{"name": "demo", "scene": "counter.yaml", "scheduler": {"slice": "2ms"}}`
	if err := os.WriteFile(filepath.Join(dir, "fiber.json"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderShape(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "render", "--config", filepath.Join(dir, "fiber.json"), "--format", "shape")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"counter demo",
		"two counters",
		`span(class=value)["3"]`,
		"Passes:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEvents(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "render", filepath.Join(dir, "counter.yaml"),
		"--config", filepath.Join(dir, "fiber.json"),
		"-f", "shape",
		"-e", "inc:click", "-e", "inc:click", "-e", "dec:click", "-e", "inc:click")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `span(class=value)["5"]`) {
		t.Errorf("counter should read 5:\n%s", out)
	}
	if !strings.Contains(out, "Dispatched 4 events") {
		t.Errorf("missing dispatch summary:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "render", "--config", filepath.Join(dir, "fiber.json"), "--format", "json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var snap host.NodeSnapshot
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("output is not a snapshot: %v\n%s", err, out)
	}
	if snap.Tag != "root" || len(snap.Children) != 1 {
		t.Errorf("snapshot root = %s with %d children", snap.Tag, len(snap.Children))
	}
}

func TestRenderHTML(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "render", "--config", filepath.Join(dir, "fiber.json"), "-f", "html", "-e", "inc:click")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, `<div id="app">`) {
		t.Errorf("html should start with the app div:\n%s", out)
	}
	if !strings.Contains(out, `<span class="value">4</span>`) {
		t.Errorf("html missing the counter value:\n%s", out)
	}
}

func TestRenderTree(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "render", "--config", filepath.Join(dir, "fiber.json"), "--stats=false")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "Passes:") {
		t.Errorf("--stats=false still printed statistics:\n%s", out)
	}
	if !strings.Contains(out, "root#") || !strings.Contains(out, "id=inc") {
		t.Errorf("outline incomplete:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := writeProject(t)
	cfg := filepath.Join(dir, "fiber.json")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"render", "--config", cfg, "-f", "xml"}, "unknown format"},
		{"bad event", []string{"render", "--config", cfg, "-e", "inc"}, "invalid event"},
		{"unknown id", []string{"render", "--config", cfg, "-e", "nope:click"}, `no node with id "nope"`},
		{"missing scene", []string{"render", "--config", cfg, filepath.Join(dir, "missing.yaml")}, "missing.yaml"},
		{"missing config", []string{"render", "--config", filepath.Join(dir, "other.json")}, "E131"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		in      string
		id      string
		event   string
		payload any
		wantErr bool
	}{
		{"inc:click", "inc", "click", nil, false},
		{"draft:input=milk", "draft", "input", "milk", false},
		{"draft:input=", "draft", "input", "", false},
		{"inc", "", "", nil, true},
		{":click", "", "", nil, true},
		{"inc:=x", "", "", nil, true},
	}
	for _, tt := range tests {
		id, event, payload, err := parseEvent(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseEvent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if id != tt.id || event != tt.event || payload != tt.payload {
			t.Errorf("parseEvent(%q) = %q, %q, %v", tt.in, id, event, payload)
		}
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}
