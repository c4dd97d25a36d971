package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""), "gl.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("empty config = %+v, want defaults %+v", *cfg, *Default())
	}
	if cfg.MaxDepth != DefaultMaxDepth || cfg.LogPrefix != DefaultLogPrefix || cfg.Color != ColorAuto {
		t.Errorf("unexpected defaults: %+v", *cfg)
	}
}

func TestParseConfigValues(t *testing.T) {
	data := []byte(`
max_depth: 500
parser_max_depth: 64
log_prefix: ">>"
history_file: /tmp/gl_history
color: never
`)
	cfg, err := ParseConfig(data, "gl.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	want := Config{
		MaxDepth:       500,
		ParserMaxDepth: 64,
		LogPrefix:      ">>",
		HistoryFile:    "/tmp/gl_history",
		Color:          ColorNever,
	}
	if *cfg != want {
		t.Errorf("config = %+v, want %+v", *cfg, want)
	}
	if got := cfg.HistoryPath("/home/u"); got != "/tmp/gl_history" {
		t.Errorf("absolute HistoryPath = %q", got)
	}
	if got := Default().HistoryPath("/home/u"); got != filepath.Join("/home/u", DefaultHistoryFile) {
		t.Errorf("relative HistoryPath = %q", got)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"unknown key", "max_dept: 5\n", "max_dept"},
		{"bad color", "color: sometimes\n", "color"},
		{"negative depth", "max_depth: -1\n", "max_depth"},
		{"negative parser depth", "parser_max_depth: -3\n", "parser_max_depth"},
		{"wrong type", "max_depth: deep\n", "gl.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), "gl.yaml")
			if err == nil {
				t.Fatalf("expected an error for %q", tt.data)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "gl.yaml")
	if err := os.WriteFile(path, []byte("log_prefix: \"#\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}
	if found != path {
		t.Errorf("FindConfig = %q, want %q", found, path)
	}

	cfg, usedPath, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if usedPath != path || cfg.LogPrefix != "#" {
		t.Errorf("Discover = %+v from %q", *cfg, usedPath)
	}
}

func TestFindConfigPrefersNearest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sub")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "gl.yaml"), []byte("color: always\n"), 0644); err != nil {
		t.Fatal(err)
	}
	nearest := filepath.Join(nested, "gl.yml")
	if err := os.WriteFile(nearest, []byte("color: never\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, usedPath, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if usedPath != nearest || cfg.Color != ColorNever {
		t.Errorf("Discover used %q with color %q", usedPath, cfg.Color)
	}
}

func TestDiscoverInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gl.yaml")
	if err := os.WriteFile(path, []byte("color: purple\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, usedPath, err := Discover(dir)
	if err == nil {
		t.Fatal("expected an error for an invalid config")
	}
	if usedPath != path {
		t.Errorf("path = %q, want %q", usedPath, path)
	}
}
