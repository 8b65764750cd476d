package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFlagsDefaults(t *testing.T) {
	t.Setenv(EnvLayouts, "")
	t.Setenv(EnvAssets, "")

	cmd := newRootCmd()
	f := cmd.Flags()
	tests := map[string]string{
		"layout":      "engr",
		"output":      "output.mp4",
		"speed":       "5",
		"layouts-dir": "layouts",
		"assets-dir":  "assets",
		"rasterizer":  "fitz",
		"hold":        "0",
	}
	for name, want := range tests {
		if got := f.Lookup(name).DefValue; got != want {
			t.Errorf("--%s: expected default %q, got %q", name, want, got)
		}
	}
	for _, short := range []string{"t", "l", "o", "s"} {
		if f.ShorthandLookup(short) == nil {
			t.Errorf("Expected shorthand -%s", short)
		}
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv(EnvLayouts, "/srv/layouts")
	t.Setenv(EnvAssets, "/srv/assets")

	f := newRootCmd().Flags()
	if got := f.Lookup("layouts-dir").DefValue; got != "/srv/layouts" {
		t.Errorf("Expected layouts dir from env, got %s", got)
	}
	if got := f.Lookup("assets-dir").DefValue; got != "/srv/assets" {
		t.Errorf("Expected assets dir from env, got %s", got)
	}
}

func TestTextRequired(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"-o", "x.gif"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--text") {
		t.Errorf("Expected missing text error, got %v", err)
	}
}

func TestListLayouts(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "engr.yml"), []byte("file: k.svg\nfonts: [Noto-Sans-Mono]\n"), 0644)
	os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("fonts: [a]\n"), 0644)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--list-layouts", "--layouts-dir", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	s := out.String()
	for _, want := range []string{"engr", "mono display: Noto-Sans-Mono", "broken", "invalid layout"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in output:\n%s", want, s)
		}
	}
}

func TestRejectsUnknownOutput(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "engr.yml"), []byte("file: k.svg\n"), 0644)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"-t", "hi", "--layouts-dir", dir, "-o", filepath.Join(dir, "out.webm")})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.webm")); !os.IsNotExist(err) {
		t.Error("Expected no output file")
	}
}
