package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// isolate points HOME and the working directory at empty temp dirs so Load
// only sees the files a test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != DefaultTetrisConfig() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultTetrisConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "tick_interval: 250ms\nfeatures:\n  rotate: false\nglyphs:\n  empty: \".\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %v, want 250ms", cfg.TickInterval)
	}
	if cfg.Features.Rotate {
		t.Error("rotate should be disabled")
	}
	if !cfg.Features.HardDrop {
		t.Error("hard_drop missing from file should keep its default")
	}
	if cfg.EmptyGlyph() != '.' {
		t.Errorf("EmptyGlyph = %q, want '.'", cfg.EmptyGlyph())
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "features: [not, a, map]\n")
	zero := filepath.Join(dir, "zero.yaml")
	writeFile(t, zero, "tick_interval: 0s\n")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "config: read"},
		{"invalid yaml", bad, "config: parse"},
		{"invalid value", zero, "tick_interval must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", FileName), "tick_interval: 300ms\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickInterval != 300*time.Millisecond {
		t.Errorf("local config not used: TickInterval = %v", cfg.TickInterval)
	}

	writeFile(t, filepath.Join(home, ".blockfall", "configs", FileName), "tick_interval: 100ms\n")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickInterval != 100*time.Millisecond {
		t.Errorf("user config should win over local: TickInterval = %v", cfg.TickInterval)
	}
}

func TestLoadSkipsInvalidOptionalFile(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".blockfall", "configs", FileName), "tick_interval: -1s\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickInterval != core.DefaultTickInterval {
		t.Errorf("TickInterval = %v, want default", cfg.TickInterval)
	}
}

func TestApplyVariant(t *testing.T) {
	cfg := DefaultTetrisConfig()

	ApplyVariant(&cfg, VariantClassic)
	want := core.Rules{RestartClearsPause: true}
	if got := cfg.Rules(); got != want {
		t.Errorf("classic rules = %+v, want %+v", got, want)
	}
	if !cfg.Features.ExitOnGameOver {
		t.Error("classic should exit on game over")
	}

	ApplyVariant(&cfg, VariantModern)
	want = core.Rules{Rotate: true, HardDrop: true, RestartClearsPause: true}
	if got := cfg.Rules(); got != want {
		t.Errorf("modern rules = %+v, want %+v", got, want)
	}
	if cfg.Features.ExitOnGameOver {
		t.Error("modern should keep running after game over")
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"modern", VariantModern, false},
		{"classic", VariantClassic, false},
		{"Classic", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownVariant) {
			t.Errorf("ParseVariant(%q) error %v is not ErrUnknownVariant", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmptyGlyph(t *testing.T) {
	tests := []struct {
		empty string
		want  rune
	}{
		{" ", ' '},
		{".", '.'},
		{"·", '·'},
		{"", ' '},
	}

	for _, tt := range tests {
		cfg := TetrisConfig{Glyphs: Glyphs{Empty: tt.empty}}
		if got := cfg.EmptyGlyph(); got != tt.want {
			t.Errorf("EmptyGlyph(%q) = %q, want %q", tt.empty, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultTetrisConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.Glyphs.Empty = "ab"
	if err := cfg.Validate(); err == nil {
		t.Error("multi-character glyph should be rejected")
	}
}
