package term

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/vovakirdan/blockfall/internal/tetris"
)

func TestRendererClassicFrame(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, tetris.ClassicRules(), ' ')
	e := tetris.NewEngine(1, tetris.ClassicRules())

	if err := r.Render(e.Snapshot()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\033[H\033[J") {
		t.Error("frame should start by clearing the screen")
	}

	lines := strings.Split(strings.TrimPrefix(got, "\033[H\033[J"), "\r\n")
	// 20 rows, floor, caption, trailing empty element
	if len(lines) != tetris.Height+3 {
		t.Fatalf("got %d lines, want %d", len(lines), tetris.Height+3)
	}
	for i := 0; i < tetris.Height; i++ {
		if len(lines[i]) != tetris.Width+2 || lines[i][0] != '|' || lines[i][tetris.Width+1] != '|' {
			t.Errorf("row %d = %q, want a %d-wide walled row", i, lines[i], tetris.Width)
		}
	}
	if lines[tetris.Height] != " ---------- " {
		t.Errorf("floor = %q", lines[tetris.Height])
	}
	if want := "[A] Left  [D] Right  [S] Down  [P] Pause  [R] Restart  [X] Exit"; lines[tetris.Height+1] != want {
		t.Errorf("caption = %q, want %q", lines[tetris.Height+1], want)
	}
	if lines[tetris.Height+2] != "" {
		t.Errorf("unexpected trailing text %q", lines[tetris.Height+2])
	}
}

func TestRendererShowsActivePiece(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, tetris.ModernRules(), '.')
	snap := tetris.Snapshot{Active: tetris.Spawn(tetris.ShapeO)}

	if err := r.Render(snap); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(out.String(), "|...OO.....|\r\n|...OO.....|\r\n|..........|") {
		t.Errorf("O piece not drawn at the spawn point:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "[W] Rotate  [Space] Drop") {
		t.Error("modern caption should list rotate and drop")
	}
}

func TestRendererStatusLine(t *testing.T) {
	tests := []struct {
		status tetris.Status
		want   string
	}{
		{tetris.StatusRunning, ""},
		{tetris.StatusPaused, "Game paused"},
		{tetris.StatusGameOver, "Game Over!"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		r := NewRenderer(&out, tetris.ClassicRules(), ' ')
		if err := r.Render(tetris.Snapshot{Status: tt.status}); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		got := out.String()
		if tt.want == "" {
			if strings.Contains(got, "Game paused") || strings.Contains(got, "Game Over") {
				t.Errorf("%v: unexpected status line", tt.status)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("%v: output missing %q", tt.status, tt.want)
		}
	}
}

func TestRendererMessage(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, tetris.ClassicRules(), ' ')

	if err := r.Message("Exiting game..."); err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if out.String() != "Exiting game...\r\n" {
		t.Errorf("Message wrote %q", out.String())
	}
}

type fixedKeys []rune

func (k *fixedKeys) PendingKey() (rune, bool) {
	if len(*k) == 0 {
		return 0, false
	}
	key := (*k)[0]
	*k = (*k)[1:]
	return key, true
}

func TestWithInterrupts(t *testing.T) {
	keys := fixedKeys{0x03, 'a', 0x04}
	src := WithInterrupts(&keys)

	want := []rune{'x', 'a', 'x'}
	for i, w := range want {
		got, ok := src.PendingKey()
		if !ok || got != w {
			t.Errorf("key %d = %q, %v; want %q", i, got, ok, w)
		}
	}
	if _, ok := src.PendingKey(); ok {
		t.Error("expected no more keys")
	}
}

func TestOpenNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "keys")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	tm, err := Open(f)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if tm.Raw() {
		t.Error("a regular file should not be put in raw mode")
	}
	if err := tm.Restore(); err != nil {
		t.Errorf("Restore failed: %v", err)
	}
	if tm.Reader() == nil {
		t.Error("Reader returned nil")
	}
}
