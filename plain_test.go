package main

import (
	"bytes"
	"strings"
	"testing"

	"reversi-local/engine"
	"reversi-local/engine/local"
)

func runPlainScript(t *testing.T, cfg engine.GameConfig, script string) string {
	t.Helper()
	eng := local.New(cfg, local.WithSynchronousMoves())
	var out bytes.Buffer
	if err := runPlain(eng, strings.NewReader(script), &out); err != nil {
		t.Fatalf("runPlain: %v", err)
	}
	return out.String()
}

func plainConfig() engine.GameConfig {
	cfg := engine.DefaultConfig()
	cfg.Depth = 1
	return cfg
}

func TestPlainPlaysMove(t *testing.T) {
	out := runPlainScript(t, plainConfig(), "c4\ntranscript\nquit\n")
	for _, want := range []string{"You play Black", "White plays", "Search:", "bc4w"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlainErrors(t *testing.T) {
	out := runPlainScript(t, plainConfig(), "a0\nxyz\nundo\n")
	for _, want := range []string{
		"Can't play a0: illegal move",
		`Unknown command "xyz"`,
		"Can't undo: nothing to undo",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlainHints(t *testing.T) {
	out := runPlainScript(t, plainConfig(), "hints\nmoves\n")
	if !strings.Contains(out, "*") {
		t.Errorf("hints not drawn:\n%s", out)
	}
	if !strings.Contains(out, "c4") {
		t.Errorf("moves should list c4:\n%s", out)
	}
}

func TestPlainFinishedGame(t *testing.T) {
	cfg := plainConfig()
	cfg.Transcript = "be2wd2bc5wf3bg2wf2bc2wb6ba7"
	out := runPlainScript(t, cfg, "moves\n")
	if !strings.Contains(out, "Game over: Black wins 13-0") {
		t.Errorf("missing outcome:\n%s", out)
	}
	if !strings.Contains(out, "No moves to play") {
		t.Errorf("moves after the end:\n%s", out)
	}
}
