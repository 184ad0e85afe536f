package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/transit-overlay/overlay"
)

func TestOptionsConfig(t *testing.T) {
	cfg, err := options{index: "flat", fps: 30, tps: 60, strict: true}.config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Index != overlay.IndexFlat || !cfg.Strict {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Layer != overlay.DefaultConfig().Layer {
		t.Errorf("layer = %v", cfg.Layer)
	}

	if _, err := (options{index: "octree", fps: 1, tps: 1}).config(); err == nil {
		t.Error("unknown index accepted")
	}
	if _, err := (options{index: "auto", fps: 0, tps: 1}).config(); err == nil {
		t.Error("zero fps accepted")
	}
}

func TestRunRejectsBeforeTerminal(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"positional", []string{"world.yaml"}, "unexpected argument"},
		{"bad index", []string{"--index", "octree"}, "octree"},
		{"bad fps", []string{"--fps", "0"}, "positive"},
		{"unknown flag", []string{"--nope"}, "nope"},
		{"missing layout", []string{"--layout", filepath.Join(t.TempDir(), "none.yaml")}, "none.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run(%v) = %v, want error mentioning %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestOpenLogWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.log")
	logger, closeLog, err := openLog(path)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("world indexed", "positions", 3)
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("log line %q: %v", data, err)
	}
	if rec["msg"] != "world indexed" || rec["positions"] != float64(3) {
		t.Errorf("record = %v", rec)
	}

	discard, closeDiscard, err := openLog("")
	if err != nil || discard == nil {
		t.Fatalf("discard logger: %v", err)
	}
	discard.Info("dropped")
	closeDiscard()
}
