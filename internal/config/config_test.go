package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	cfg, err := Load(nil, env(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.InMemory || cfg.MaxPerftDepth != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Origins, []string{"http://localhost:5173"}) {
		t.Errorf("origins = %v", cfg.Origins)
	}
	if filepath.Base(cfg.DataDir) != "sessions" {
		t.Errorf("data dir = %s", cfg.DataDir)
	}
}

func TestLoadPrecedence(t *testing.T) {
	vars := map[string]string{
		EnvAddr:     ":8080",
		EnvDataDir:  "/var/lib/chessrules",
		EnvOrigins:  "https://a.example, https://b.example",
		EnvInMemory: "true",
	}
	cfg, err := Load([]string{"-addr", ":9090"}, env(vars))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("flag did not override env: addr = %s", cfg.Addr)
	}
	if cfg.DataDir != "/var/lib/chessrules" || !cfg.InMemory || cfg.StoreDir() != "" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.Origins)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		vars map[string]string
	}{
		{"bad bool", nil, map[string]string{EnvInMemory: "maybe", EnvDataDir: "/d"}},
		{"bad depth", []string{"-max-perft", "0"}, map[string]string{EnvDataDir: "/d"}},
		{"unknown flag", []string{"-nope"}, map[string]string{EnvDataDir: "/d"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.args, env(tc.vars)); err == nil {
				t.Fatal("Load succeeded")
			}
		})
	}
}
