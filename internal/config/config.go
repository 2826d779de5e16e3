// Package config resolves server settings from flags, then environment, then
// defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvAddr     = "CHESSRULES_ADDR"
	EnvDataDir  = "CHESSRULES_DATA_DIR"
	EnvOrigins  = "CHESSRULES_ORIGINS"
	EnvInMemory = "CHESSRULES_IN_MEMORY"
)

type Config struct {
	Addr     string
	DataDir  string
	Origins  []string
	InMemory bool

	// MaxPerftDepth caps the perft endpoint.
	MaxPerftDepth int
}

// StoreDir is the directory handed to store.Open; empty means in memory.
func (c *Config) StoreDir() string {
	if c.InMemory {
		return ""
	}
	return c.DataDir
}

// Load parses args (without the program name). getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	dataDir := getenv(EnvDataDir)
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		dataDir = dir
	}
	addr := getenv(EnvAddr)
	if addr == "" {
		addr = ":3000"
	}
	origins := getenv(EnvOrigins)
	if origins == "" {
		origins = "http://localhost:5173"
	}
	inMemory := false
	if v := getenv(EnvInMemory); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvInMemory, err)
		}
		inMemory = b
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("chessrules", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", addr, "listen address")
	fs.StringVar(&cfg.DataDir, "data", dataDir, "session database directory")
	fs.BoolVar(&cfg.InMemory, "memory", inMemory, "keep sessions in memory only")
	fs.IntVar(&cfg.MaxPerftDepth, "max-perft", 4, "deepest perft the API will run")
	originList := fs.String("origins", origins, "comma-separated CORS origins")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.MaxPerftDepth < 1 {
		return nil, fmt.Errorf("max-perft must be at least 1, got %d", cfg.MaxPerftDepth)
	}
	for _, o := range strings.Split(*originList, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.Origins = append(cfg.Origins, o)
		}
	}
	return cfg, nil
}
