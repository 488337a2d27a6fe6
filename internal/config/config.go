// Package config loads session settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variable names.
const (
	EnvSeed          = "QUARTO_SEED"
	EnvPlayer1Name   = "QUARTO_PLAYER1_NAME"
	EnvPlayer2Name   = "QUARTO_PLAYER2_NAME"
	EnvPlayer1CPU    = "QUARTO_PLAYER1_COMPUTER"
	EnvPlayer2CPU    = "QUARTO_PLAYER2_COMPUTER"
	EnvFirstSelector = "QUARTO_FIRST_SELECTOR"
	EnvPlacement     = "QUARTO_PLACEMENT"
	EnvComputerDelay = "QUARTO_COMPUTER_DELAY"
	EnvLogLevel      = "QUARTO_LOG_LEVEL"
)

// Config holds everything needed to start a session.
type Config struct {
	Seed          uint64 // 0 = time-based
	PlayerNames   [2]string
	Computer      [2]bool
	FirstSelector uint8
	Placement     string
	ComputerDelay time.Duration
	LogLevel      logrus.Level
}

// Default returns the built-in settings: a human against the computer, the
// computer handing over the first piece.
func Default() Config {
	return Config{
		PlayerNames:   [2]string{"Player", "Computer"},
		Computer:      [2]bool{false, true},
		FirstSelector: 1,
		Placement:     "random",
		ComputerDelay: 500 * time.Millisecond,
		LogLevel:      logrus.WarnLevel,
	}
}

// Load reads the given .env files (".env" when none are named; missing
// files are ignored) and then applies the QUARTO_* environment variables
// over Default. Variables already set in the environment win over .env.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv applies the QUARTO_* environment variables over Default.
func FromEnv() (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvPlayer1Name); ok {
		cfg.PlayerNames[0] = v
	}
	if v, ok := lookup(EnvPlayer2Name); ok {
		cfg.PlayerNames[1] = v
	}
	for i, key := range []string{EnvPlayer1CPU, EnvPlayer2CPU} {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, fmt.Errorf("config: %s: %w", key, err)
			}
			cfg.Computer[i] = b
		}
	}
	if v, ok := lookup(EnvFirstSelector); ok {
		first, err := ParseFirstSelector(v)
		if err != nil {
			return Config{}, err
		}
		cfg.FirstSelector = first
	}
	if v, ok := lookup(EnvPlacement); ok {
		cfg.Placement = strings.ToLower(v)
	}
	if v, ok := lookup(EnvComputerDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvComputerDelay, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("config: %s: negative delay %s", EnvComputerDelay, d)
		}
		cfg.ComputerDelay = d
	}
	if v, ok := lookup(EnvLogLevel); ok {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// ParseFirstSelector accepts a player index ("0" or "1") or a player
// number ("p1" or "p2").
func ParseFirstSelector(v string) (uint8, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "p1":
		return 0, nil
	case "1", "p2":
		return 1, nil
	}
	return 0, fmt.Errorf("config: %s: %q is not 0, 1, p1 or p2", EnvFirstSelector, v)
}

// lookup returns a trimmed, non-empty environment value.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
