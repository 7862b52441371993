package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/genius/constants"
	"github.com/lixenwraith/genius/game"
)

// Environment keys
const (
	EnvDifficulty = "GENIUS_DIFFICULTY"
	EnvAudio      = "GENIUS_AUDIO"
	EnvVolume     = "GENIUS_VOLUME"
	EnvSeed       = "GENIUS_SEED"
	EnvHTTPAddr   = "GENIUS_HTTP_ADDR"
	EnvLogLevel   = "GENIUS_LOG_LEVEL"
	EnvDebug      = "GENIUS_DEBUG"
)

// DefaultEnvFile is loaded when present, a missing file is not an error
const DefaultEnvFile = ".env"

// Config holds runtime settings for the game binary
type Config struct {
	Difficulty   game.Level
	AudioEnabled bool
	MasterVolume float64
	Seed         int64 // 0 seeds from the clock
	HTTPAddr     string
	LogLevel     zerolog.Level
	Debug        bool
	EnvFile      string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Difficulty:   game.LevelEasy,
		AudioEnabled: true,
		MasterVolume: constants.DefaultMasterVolume,
		LogLevel:     zerolog.InfoLevel,
		EnvFile:      DefaultEnvFile,
	}
}

// Loader resolves configuration from an env file, the environment and flags, in that order of precedence (lowest first)
type Loader struct {
	// Lookup reads an environment variable, os.LookupEnv by default
	Lookup func(key string) (string, bool)
	// Output receives flag usage and errors, io.Discard when nil
	Output io.Writer
}

// Load resolves configuration for the process from os.Args
func Load() (Config, error) {
	l := Loader{Lookup: os.LookupEnv, Output: os.Stderr}
	return l.Load(os.Args[1:])
}

// Load resolves configuration from args
func (l Loader) Load(args []string) (Config, error) {
	cfg := Default()

	// The env file location itself can only come from flags
	envFile := envFileFromArgs(args, cfg.EnvFile)
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
		if vars != nil {
			fileVars = vars
		}
	}
	cfg.EnvFile = envFile

	lookup := l.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	// Process environment wins over the file, matching godotenv.Load semantics
	merged := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}
	if err := cfg.applyEnv(merged); err != nil {
		return cfg, err
	}
	if err := cfg.applyFlags(args, l.Output); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges
func (c Config) Validate() error {
	if !c.Difficulty.Valid() {
		return fmt.Errorf("difficulty %d: %w", c.Difficulty, game.ErrUnknownDifficulty)
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		return fmt.Errorf("master volume %.2f: %w", c.MasterVolume, ErrOutOfRange)
	}
	return nil
}

// ErrOutOfRange is returned for numeric settings outside their bounds
var ErrOutOfRange = errors.New("value out of range")

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDifficulty); ok && v != "" {
		lv, err := game.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDifficulty, err)
		}
		c.Difficulty = lv
	}
	if v, ok := lookup(EnvAudio); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudio, err)
		}
		c.AudioEnabled = b
	}
	if v, ok := lookup(EnvVolume); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVolume, err)
		}
		c.MasterVolume = f
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvHTTPAddr); ok {
		c.HTTPAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		c.LogLevel = lvl
	}
	if v, ok := lookup(EnvDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	return nil
}

func (c *Config) applyFlags(args []string, out io.Writer) error {
	flags := newFlagSet(out)
	difficulty := flags.String("difficulty", c.Difficulty.String(), "difficulty: easy, medium, hard")
	audio := flags.Bool("audio", c.AudioEnabled, "enable sound")
	volume := flags.Float64("volume", c.MasterVolume, "master volume 0.0-1.0")
	seed := flags.Int64("seed", c.Seed, "random seed, 0 seeds from the clock")
	httpAddr := flags.String("http", c.HTTPAddr, "HTTP control address, empty disables")
	logLevel := flags.String("log-level", c.LogLevel.String(), "log level: trace, debug, info, warn, error")
	debug := flags.Bool("debug", c.Debug, "write logs to "+constants.LogDir+"/"+constants.LogFileName)
	flags.String("env", c.EnvFile, "env file to load, empty disables")

	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	lv, err := game.ParseLevel(*difficulty)
	if err != nil {
		return fmt.Errorf("-difficulty: %w", err)
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(*logLevel))
	if err != nil {
		return fmt.Errorf("-log-level: %w", err)
	}

	c.Difficulty = lv
	c.AudioEnabled = *audio
	c.MasterVolume = *volume
	c.Seed = *seed
	c.HTTPAddr = strings.TrimSpace(*httpAddr)
	c.LogLevel = lvl
	c.Debug = *debug
	return nil
}

// envFileFromArgs pre-scans args for -env so the file loads before flags are applied
func envFileFromArgs(args []string, def string) string {
	flags := newFlagSet(io.Discard)
	env := flags.String("env", def, "")
	// Other flags are declared loosely so parsing reaches -env wherever it sits
	flags.String("difficulty", "", "")
	flags.Bool("audio", true, "")
	flags.String("volume", "", "")
	flags.String("seed", "", "")
	flags.String("http", "", "")
	flags.String("log-level", "", "")
	flags.Bool("debug", false, "")
	_ = flags.Parse(args)
	return *env
}

func newFlagSet(out io.Writer) *flag.FlagSet {
	if out == nil {
		out = io.Discard
	}
	flags := flag.NewFlagSet("genius", flag.ContinueOnError)
	flags.SetOutput(out)
	return flags
}
