package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/randomtemp/randomtemp/internal/resolve"
)

const (
	// EnvPrefix namespaces every variable randomtemp reads.
	EnvPrefix = "RANDOMTEMP"

	// DefaultMaxTrials is used when no valid trial count is configured.
	DefaultMaxTrials = 3
	// DefaultLogLevel keeps the wrapper quiet apart from retry notices.
	DefaultLogLevel = log.WarnLevel
)

var (
	// ErrInvalidMaxTrials indicates a trial count that was not a positive integer.
	ErrInvalidMaxTrials = errors.New("RANDOMTEMP_MAXTRIAL must be a positive integer")
	// ErrInvalidLogLevel indicates an unrecognized log level name.
	ErrInvalidLogLevel = errors.New("RANDOMTEMP_LOG_LEVEL must be debug, info, warn, or error")
	// ErrMissingBaseDir indicates no base directory could be determined.
	ErrMissingBaseDir = errors.New("base directory must be set")
)

// File is the optional TOML file named by RANDOMTEMP_CONFIG. Every field is a
// default that the matching environment variable overrides.
type File struct {
	Executable string `toml:"executable"`
	BaseDir    string `toml:"basedir"`
	MaxTrial   int    `toml:"maxtrial"`
	LogLevel   string `toml:"log_level"`
}

// Config is read once at startup and never modified afterwards.
type Config struct {
	Executable string
	Args       []string
	BaseDir    string
	MaxTrials  int
	LogLevel   log.Level

	problems []error
}

// Sources are the process-level inputs besides the environment.
type Sources struct {
	Args  []string
	Self  string
	Getwd func() (string, error)
}

// Target is the program and arguments to launch on every attempt.
func (c Config) Target() resolve.Target {
	return resolve.Target{Executable: c.Executable, Args: c.Args}
}

// Problems lists settings that were ignored in favour of a default.
func (c Config) Problems() []error {
	return c.problems
}

// Validate ensures the configuration can drive the retry loop.
func (c Config) Validate() error {
	if c.MaxTrials < 1 {
		return ErrInvalidMaxTrials
	}
	if c.BaseDir == "" {
		return ErrMissingBaseDir
	}
	return nil
}

// Load reads a config file. A missing file yields an empty File.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, err
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// FromEnv builds the Config from RANDOMTEMP_* variables layered over the
// optional config file. Empty variables count as unset.
func FromEnv(src Sources) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	var file File
	if path := v.GetString("config"); path != "" {
		var err error
		if file, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	v.SetDefault("executable", file.Executable)
	v.SetDefault("basedir", file.BaseDir)
	if file.MaxTrial != 0 {
		v.SetDefault("maxtrial", strconv.Itoa(file.MaxTrial))
	}
	v.SetDefault("log_level", file.LogLevel)

	var cfg Config
	target := resolve.Resolve(resolve.Inputs{
		Override: v.GetString("executable"),
		Args:     src.Args,
		Self:     src.Self,
	})
	cfg.Executable = target.Executable
	cfg.Args = target.Args

	baseDir, err := resolveBaseDir(v.GetString("basedir"), src.Getwd)
	if err != nil {
		return Config{}, err
	}
	cfg.BaseDir = baseDir

	trials, err := parseMaxTrials(v.GetString("maxtrial"))
	if err != nil {
		cfg.problems = append(cfg.problems, err)
	}
	cfg.MaxTrials = trials

	level, err := parseLogLevel(v.GetString("log_level"))
	if err != nil {
		cfg.problems = append(cfg.problems, err)
	}
	cfg.LogLevel = level

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolveBaseDir(raw string, getwd func() (string, error)) (string, error) {
	if raw == "" {
		if getwd == nil {
			getwd = os.Getwd
		}
		wd, err := getwd()
		if err != nil {
			return "", fmt.Errorf("determine base directory: %w", err)
		}
		raw = wd
	}
	// Children may chdir, so hand them an absolute path.
	return filepath.Abs(raw)
}

func parseMaxTrials(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultMaxTrials, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultMaxTrials, fmt.Errorf("%w (got %q, using %d)", ErrInvalidMaxTrials, raw, DefaultMaxTrials)
	}
	return n, nil
}

func parseLogLevel(raw string) (log.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLogLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return DefaultLogLevel, fmt.Errorf("%w (got %q)", ErrInvalidLogLevel, raw)
	}
	return level, nil
}
