// Package config loads CLI settings from the environment and an optional
// .env file, and reads wallet passwords.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Prefix is prepended to every variable name, e.g. ARWEAVE_NODE_URL.
const Prefix = "ARWEAVE"

// Config contains all settings of the arwallet CLI.
type Config struct {
	NodeURL    string        `envconfig:"NODE_URL" default:"https://arweave.net"`
	WalletPath string        `envconfig:"WALLET"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"30s"`
	Retries    int           `envconfig:"RETRIES" default:"3"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	// Password is used instead of prompting when set.
	Password string `envconfig:"PASSWORD"`
}

// Load reads the configuration like Read and validates it.
func Load(envFiles ...string) (*Config, error) {
	cfg, err := Read(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads the given .env files, or ".env" when none are named, and then
// processes the environment. Missing files are skipped. Variables already
// set in the environment win over file values. Only type errors are
// reported; callers that override fields call Validate afterwards.
func Read(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	u, err := url.Parse(c.NodeURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s_NODE_URL %q", Prefix, c.NodeURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid %s_TIMEOUT %v: must be positive", Prefix, c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("invalid %s_RETRIES %d: must not be negative", Prefix, c.Retries)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel (debug, info, warn or error).
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid %s_LOG_LEVEL %q", Prefix, c.LogLevel)
	}
	return level, nil
}

// ReadPassword prompts on out and reads a password from in. Terminal input
// is read without echo; any other reader supplies one line.
// An empty password is an error here even though the wallet vault accepts
// one, so a stray Enter cannot lock a wallet with no password.
func ReadPassword(in io.Reader, out io.Writer, prompt string) ([]byte, error) {
	fmt.Fprint(out, prompt)
	defer fmt.Fprintln(out)

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		if len(raw) == 0 {
			return nil, errors.New("password cannot be empty")
		}
		return raw, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, errors.New("password cannot be empty")
	}
	return []byte(line), nil
}

// PasswordBytes returns the configured password, prompting when it is unset.
func (c *Config) PasswordBytes(in io.Reader, out io.Writer, prompt string) ([]byte, error) {
	if c.Password != "" {
		return []byte(c.Password), nil
	}
	return ReadPassword(in, out, prompt)
}
