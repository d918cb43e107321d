package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	arweave "github.com/nestdotland/arweave-go"
	"github.com/nestdotland/arweave-go/internal/config"
)

// Config holds the I/O streams used by the CLI.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// state is shared by all commands of one invocation.
type state struct {
	io     *Config
	env    *config.Config
	logger *slog.Logger
}

func run(args []string, cfg *Config) error {
	st := &state{io: cfg}

	app := &cli.App{
		Name:      "arwallet",
		Usage:     "manage Arweave wallets and talk to a node",
		Reader:    cfg.Stdin,
		Writer:    cfg.Stdout,
		ErrWriter: cfg.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file with ARWEAVE_* settings",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "wallet",
				Aliases: []string{"w"},
				Usage:   "path to a JWK wallet file (overrides ARWEAVE_WALLET)",
			},
			&cli.StringFlag{
				Name:  "node",
				Usage: "node URL (overrides ARWEAVE_NODE_URL)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides ARWEAVE_LOG_LEVEL)",
			},
		},
		Before:      st.setup,
		Action:      rootAction,
		HideVersion: true,
		Commands:    append(walletCommands(st), nodeCommands(st)...),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return app.RunContext(ctx, args)
}

func rootAction(cctx *cli.Context) error {
	if cctx.Args().Present() {
		return fmt.Errorf("unknown command: %s", cctx.Args().First())
	}
	return cli.ShowAppHelp(cctx)
}

// setup loads the environment and applies global flag overrides.
func (st *state) setup(cctx *cli.Context) error {
	env, err := config.Read(cctx.String("env-file"))
	if err != nil {
		return err
	}
	if v := cctx.String("wallet"); v != "" {
		env.WalletPath = v
	}
	if v := cctx.String("node"); v != "" {
		env.NodeURL = v
	}
	if v := cctx.String("log-level"); v != "" {
		env.LogLevel = v
	}
	if err := env.Validate(); err != nil {
		return err
	}

	level, err := env.SlogLevel()
	if err != nil {
		return err
	}
	st.env = env
	st.logger = slog.New(slog.NewTextHandler(st.io.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (st *state) client() (*arweave.Client, error) {
	client, err := arweave.New(
		arweave.WithBaseURL(st.env.NodeURL),
		arweave.WithTimeout(st.env.Timeout),
		arweave.WithRetries(st.env.Retries),
		arweave.WithLogger(st.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (st *state) wallet() (*arweave.Wallet, error) {
	if st.env.WalletPath == "" {
		return nil, errors.New("no wallet: pass --wallet or set ARWEAVE_WALLET")
	}
	w, err := arweave.LoadWalletFile(st.env.WalletPath)
	if err != nil {
		return nil, fmt.Errorf("load wallet: %w", err)
	}
	st.logger.Debug("wallet loaded", "path", st.env.WalletPath, "address", w.Address())
	return w, nil
}

func (st *state) password(prompt string) (string, error) {
	pw, err := st.env.PasswordBytes(st.io.Stdin, st.io.Stderr, prompt)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// readInput returns the contents of the named file, or stdin for "" and "-".
func (st *state) readInput(name string) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(st.io.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// writeOutput writes data to the named file with owner-only permissions, or
// to stdout when name is empty.
func (st *state) writeOutput(name string, data []byte) error {
	if name == "" {
		_, err := st.io.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(name, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (st *state) printJSON(v any) error {
	enc := json.NewEncoder(st.io.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (st *state) println(s string) {
	fmt.Fprintln(st.io.Stdout, s)
}

func trimInput(data []byte) string {
	return strings.TrimSpace(string(data))
}
