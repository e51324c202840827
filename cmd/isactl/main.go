// Command isactl drives the ISA portal from a terminal through the same client core the
// app uses.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/utdisa/isa-portal/client"
	"github.com/utdisa/isa-portal/client/httpbackend"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the settings shared by every subcommand.
type app struct {
	apiURL    string
	apiKey    string
	tokenFile string
	verbose   bool
	out       io.Writer
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// backend builds an HTTP backend that resumes the saved session, if any.
func (a *app) backend() (*httpbackend.Client, error) {
	token, err := newTokenStore(a.tokenFile).Load()
	if err != nil {
		return nil, err
	}
	opts := []httpbackend.Option{httpbackend.WithAccessToken(token)}
	if a.apiKey != "" {
		opts = append(opts, httpbackend.WithAPIKey(a.apiKey))
	}
	return httpbackend.New(a.apiURL, opts...)
}

func (a *app) sessionManager(b client.Backend) *client.SessionManager {
	return client.NewSessionManager(b, a.logger())
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	cmd := &cobra.Command{
		Use:           "isactl",
		Short:         "Command line client for the ISA portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVar(&a.apiURL, "api", envOr("ISA_API_URL", defaultAPIURL), "Base URL of the portal backend")
	cmd.PersistentFlags().StringVar(&a.apiKey, "api-key", os.Getenv("ISA_API_KEY"), "Optional key sent in the apikey header")
	cmd.PersistentFlags().StringVar(&a.tokenFile, "token-file", envOr("ISA_TOKEN_FILE", defaultTokenPath()), "Where the session token is kept between runs")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newResetPasswordCommand(a),
		newSubmitCommand(a),
		newFormsCommand(a),
		newHousingCommand(a),
		newEventsCommand(a),
		newTeamCommand(a),
	)
	return cmd
}
