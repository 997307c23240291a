package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/blockcheck/blockcheck/client"
	"github.com/blockcheck/blockcheck/internal/config"
	"github.com/blockcheck/blockcheck/internal/display"
)

// errFlagged is returned when a command rendered an error outcome; the
// message has already been printed.
var errFlagged = errors.New("error outcome")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFlagged) {
			log.Error().Err(err).Msg("command failed")
		}
		os.Exit(1)
	}
}

// cli carries flag values and the loaded configuration for one invocation.
type cli struct {
	cfg *config.Config

	apiURL    string
	token     string
	debug     bool
	timeout   time.Duration
	retries   int
	rateLimit float64
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	st := &cli{}

	rootCmd := &cobra.Command{
		Use:           "blockcheck",
		Short:         "Ethereum utilities: tokens, address validation, ENS resolution, contract detection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			st.applyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			st.cfg = cfg
			initLogger(cmd.ErrOrStderr(), cfg.Level())
			log.Debug().Str("api_url", cfg.APIURL).Bool("token_preset", cfg.Token != "").Msg("configuration loaded")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&st.apiURL, "api-url", "", "Backend base URL (env BLOCKCHECK_API_URL)")
	rootCmd.PersistentFlags().StringVar(&st.token, "token", "", "Previously issued token (env BLOCKCHECK_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&st.debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().DurationVar(&st.timeout, "timeout", 0, "Per-request HTTP timeout, 0 for none")
	rootCmd.PersistentFlags().IntVar(&st.retries, "retries", 1, "Total attempts for recoverable failures")
	rootCmd.PersistentFlags().Float64Var(&st.rateLimit, "rate-limit", 0, "Max requests per second, 0 for unlimited")

	rootCmd.AddCommand(newTokenCmd(st))
	rootCmd.AddCommand(newValidateCmd(st))
	rootCmd.AddCommand(newResolveENSCmd(st))
	rootCmd.AddCommand(newIsContractCmd(st))
	rootCmd.AddCommand(newHealthCmd(st))
	rootCmd.AddCommand(newChecksumCmd())
	rootCmd.AddCommand(newShellCmd(st))
	rootCmd.AddCommand(newMockServerCmd())

	return rootCmd
}

// applyFlags overrides environment values with flags the user set explicitly.
func (st *cli) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("api-url") {
		cfg.APIURL = st.apiURL
	}
	if f.Changed("token") {
		cfg.Token = st.token
	}
	if f.Changed("debug") {
		cfg.Debug = st.debug
	}
	if f.Changed("timeout") {
		cfg.HTTPTimeout = st.timeout
	}
	if f.Changed("retries") {
		cfg.RetryAttempts = st.retries
	}
	if f.Changed("rate-limit") {
		cfg.RateLimit = st.rateLimit
	}
}

func (st *cli) newClient() (*client.Client, error) {
	return st.cfg.NewClient()
}

func initLogger(w io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
	zerolog.SetGlobalLevel(level)
}

// emit prints an outcome: successes to stdout, errors to stderr with
// errFlagged returned so the process exits non-zero.
func emit(cmd *cobra.Command, o display.Outcome) error {
	if o.IsError {
		fmt.Fprintln(cmd.ErrOrStderr(), o.Message)
		return errFlagged
	}
	fmt.Fprintln(cmd.OutOrStdout(), o.Message)
	return nil
}
