package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/blockcheck/blockcheck/client"
	"github.com/blockcheck/blockcheck/internal/display"
	"github.com/blockcheck/blockcheck/internal/ethaddr"
)

func newTokenCmd(st *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Request a new API token",
		Long: "Request a new API token. The token is printed on stdout and the status on stderr, so\n" +
			"  export BLOCKCHECK_TOKEN=$(blockcheck token)\n" +
			"makes later commands reuse it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := st.newClient()
			if err != nil {
				return err
			}

			start := time.Now()
			tr, err := c.GenerateToken(cmd.Context())
			elapsed := time.Since(start)
			if err != nil {
				log.Debug().Err(err).Dur("elapsed", elapsed).Msg("token request failed")
				return emit(cmd, display.Token(nil, err))
			}
			log.Debug().Dur("elapsed", elapsed).Msg("token request completed")

			fmt.Fprintln(cmd.ErrOrStderr(), display.Token(tr, nil).Message)
			fmt.Fprintln(cmd.OutOrStdout(), tr.Token)
			return nil
		},
	}
}

// addressCmd builds a command taking one optional positional value that is
// sent to the backend after an optional token bootstrap.
func addressCmd(st *cli, use, short string, run func(ctx context.Context, c *client.Client, input string) display.Outcome) *cobra.Command {
	var autoToken bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			c, err := st.newClient()
			if err != nil {
				return err
			}
			if autoToken && !c.Session().HasToken() {
				if _, err := c.GenerateToken(cmd.Context()); err != nil {
					return emit(cmd, display.Token(nil, err))
				}
				log.Debug().Msg("token acquired")
			}
			return emit(cmd, run(cmd.Context(), c, input))
		},
	}
	cmd.Flags().BoolVar(&autoToken, "auto-token", false, "Request a token first when none is configured")
	return cmd
}

func newValidateCmd(st *cli) *cobra.Command {
	return addressCmd(st, "validate [address]", "Check whether an Ethereum address is valid",
		func(ctx context.Context, c *client.Client, input string) display.Outcome {
			addr := strings.TrimSpace(input)
			r, err := c.ValidateAddress(ctx, addr)
			return display.Validation(addr, r, err)
		})
}

func newResolveENSCmd(st *cli) *cobra.Command {
	return addressCmd(st, "resolve-ens [name]", "Resolve an ENS name to an address",
		func(ctx context.Context, c *client.Client, input string) display.Outcome {
			r, err := c.ResolveENS(ctx, input)
			return display.Resolution(r, err)
		})
}

func newIsContractCmd(st *cli) *cobra.Command {
	return addressCmd(st, "is-contract [address]", "Check whether an address holds contract code",
		func(ctx context.Context, c *client.Client, input string) display.Outcome {
			addr := strings.TrimSpace(input)
			r, err := c.IsContract(ctx, addr)
			return display.Contract(addr, r, err)
		})
}

func newHealthCmd(st *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := st.newClient()
			if err != nil {
				return err
			}
			if err := c.Health(cmd.Context()); err != nil {
				return emit(cmd, display.Failure(err, ""))
			}
			return emit(cmd, display.Outcome{Message: "OK"})
		},
	}
}

func newChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <address>",
		Short: "Print the EIP-55 checksummed form of an address (offline)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := ethaddr.ToChecksum(strings.TrimSpace(args[0]))
			if err != nil {
				return emit(cmd, display.Failure(err, ""))
			}
			return emit(cmd, display.Outcome{Message: sum})
		},
	}
}
