package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/blockcheck/blockcheck/internal/mockapi"
)

func newMockServerCmd() *cobra.Command {
	var (
		addr     string
		ens      []string
		contract []string
		legacy   bool
		noAuth   bool
	)

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory backend for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []mockapi.Option
			for _, kv := range ens {
				name, address, ok := strings.Cut(kv, "=")
				if !ok || name == "" || address == "" {
					return fmt.Errorf("invalid --ens value %q, want name=address", kv)
				}
				opts = append(opts, mockapi.WithENS(name, address))
			}
			for _, a := range contract {
				opts = append(opts, mockapi.WithContract(a))
			}
			if legacy {
				opts = append(opts, mockapi.WithLegacyContractField())
			}
			if noAuth {
				opts = append(opts, mockapi.WithoutAuth())
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           mockapi.New(opts...),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("mock backend listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Info().Msg("shutting down mock backend")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().StringArrayVar(&ens, "ens", nil, "ENS record as name=address (repeatable)")
	cmd.Flags().StringArrayVar(&contract, "contract", nil, "Address that holds contract code (repeatable)")
	cmd.Flags().BoolVar(&legacy, "legacy-contract-field", false, "Answer /isContract with is_contract")
	cmd.Flags().BoolVar(&noAuth, "no-auth", false, "Accept requests without a token")
	return cmd
}
