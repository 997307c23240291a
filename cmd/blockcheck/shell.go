package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blockcheck/blockcheck/client"
	"github.com/blockcheck/blockcheck/internal/display"
)

const shellHelp = `commands:
  token               request a new token
  validate <address>  check an Ethereum address
  ens <name>          resolve an ENS name
  contract <address>  check whether an address is a contract
  help                show this text
  quit                leave the shell`

func newShellCmd(st *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session sharing one token across operations",
		Long: "Reads one command per line from stdin. Address, ENS and contract lookups\n" +
			"stay unavailable until a token has been generated or supplied with --token.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := st.newClient()
			if err != nil {
				return err
			}
			return runShell(cmd, c)
		},
	}
}

func runShell(cmd *cobra.Command, c *client.Client) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	ctx := cmd.Context()

	prompt(out)
	for in.Scan() {
		verb, arg, _ := strings.Cut(strings.TrimSpace(in.Text()), " ")
		arg = strings.TrimSpace(arg)

		var o display.Outcome
		switch verb {
		case "":
			prompt(out)
			continue
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, shellHelp)
			prompt(out)
			continue
		case "token":
			tr, err := c.GenerateToken(ctx)
			o = display.Token(tr, err)
		case "validate", "ens", "contract":
			if !c.Session().HasToken() {
				o = display.Outcome{Message: display.MsgNeedToken, IsError: true}
				break
			}
			o = lookup(cmd, c, verb, arg)
		default:
			o = display.Outcome{Message: fmt.Sprintf("unknown command %q, try help", verb), IsError: true}
		}
		render(out, o)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		prompt(out)
	}
	return in.Err()
}

func lookup(cmd *cobra.Command, c *client.Client, verb, arg string) display.Outcome {
	ctx := cmd.Context()
	switch verb {
	case "validate":
		r, err := c.ValidateAddress(ctx, arg)
		return display.Validation(arg, r, err)
	case "ens":
		r, err := c.ResolveENS(ctx, arg)
		return display.Resolution(r, err)
	default:
		r, err := c.IsContract(ctx, arg)
		return display.Contract(arg, r, err)
	}
}

func render(w io.Writer, o display.Outcome) {
	if o.IsError {
		fmt.Fprintln(w, "error: "+o.Message)
		return
	}
	fmt.Fprintln(w, o.Message)
}

func prompt(w io.Writer) { fmt.Fprint(w, "> ") }
