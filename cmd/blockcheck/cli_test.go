package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockcheck/blockcheck/client"
	"github.com/blockcheck/blockcheck/internal/display"
	"github.com/blockcheck/blockcheck/internal/mockapi"
)

const addr = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func backend(t *testing.T, opts ...mockapi.Option) (*mockapi.Server, string) {
	t.Helper()
	m := mockapi.New(opts...)
	srv := httptest.NewServer(m)
	t.Cleanup(srv.Close)
	return m, srv.URL
}

// run executes the root command and returns stdout, stderr and the error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	unsetEnv(t, "BLOCKCHECK_TOKEN")
	unsetEnv(t, "BLOCKCHECK_DEBUG")
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func issuedToken(t *testing.T, url string) string {
	t.Helper()
	c, err := client.New(url)
	require.NoError(t, err)
	tr, err := c.GenerateToken(context.Background())
	require.NoError(t, err)
	return tr.Token
}

func TestTokenCmd(t *testing.T) {
	m, url := backend(t)
	out, errOut, err := run(t, "", "--api-url", url, "token")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "bc_"), out)
	assert.Contains(t, errOut, display.MsgTokenGenerated)
	assert.Equal(t, 1, m.IssuedTokens())
}

func TestTokenCmd_BackendDown(t *testing.T) {
	m, url := backend(t)
	m.FailNext("/v1/token", 1)
	_, errOut, err := run(t, "", "--api-url", url, "token")
	assert.ErrorIs(t, err, errFlagged)
	assert.Contains(t, errOut, "HTTP error! status: 503")
}

func TestValidateCmd_RequiresToken(t *testing.T) {
	_, url := backend(t)
	_, errOut, err := run(t, "", "--api-url", url, "validate", addr)
	assert.ErrorIs(t, err, errFlagged)
	assert.Contains(t, errOut, mockapi.MsgUnauthorized)
}

func TestValidateCmd_AutoToken(t *testing.T) {
	_, url := backend(t)
	out, _, err := run(t, "", "--api-url", url, "validate", "--auto-token", "  "+addr+" ")
	require.NoError(t, err)
	assert.Equal(t, "Address "+addr+" is valid\n", out)

	_, errOut, err := run(t, "", "--api-url", url, "validate", "--auto-token", strings.ToLower(addr))
	assert.ErrorIs(t, err, errFlagged)
	assert.Contains(t, errOut, "Address "+strings.ToLower(addr)+" is invalid")
}

func TestValidateCmd_MissingArgument(t *testing.T) {
	m, url := backend(t)
	_, errOut, err := run(t, "", "--api-url", url, "validate")
	assert.ErrorIs(t, err, errFlagged)
	assert.Contains(t, errOut, display.MsgEnterAddress)
	assert.Empty(t, m.Requests())
}

func TestResolveENSCmd_WithToken(t *testing.T) {
	_, url := backend(t, mockapi.WithENS("vitalik.eth", addr))
	tok := issuedToken(t, url)

	out, _, err := run(t, "", "--api-url", url, "--token", tok, "resolve-ens", "vitalik.eth")
	require.NoError(t, err)
	assert.Equal(t, "Resolved address: "+addr+"\n", out)

	_, errOut, err := run(t, "", "--api-url", url, "--token", tok, "resolve-ens", "nobody.eth")
	assert.ErrorIs(t, err, errFlagged)
	assert.Contains(t, errOut, mockapi.MsgENSNotFound)
}

func TestResolveENSCmd_TokenFromEnv(t *testing.T) {
	_, url := backend(t, mockapi.WithENS("a.eth", addr))
	tok := issuedToken(t, url)
	t.Setenv("BLOCKCHECK_API_URL", url)

	root := NewRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"resolve-ens", "a.eth"})
	t.Setenv("BLOCKCHECK_TOKEN", tok)
	require.NoError(t, root.Execute())
	assert.Equal(t, "Resolved address: "+addr+"\n", stdout.String())
}

func TestIsContractCmd(t *testing.T) {
	_, url := backend(t, mockapi.WithContract(addr), mockapi.WithLegacyContractField())
	out, _, err := run(t, "", "--api-url", url, "is-contract", "--auto-token", addr)
	require.NoError(t, err)
	assert.Equal(t, "Address "+addr+" is a contract\n", out)

	other := "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	out, _, err = run(t, "", "--api-url", url, "is-contract", "--auto-token", other)
	require.NoError(t, err)
	assert.Equal(t, "Address "+other+" is not a contract\n", out)
}

func TestHealthCmd(t *testing.T) {
	_, url := backend(t)
	out, _, err := run(t, "", "--api-url", url, "health")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)
}

func TestChecksumCmd(t *testing.T) {
	out, _, err := run(t, "", "checksum", strings.ToLower(addr))
	require.NoError(t, err)
	assert.Equal(t, addr+"\n", out)

	_, _, err = run(t, "", "checksum", "0x123")
	assert.ErrorIs(t, err, errFlagged)
}

func TestRetriesFlag(t *testing.T) {
	m, url := backend(t)
	m.FailNext("/v1/token", 1)
	out, _, err := run(t, "", "--api-url", url, "--retries", "3", "token")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestInvalidAPIURL(t *testing.T) {
	_, _, err := run(t, "", "--api-url", "not a url", "health")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errFlagged)
}

func TestFlagsOverrideInvalidEnv(t *testing.T) {
	_, url := backend(t)
	t.Setenv("BLOCKCHECK_API_URL", "localhost:8080")
	t.Setenv("BLOCKCHECK_RETRY_ATTEMPTS", "0")

	out, _, err := run(t, "", "--api-url", url, "--retries", "2", "health")
	require.NoError(t, err)
	assert.Equal(t, "OK\n", out)

	_, _, err = run(t, "", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API_URL")
}

func TestEmptyDebugVariable(t *testing.T) {
	_, url := backend(t)
	t.Setenv("BLOCKCHECK_DEBUG", "")
	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"--api-url", url, "health"})
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	require.NoError(t, root.Execute())
	assert.Equal(t, "OK\n", stdout.String())
}

func TestShell_GatesUntilToken(t *testing.T) {
	_, url := backend(t, mockapi.WithENS("a.eth", addr), mockapi.WithContract(addr))
	script := strings.Join([]string{
		"validate " + addr,
		"token",
		"validate " + addr,
		"ens a.eth",
		"contract " + addr,
		"validate",
		"bogus",
		"quit",
		"ens never-reached.eth",
	}, "\n")

	out, _, err := run(t, script, "--api-url", url, "shell")
	require.NoError(t, err)

	lines := []string{}
	for _, l := range strings.Split(out, "\n") {
		l = strings.TrimSpace(strings.TrimPrefix(l, "> "))
		if l != "" && l != ">" {
			lines = append(lines, l)
		}
	}
	assert.Equal(t, []string{
		"error: " + display.MsgNeedToken,
		display.MsgTokenGenerated,
		"Address " + addr + " is valid",
		"Resolved address: " + addr,
		"Address " + addr + " is a contract",
		"error: " + display.MsgEnterAddress,
		`error: unknown command "bogus", try help`,
	}, lines)
}
