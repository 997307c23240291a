package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checksummedAddr = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func do(t *testing.T, h http.Handler, method, path, token string) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if method == http.MethodPost {
		body = strings.NewReader("{}")
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	res := rec.Result()
	b, _ := io.ReadAll(res.Body)
	return res, string(b)
}

func issue(t *testing.T, s *Server) string {
	t.Helper()
	res, body := do(t, s, http.MethodPost, "/v1/token", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var tr tokenResponse
	require.NoError(t, json.Unmarshal([]byte(body), &tr))
	require.NotEmpty(t, tr.Token)
	return tr.Token
}

func TestToken_IssuesDistinctTokens(t *testing.T) {
	s := New()
	a, b := issue(t, s), issue(t, s)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, s.IssuedTokens())
}

func TestAuth_RequiredOnToolRoutes(t *testing.T) {
	s := New()
	for _, p := range []string{"/v1/validate/" + checksummedAddr, "/v1/resolveEns/a.eth", "/v1/isContract/" + checksummedAddr} {
		res, body := do(t, s, http.MethodGet, p, "")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, p)
		assert.Equal(t, MsgUnauthorized, body, p)

		res, _ = do(t, s, http.MethodGet, p, "forged")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, p)
	}
}

func TestValidate_ChecksumRules(t *testing.T) {
	s := New()
	tok := issue(t, s)

	_, body := do(t, s, http.MethodGet, "/v1/validate/"+checksummedAddr, tok)
	var vr validateResponse
	require.NoError(t, json.Unmarshal([]byte(body), &vr))
	assert.True(t, vr.IsValid)

	_, body = do(t, s, http.MethodGet, "/v1/validate/"+strings.ToLower(checksummedAddr), tok)
	vr = validateResponse{}
	require.NoError(t, json.Unmarshal([]byte(body), &vr))
	assert.False(t, vr.IsValid)
	assert.Equal(t, checksummedAddr, vr.ChecksumAddress)
}

func TestResolve(t *testing.T) {
	s := New(WithENS("vitalik.eth", "0x123"))
	tok := issue(t, s)

	res, body := do(t, s, http.MethodGet, "/v1/resolveEns/Vitalik.eth", tok)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"address":"0x123"`)

	res, body = do(t, s, http.MethodGet, "/v1/resolveEns/nobody.eth", tok)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, MsgENSNotFound, body)
}

func TestResolve_EscapedSegment(t *testing.T) {
	s := New(WithENS("a/b.eth", "0x456"))
	tok := issue(t, s)

	res, body := do(t, s, http.MethodGet, "/v1/resolveEns/"+url.PathEscape("a/b.eth"), tok)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"name":"a/b.eth"`)
	assert.Contains(t, body, `"address":"0x456"`)
}

func TestIsContract_FieldNames(t *testing.T) {
	s := New(WithContract(checksummedAddr))
	tok := issue(t, s)
	_, body := do(t, s, http.MethodGet, "/v1/isContract/"+strings.ToLower(checksummedAddr), tok)
	assert.Contains(t, body, `"isContract":true`)

	legacy := New(WithContract(checksummedAddr), WithLegacyContractField())
	tok = issue(t, legacy)
	_, body = do(t, legacy, http.MethodGet, "/v1/isContract/"+checksummedAddr, tok)
	assert.Contains(t, body, `"is_contract":true`)
}

func TestIsContract_InvalidAddress(t *testing.T) {
	s := New()
	tok := issue(t, s)
	res, body := do(t, s, http.MethodGet, "/v1/isContract/0xABC", tok)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, MsgInvalidAddress, body)
}

func TestWithoutAuth(t *testing.T) {
	s := New(WithoutAuth())
	res, _ := do(t, s, http.MethodGet, "/v1/validate/"+checksummedAddr, "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRecordsRequests(t *testing.T) {
	s := New()
	tok := issue(t, s)
	do(t, s, http.MethodGet, "/v1/validate/"+checksummedAddr, tok)

	reqs := s.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "{}", reqs[0].Body)
	assert.Empty(t, reqs[0].Authorization)
	assert.Equal(t, "Bearer "+tok, reqs[1].Authorization)
	assert.Equal(t, "application/json", reqs[1].ContentType)
}

func TestFailNext(t *testing.T) {
	s := New()
	s.FailNext("/v1/token", 2)
	for i := 0; i < 2; i++ {
		res, body := do(t, s, http.MethodPost, "/v1/token", "")
		assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
		assert.Empty(t, body)
	}
	issue(t, s)
}

func TestHealth(t *testing.T) {
	res, body := do(t, New(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "OK", body)
}

func TestRecoverer(t *testing.T) {
	h := recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	res, body := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Internal Server Error", body)
}
