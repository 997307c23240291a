package client

import (
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"

	"github.com/rs/zerolog/log"
)

// debugTransport dumps every request and response to the debug log.
//
// Enable with WithDebugLogging(true) or BLOCKCHECK_DEBUG=true. Bodies are
// logged in full; the bearer token is redacted. Do not leave it on in
// production.
type debugTransport struct{ base http.RoundTripper }

var authHeaderLine = regexp.MustCompile(`(?mi)^(Authorization:\s*Bearer\s+)\S+`)

func redactDump(dump []byte) string {
	return authHeaderLine.ReplaceAllString(string(dump), "${1}[REDACTED]")
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", redactDump(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested reports whether BLOCKCHECK_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("BLOCKCHECK_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
