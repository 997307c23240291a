package api

import (
	"context"
	"net/http"

	clienterrors "github.com/blockcheck/blockcheck/client/internal/errors"
	"github.com/blockcheck/blockcheck/client/internal/types"
)

// GenerateToken requests a new session token and stores it in sess.
// The session is left untouched when the call fails.
func GenerateToken(ctx context.Context, conn Conn, sess types.Session) (*types.TokenResponse, error) {
	var tr types.TokenResponse
	err := Do(ctx, conn, sess, Request{
		Operation: "token",
		Method:    http.MethodPost,
		Path:      "/token",
		Payload:   types.TokenRequest{},
	}, &tr)
	if err != nil {
		return nil, err
	}
	if tr.Token == "" {
		return nil, &clienterrors.ClassifiedError{
			Kind:      clienterrors.KindDecode,
			Category:  clienterrors.Irrecoverable,
			Operation: "token",
			Message:   "token response did not include a token",
		}
	}
	sess.SetToken(tr.Token)
	return &tr, nil
}
