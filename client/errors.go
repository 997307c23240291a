package client

import (
	"errors"

	clienterrors "github.com/blockcheck/blockcheck/client/internal/errors"
	"github.com/blockcheck/blockcheck/client/internal/types"
)

// APIError is the error returned for transport failures, non-2xx responses
// and malformed response bodies. Error() is the text to show the user: the
// raw response body for a non-2xx status, or "HTTP error! status: <code>"
// when that body is empty.
type APIError = clienterrors.ClassifiedError

// ErrorKind identifies which stage of a request failed.
type ErrorKind = clienterrors.Kind

const (
	KindTransport = clienterrors.KindTransport
	KindStatus    = clienterrors.KindStatus
	KindDecode    = clienterrors.KindDecode
)

// ErrEmptyInput is returned when an address or name is blank after trimming.
// No request is made in that case.
var ErrEmptyInput = types.ErrEmptyInput

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// IsStatus reports whether err is a non-2xx response with the given status code.
func IsStatus(err error, code int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == KindStatus && ae.StatusCode == code
}

// IsKind reports whether err is an APIError of kind k.
func IsKind(err error, k ErrorKind) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Kind == k
}
