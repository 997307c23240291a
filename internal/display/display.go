// Package display turns operation results into the messages shown to users.
package display

import (
	"errors"
	"fmt"

	"github.com/blockcheck/blockcheck/client"
)

// Outcome is one rendered result: the text to show and whether it is shown
// as an error.
type Outcome struct {
	Message string
	IsError bool
}

const (
	MsgTokenGenerated = "Token generated successfully"
	MsgEnterAddress   = "Please enter an Ethereum address"
	MsgEnterENS       = "Please enter an ENS name"
	MsgNeedToken      = "Generate a token first"
)

// Failure renders err as an error outcome. Blank input gets its own prompt.
func Failure(err error, emptyPrompt string) Outcome {
	if errors.Is(err, client.ErrEmptyInput) && emptyPrompt != "" {
		return Outcome{Message: emptyPrompt, IsError: true}
	}
	return Outcome{Message: err.Error(), IsError: true}
}

// Token renders a token request.
func Token(_ *client.TokenResponse, err error) Outcome {
	if err != nil {
		return Failure(err, "")
	}
	return Outcome{Message: MsgTokenGenerated}
}

// Validation renders an address validation for the trimmed address the user entered.
func Validation(address string, r *client.ValidateResponse, err error) Outcome {
	if err != nil {
		return Failure(err, MsgEnterAddress)
	}
	if r.IsValid {
		return Outcome{Message: fmt.Sprintf("Address %s is valid", address)}
	}
	return Outcome{Message: fmt.Sprintf("Address %s is invalid", address), IsError: true}
}

// Resolution renders an ENS lookup.
func Resolution(r *client.ResolveResponse, err error) Outcome {
	if err != nil {
		return Failure(err, MsgEnterENS)
	}
	return Outcome{Message: fmt.Sprintf("Resolved address: %s", r.Address)}
}

// Contract renders a contract check. Neither answer is an error.
func Contract(address string, r *client.ContractResponse, err error) Outcome {
	if err != nil {
		return Failure(err, MsgEnterAddress)
	}
	if r.IsContract {
		return Outcome{Message: fmt.Sprintf("Address %s is a contract", address)}
	}
	return Outcome{Message: fmt.Sprintf("Address %s is not a contract", address)}
}
