package types

import "encoding/json"

// ------------------------------
// Response Types
// ------------------------------

// TokenResponse is returned by POST /token.
type TokenResponse struct {
	Token  string `json:"token"`
	APIKey string `json:"api_key,omitempty"`
}

// ValidateResponse is returned by GET /validate/{address}.
type ValidateResponse struct {
	Address          string `json:"address"`
	IsValid          bool   `json:"isValid"`
	HasValidChecksum bool   `json:"hasValidChecksum,omitempty"`
	ChecksumAddress  string `json:"checksumAddress,omitempty"`
	Error            string `json:"error,omitempty"`
}

// ResolveResponse is returned by GET /resolveEns/{name}.
type ResolveResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Error   string `json:"error,omitempty"`
}

// ContractResponse is returned by GET /isContract/{address}.
//
// isContract is the canonical field. Older backends answer with is_contract;
// decoding accepts either and IsContract is true when either one is true.
// Encoding always uses isContract.
type ContractResponse struct {
	Address    string `json:"address"`
	IsContract bool   `json:"isContract"`
	Error      string `json:"error,omitempty"`
}

// UnmarshalJSON normalizes the legacy is_contract field into IsContract.
func (r *ContractResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		Address    string `json:"address"`
		IsContract *bool  `json:"isContract"`
		Legacy     *bool  `json:"is_contract"`
		Error      string `json:"error"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Address = wire.Address
	r.Error = wire.Error
	r.IsContract = (wire.IsContract != nil && *wire.IsContract) || (wire.Legacy != nil && *wire.Legacy)
	return nil
}
