package mockapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/blockcheck/blockcheck/internal/ethaddr"
)

type tokenResponse struct {
	APIKey string `json:"api_key"`
	Token  string `json:"token"`
}

type validateResponse struct {
	Address          string `json:"address"`
	IsValid          bool   `json:"isValid"`
	HasValidChecksum bool   `json:"hasValidChecksum"`
	ChecksumAddress  string `json:"checksumAddress,omitempty"`
}

type resolveResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type contractResponse struct {
	Address    string `json:"address"`
	IsContract bool   `json:"isContract"`
}

type legacyContractResponse struct {
	Address    string `json:"address"`
	IsContract bool   `json:"is_contract"`
}

// pathVar returns the decoded route variable key. The router matches on the
// escaped path, so the raw value may still contain percent escapes.
func pathVar(r *http.Request, key string) string {
	raw := mux.Vars(r)[key]
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	token, apiKey := s.newToken()
	writeJSON(w, http.StatusOK, tokenResponse{APIKey: apiKey, Token: token})
}

// handleValidate reports an address as valid only when it is in EIP-55 form.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	address := pathVar(r, "address")
	resp := validateResponse{
		Address:          address,
		IsValid:          ethaddr.IsChecksummed(address),
		HasValidChecksum: ethaddr.IsChecksummed(address),
	}
	if sum, err := ethaddr.ToChecksum(address); err == nil {
		resp.ChecksumAddress = sum
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	name := pathVar(r, "name")
	s.mu.Lock()
	addr, ok := s.ens[strings.ToLower(name)]
	s.mu.Unlock()
	if !ok {
		writeText(w, http.StatusNotFound, MsgENSNotFound)
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{Name: name, Address: addr})
}

func (s *Server) handleIsContract(w http.ResponseWriter, r *http.Request) {
	address := pathVar(r, "address")
	if !ethaddr.IsHexAddress(address) {
		writeText(w, http.StatusBadRequest, MsgInvalidAddress)
		return
	}
	s.mu.Lock()
	isContract := s.contracts[strings.ToLower(address)]
	legacy := s.legacyContractField
	s.mu.Unlock()

	if legacy {
		writeJSON(w, http.StatusOK, legacyContractResponse{Address: address, IsContract: isContract})
		return
	}
	writeJSON(w, http.StatusOK, contractResponse{Address: address, IsContract: isContract})
}
