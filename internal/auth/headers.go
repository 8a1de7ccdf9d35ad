package auth

import (
	"fmt"
	"net/http"
)

// NonceSource supplies fresh per-request nonces.
type NonceSource interface {
	NonceV1() (string, error)
	NonceV2() (string, error)
}

// Assembler builds the authentication headers attached to outgoing requests.
type Assembler struct {
	nonces        NonceSource
	clientVersion string
}

// NewAssembler creates an assembler. clientVersion is sent verbatim in
// x-iyzi-client-version, e.g. "iyzipay-go-1.0.0".
func NewAssembler(nonces NonceSource, clientVersion string) *Assembler {
	return &Assembler{
		nonces:        nonces,
		clientVersion: clientVersion,
	}
}

// ClientVersion returns the value sent in x-iyzi-client-version.
func (a *Assembler) ClientVersion() string {
	return a.clientVersion
}

// HeadersV1 signs a canonical request string with the IYZWS scheme.
func (a *Assembler) HeadersV1(creds Credentials, canonicalBody string) (http.Header, error) {
	nonce, err := a.nonces.NonceV1()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	h := make(http.Header)
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	h.Set(RandomHeader, nonce)
	h.Set(AuthorizationHeader, AuthorizationV1(creds.APIKey, SignV1(creds.APIKey, creds.SecretKey, nonce, canonicalBody)))
	h.Set(ClientVersionHeader, a.clientVersion)
	return h, nil
}

// HeadersV2 signs a request with the IYZWSv2 scheme. uri must contain the
// /v2 path; body is the exact payload sent, or "" when there is none.
func (a *Assembler) HeadersV2(creds Credentials, uri, body string) (http.Header, error) {
	nonce, err := a.nonces.NonceV2()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	token, err := SignV2(uri, creds.APIKey, creds.SecretKey, nonce, body)
	if err != nil {
		return nil, err
	}

	h := make(http.Header)
	h.Set(AuthorizationHeader, AuthorizationV2(token))
	h.Set(ClientVersionHeader, a.clientVersion)
	return h, nil
}
