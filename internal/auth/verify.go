package auth

import (
	"crypto/hmac"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrMalformedHeader   = errors.New("malformed authorization header")
	ErrUnknownAPIKey     = errors.New("unknown api key")
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// KeyStore resolves the secret key belonging to an API key.
type KeyStore interface {
	SecretKey(apiKey string) (string, bool)
}

// StaticKeys is a KeyStore backed by a map of API key to secret key.
type StaticKeys map[string]string

func (s StaticKeys) SecretKey(apiKey string) (string, bool) {
	secret, ok := s[apiKey]
	return secret, ok
}

// ParseAuthorization splits an Authorization header value into its scheme
// and credentials part.
func ParseAuthorization(header string) (scheme, credentials string, err error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", ErrMalformedHeader
	}
	if parts[0] != SchemeV1 && parts[0] != SchemeV2 {
		return "", "", ErrMalformedHeader
	}
	return parts[0], parts[1], nil
}

// VerifyV1 checks an IYZWS header against the canonical body and the nonce
// taken from x-iyzi-rnd. It returns the caller's API key.
func VerifyV1(keys KeyStore, header, nonce, canonicalBody string) (string, error) {
	scheme, credentials, err := ParseAuthorization(header)
	if err != nil {
		return "", err
	}
	if scheme != SchemeV1 || nonce == "" {
		return "", ErrMalformedHeader
	}

	apiKey, signature, ok := strings.Cut(credentials, ":")
	if !ok || apiKey == "" {
		return "", ErrMalformedHeader
	}

	secret, ok := keys.SecretKey(apiKey)
	if !ok {
		return "", ErrUnknownAPIKey
	}

	expected := SignV1(apiKey, secret, nonce, canonicalBody)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apiKey, ErrSignatureMismatch
	}
	return apiKey, nil
}

// VerifyV2 checks an IYZWSv2 header against the request URI and raw body.
// It returns the caller's API key.
func VerifyV2(keys KeyStore, header, uri, body string) (string, error) {
	scheme, credentials, err := ParseAuthorization(header)
	if err != nil {
		return "", err
	}
	if scheme != SchemeV2 {
		return "", ErrMalformedHeader
	}

	decoded, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil {
		return "", ErrMalformedHeader
	}

	apiKey, nonce, signature, err := parseV2Content(string(decoded))
	if err != nil {
		return "", err
	}

	secret, ok := keys.SecretKey(apiKey)
	if !ok {
		return "", ErrUnknownAPIKey
	}

	expected, err := SignatureV2(uri, secret, nonce, body)
	if err != nil {
		return apiKey, err
	}
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apiKey, ErrSignatureMismatch
	}
	return apiKey, nil
}

// parseV2Content splits "apiKey:{k}&randomKey:{n}&signature:{s}".
func parseV2Content(content string) (apiKey, nonce, signature string, err error) {
	rest, ok := strings.CutPrefix(content, "apiKey:")
	if !ok {
		return "", "", "", ErrMalformedHeader
	}
	apiKey, rest, ok = strings.Cut(rest, "&randomKey:")
	if !ok {
		return "", "", "", ErrMalformedHeader
	}
	nonce, signature, ok = strings.Cut(rest, "&signature:")
	if !ok || apiKey == "" || nonce == "" || signature == "" {
		return "", "", "", ErrMalformedHeader
	}
	return apiKey, nonce, signature, nil
}
