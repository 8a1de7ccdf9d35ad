// Package auth computes and verifies the signatures iyzico expects in the
// Authorization header.
//
// Two schemes exist. IYZWS (V1) is a SHA-1 digest over the canonical
// request string. IYZWSv2 (V2) is an HMAC-SHA256 over the request path and
// JSON body, used by the /v2 endpoints.
package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	AuthorizationHeader = "Authorization"
	RandomHeader        = "x-iyzi-rnd"
	ClientVersionHeader = "x-iyzi-client-version"

	SchemeV1 = "IYZWS"
	SchemeV2 = "IYZWSv2"

	v2Marker = "/v2"
)

var (
	ErrInvalidURI = errors.New("uri does not contain /v2")
	ErrInvalidKey = errors.New("secret key is empty")
	ErrEncoding   = errors.New("input is not valid UTF-8")
)

// SigningError records which signing step failed.
type SigningError struct {
	Op  string
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// Credentials identify a merchant. They are passed by value to every signing
// call and never stored by this package.
type Credentials struct {
	APIKey    string
	SecretKey string
}

// SignV1 returns base64(SHA1(apiKey + nonce + secretKey + body)).
func SignV1(apiKey, secretKey, nonce, body string) string {
	h := sha1.New()
	h.Write([]byte(apiKey))
	h.Write([]byte(nonce))
	h.Write([]byte(secretKey))
	h.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// AuthorizationV1 formats the IYZWS header value.
func AuthorizationV1(apiKey, signature string) string {
	return SchemeV1 + " " + apiKey + ":" + signature
}

// ExtractPath returns the part of uri that starts at the first "/v2" and
// ends before the first "?" that follows it.
func ExtractPath(uri string) (string, error) {
	start := strings.Index(uri, v2Marker)
	if start < 0 {
		return "", &SigningError{Op: "extract path", Err: ErrInvalidURI}
	}
	path := uri[start:]
	if end := strings.IndexByte(path, '?'); end >= 0 {
		path = path[:end]
	}
	return path, nil
}

// SignatureV2 returns the lowercase hex HMAC-SHA256 of nonce + path + body
// keyed by secretKey.
func SignatureV2(uri, secretKey, nonce, body string) (string, error) {
	if secretKey == "" {
		return "", &SigningError{Op: "sign v2", Err: ErrInvalidKey}
	}
	for _, s := range []string{uri, secretKey, nonce, body} {
		if !utf8.ValidString(s) {
			return "", &SigningError{Op: "sign v2", Err: ErrEncoding}
		}
	}

	path, err := ExtractPath(uri)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(nonce))
	mac.Write([]byte(path))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// SignV2 returns base64("apiKey:{apiKey}&randomKey:{nonce}&signature:{hex}").
func SignV2(uri, apiKey, secretKey, nonce, body string) (string, error) {
	if !utf8.ValidString(apiKey) {
		return "", &SigningError{Op: "sign v2", Err: ErrEncoding}
	}
	signature, err := SignatureV2(uri, secretKey, nonce, body)
	if err != nil {
		return "", err
	}
	content := "apiKey:" + apiKey + "&randomKey:" + nonce + "&signature:" + signature
	return base64.StdEncoding.EncodeToString([]byte(content)), nil
}

// AuthorizationV2 formats the IYZWSv2 header value.
func AuthorizationV2(token string) string {
	return SchemeV2 + " " + token
}
