package auth

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	v2DataSignature  = "YXBpS2V5OmFwaUtleSZyYW5kb21LZXk6cmFuZG9tJnNpZ25hdHVyZTo0YWZhMjhjYjE3NTkwNThlYWEzNjNhZGVkNjAzM2NhNTg0N2NmNDYxODNhZDdiYTI5ZDEwZjE3ZWNiMGJmY2M4"
	v2EmptySignature = "YXBpS2V5OmFwaUtleSZyYW5kb21LZXk6cmFuZG9tJnNpZ25hdHVyZTpjOWU1OTI2NjE4ODNlY2NkYjEzYmEwOGFhYTdhNTJiMDhmZTFkNDhkZTU2OGZmNDgxZDZmOGM3ZWFkMjkzN2Uy"
)

type fixedNonces struct {
	v1, v2 string
	err    error
}

func (f fixedNonces) NonceV1() (string, error) { return f.v1, f.err }
func (f fixedNonces) NonceV2() (string, error) { return f.v2, f.err }

func TestSignV1(t *testing.T) {
	assert.Equal(t, "Cy84UuLZpfGhI7oaPD0Ckx1M0mo=", SignV1("apiKey", "secretKey", "random", "[data=value]"))

	t.Run("Deterministic", func(t *testing.T) {
		a := SignV1("k", "s", "n", "[locale=tr]")
		b := SignV1("k", "s", "n", "[locale=tr]")
		assert.Equal(t, a, b)
	})

	t.Run("SensitiveToEveryInput", func(t *testing.T) {
		base := SignV1("apiKey", "secretKey", "random", "[data=value]")
		assert.NotEqual(t, base, SignV1("apiKey2", "secretKey", "random", "[data=value]"))
		assert.NotEqual(t, base, SignV1("apiKey", "secretKey2", "random", "[data=value]"))
		assert.NotEqual(t, base, SignV1("apiKey", "secretKey", "random2", "[data=value]"))
		assert.NotEqual(t, base, SignV1("apiKey", "secretKey", "random", "[value=data]"))
	})
}

func TestSignV2(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		body string
		want string
	}{
		{"WithQuery", "/v2/uri?test=true", `{"data":"value"}`, v2DataSignature},
		{"WithoutQuery", "/v2/uri", `{"data":"value"}`, v2DataSignature},
		{"AbsoluteURL", "https://sandbox-api.iyzipay.com/v2/uri?test=true&x=1", `{"data":"value"}`, v2DataSignature},
		{"EmptyBody", "/v2/uri?test=true", "", v2EmptySignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SignV2(tt.uri, "apiKey", "secretKey", "random", tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("ContentLayout", func(t *testing.T) {
		got, err := SignV2("/v2/uri", "apiKey", "secretKey", "random", "")
		require.NoError(t, err)
		decoded, err := base64.StdEncoding.DecodeString(got)
		require.NoError(t, err)
		assert.Equal(t, "apiKey:apiKey&randomKey:random&signature:c9e592661883eccdb13ba08aaa7a52b08fe1d48de568ff481d6f8c7ead2937e2", string(decoded))
	})

	t.Run("MissingV2", func(t *testing.T) {
		_, err := SignV2("/payment/auth", "apiKey", "secretKey", "random", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidURI))

		var signErr *SigningError
		require.ErrorAs(t, err, &signErr)
		assert.Equal(t, "extract path", signErr.Op)
	})

	t.Run("EmptySecret", func(t *testing.T) {
		_, err := SignV2("/v2/uri", "apiKey", "", "random", "")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		bad := string([]byte{0xff, 0xfe})
		_, err := SignV2("/v2/uri", "apiKey", "secretKey", "random", bad)
		assert.ErrorIs(t, err, ErrEncoding)
		_, err = SignV2("/v2/uri", bad, "secretKey", "random", "")
		assert.ErrorIs(t, err, ErrEncoding)
	})
}

func TestExtractPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"/v2/uri", "/v2/uri"},
		{"/v2/uri?test=true", "/v2/uri"},
		{"https://api.iyzipay.com/v2/iyzilink/products?productType=IYZILINK&page=1", "/v2/iyzilink/products"},
		{"/v2", "/v2"},
		{"/v2?", "/v2"},
	}
	for _, tt := range tests {
		got, err := ExtractPath(tt.uri)
		require.NoError(t, err, tt.uri)
		assert.Equal(t, tt.want, got)
	}

	_, err := ExtractPath("")
	assert.ErrorIs(t, err, ErrInvalidURI)
	_, err = ExtractPath("https://api.iyzipay.com/payment/auth?x=1")
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestAssembler(t *testing.T) {
	creds := Credentials{APIKey: "apiKey", SecretKey: "secretKey"}
	a := NewAssembler(fixedNonces{v1: "random", v2: "random"}, "iyzipay-go-1.0.0")

	t.Run("V1", func(t *testing.T) {
		h, err := a.HeadersV1(creds, "[data=value]")
		require.NoError(t, err)
		assert.Equal(t, "IYZWS apiKey:Cy84UuLZpfGhI7oaPD0Ckx1M0mo=", h.Get(AuthorizationHeader))
		assert.Equal(t, "random", h.Get(RandomHeader))
		assert.Equal(t, "iyzipay-go-1.0.0", h.Get(ClientVersionHeader))
		assert.Equal(t, "application/json", h.Get("Content-Type"))
		assert.Equal(t, "application/json", h.Get("Accept"))
	})

	t.Run("V2", func(t *testing.T) {
		h, err := a.HeadersV2(creds, "/v2/uri?test=true", `{"data":"value"}`)
		require.NoError(t, err)
		assert.Equal(t, "IYZWSv2 "+v2DataSignature, h.Get(AuthorizationHeader))
		assert.Empty(t, h.Get(RandomHeader))
		assert.Equal(t, "iyzipay-go-1.0.0", h.Get(ClientVersionHeader))
	})

	t.Run("V2SigningFailure", func(t *testing.T) {
		_, err := a.HeadersV2(Credentials{APIKey: "apiKey"}, "/v2/uri", "")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("NonceFailure", func(t *testing.T) {
		broken := NewAssembler(fixedNonces{err: errors.New("entropy exhausted")}, "v")
		_, err := broken.HeadersV1(creds, "")
		assert.Error(t, err)
		_, err = broken.HeadersV2(creds, "/v2/uri", "")
		assert.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	keys := StaticKeys{"apiKey": "secretKey"}
	a := NewAssembler(fixedNonces{v1: "1700000000000abcdEFGH", v2: "random"}, "test")
	creds := Credentials{APIKey: "apiKey", SecretKey: "secretKey"}

	t.Run("V1RoundTrip", func(t *testing.T) {
		h, err := a.HeadersV1(creds, "[locale=tr,binNumber=554960]")
		require.NoError(t, err)

		apiKey, err := VerifyV1(keys, h.Get(AuthorizationHeader), h.Get(RandomHeader), "[locale=tr,binNumber=554960]")
		require.NoError(t, err)
		assert.Equal(t, "apiKey", apiKey)

		_, err = VerifyV1(keys, h.Get(AuthorizationHeader), h.Get(RandomHeader), "[locale=en,binNumber=554960]")
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("V2RoundTrip", func(t *testing.T) {
		h, err := a.HeadersV2(creds, "http://localhost/v2/iyzilink/products?page=1", "")
		require.NoError(t, err)

		_, err = VerifyV2(keys, h.Get(AuthorizationHeader), "/v2/iyzilink/products?page=2", "")
		require.NoError(t, err)

		_, err = VerifyV2(keys, h.Get(AuthorizationHeader), "/v2/iyzilink/products/abc", "")
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		h, err := a.HeadersV1(Credentials{APIKey: "other", SecretKey: "x"}, "")
		require.NoError(t, err)
		_, err = VerifyV1(keys, h.Get(AuthorizationHeader), h.Get(RandomHeader), "")
		assert.ErrorIs(t, err, ErrUnknownAPIKey)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, header := range []string{"", "IYZWS", "Bearer token", "IYZWS nocolon"} {
			_, err := VerifyV1(keys, header, "nonce", "")
			assert.ErrorIs(t, err, ErrMalformedHeader, header)
		}
		for _, header := range []string{"IYZWSv2 !!!", "IYZWSv2 " + base64.StdEncoding.EncodeToString([]byte("garbage"))} {
			_, err := VerifyV2(keys, header, "/v2/x", "")
			assert.ErrorIs(t, err, ErrMalformedHeader, header)
		}
	})
}
