// Package iyzipay provides a client for the iyzico payment API.
//
// # Authentication
//
// Every request carries three headers:
//   - Authorization: the signature, in one of two schemes
//   - x-iyzi-rnd: the per-request nonce (IYZWS only)
//   - x-iyzi-client-version: the SDK name and version
//
// Most endpoints use IYZWS: a SHA-1 digest of the API key, nonce, secret key
// and the canonical form of the request. The canonical form is derived from
// the `pki` struct tags of the request types, so field order matters and is
// fixed by the type definitions in this package.
//
// The /v2 endpoints (iyzilink) use IYZWSv2: an HMAC-SHA256 over the nonce,
// the /v2 path and the JSON body.
//
// # Basic Usage
//
//	client := iyzipay.NewClient(&iyzipay.ClientConfig{
//	    BaseURL:   "https://sandbox-api.iyzipay.com",
//	    APIKey:    "your-api-key",
//	    SecretKey: "your-secret-key",
//	})
//
//	bin, err := client.RetrieveBinNumber(ctx, &iyzipay.RetrieveBinNumberRequest{
//	    Request:   iyzipay.Request{Locale: iyzipay.LocaleTR, ConversationID: "123456789"},
//	    BinNumber: "554960",
//	})
//
//	payment, err := client.CreatePayment(ctx, &iyzipay.CreatePaymentRequest{
//	    Price:     iyzipay.Price("1.0"),
//	    PaidPrice: iyzipay.Price("1.1"),
//	    // ...
//	})
//
// # Error Handling
//
// Responses with status "failure" are returned as *APIError:
//
//	_, err := client.CreatePayment(ctx, req)
//	var apiErr *iyzipay.APIError
//	if errors.As(err, &apiErr) {
//	    log.Printf("payment declined: %s %s", apiErr.Code, apiErr.Message)
//	}
package iyzipay
