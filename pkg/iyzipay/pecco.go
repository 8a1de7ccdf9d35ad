package iyzipay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// CreatePeccoInitializeRequest starts a Pecco payment. Currency is sent but
// is not part of the signed form.
type CreatePeccoInitializeRequest struct {
	Request
	Price           *decimal.Decimal `json:"price,omitempty" pki:"price"`
	BasketID        string           `json:"basketId,omitempty" pki:"basketId"`
	PaymentGroup    PaymentGroup     `json:"paymentGroup,omitempty" pki:"paymentGroup"`
	Buyer           *Buyer           `json:"buyer,omitempty" pki:"buyer"`
	ShippingAddress *Address         `json:"shippingAddress,omitempty" pki:"shippingAddress"`
	BillingAddress  *Address         `json:"billingAddress,omitempty" pki:"billingAddress"`
	BasketItems     []BasketItem     `json:"basketItems,omitempty" pki:"basketItems"`
	CallbackURL     string           `json:"callbackUrl,omitempty" pki:"callbackUrl"`
	PaymentSource   string           `json:"paymentSource,omitempty" pki:"paymentSource"`
	PaidPrice       *decimal.Decimal `json:"paidPrice,omitempty" pki:"paidPrice"`
	Currency        Currency         `json:"currency,omitempty"`
}

// CreatePeccoPaymentRequest completes a Pecco payment with the token from
// initialization.
type CreatePeccoPaymentRequest struct {
	Request
	Token string `json:"token,omitempty" pki:"token"`
}

// PeccoInitialize carries the Pecco page the buyer is sent to.
type PeccoInitialize struct {
	Resource
	HTMLContent     string `json:"htmlContent"`
	RedirectURL     string `json:"redirectUrl"`
	Token           string `json:"token"`
	TokenExpireTime int64  `json:"tokenExpireTime"`
}

// PeccoPayment is the payment produced by Pecco.
type PeccoPayment struct {
	Payment
	Token string `json:"token"`
}

// InitializePecco starts a Pecco payment.
func (c *Client) InitializePecco(ctx context.Context, req *CreatePeccoInitializeRequest) (*PeccoInitialize, error) {
	var resp PeccoInitialize
	if err := c.doRequest(ctx, http.MethodPost, "/payment/pecco/initialize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePeccoPayment authorizes a Pecco payment.
func (c *Client) CreatePeccoPayment(ctx context.Context, req *CreatePeccoPaymentRequest) (*PeccoPayment, error) {
	var resp PeccoPayment
	if err := c.doRequest(ctx, http.MethodPost, "/payment/pecco/auth", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
