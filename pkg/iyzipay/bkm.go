package iyzipay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// CreateBkmInitializeRequest starts a BKM Express payment. Currency is sent
// but is not part of the signed form.
type CreateBkmInitializeRequest struct {
	Request
	Price               *decimal.Decimal `json:"price,omitempty" pki:"price"`
	BasketID            string           `json:"basketId,omitempty" pki:"basketId"`
	PaymentGroup        PaymentGroup     `json:"paymentGroup,omitempty" pki:"paymentGroup"`
	Buyer               *Buyer           `json:"buyer,omitempty" pki:"buyer"`
	ShippingAddress     *Address         `json:"shippingAddress,omitempty" pki:"shippingAddress"`
	BillingAddress      *Address         `json:"billingAddress,omitempty" pki:"billingAddress"`
	BasketItems         []BasketItem     `json:"basketItems,omitempty" pki:"basketItems"`
	CallbackURL         string           `json:"callbackUrl,omitempty" pki:"callbackUrl"`
	PaymentSource       string           `json:"paymentSource,omitempty" pki:"paymentSource"`
	EnabledInstallments []int            `json:"enabledInstallments,omitempty" pki:"enabledInstallments"`
	Currency            Currency         `json:"currency,omitempty"`
}

// RetrieveBkmRequest fetches the outcome of a BKM Express payment.
type RetrieveBkmRequest struct {
	Request
	Token string `json:"token,omitempty" pki:"token"`
}

// BkmInitialize holds the HTML that sends the buyer to BKM Express.
type BkmInitialize struct {
	Resource
	HTMLContent string `json:"htmlContent"`
	Token       string `json:"token"`
}

// Bkm is the payment produced by BKM Express.
type Bkm struct {
	Payment
	Token       string `json:"token"`
	CallbackURL string `json:"callbackUrl"`
}

// InitializeBkm starts a BKM Express payment.
func (c *Client) InitializeBkm(ctx context.Context, req *CreateBkmInitializeRequest) (*BkmInitialize, error) {
	var resp BkmInitialize
	if err := c.doRequest(ctx, http.MethodPost, "/payment/bkm/initialize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveBkm returns the result of a BKM Express payment by token.
func (c *Client) RetrieveBkm(ctx context.Context, req *RetrieveBkmRequest) (*Bkm, error) {
	var resp Bkm
	if err := c.doRequest(ctx, http.MethodPost, "/payment/bkm/auth/detail", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
