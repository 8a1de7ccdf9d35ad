package iyzipay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// CreateCheckoutFormInitializeRequest starts a hosted checkout form.
type CreateCheckoutFormInitializeRequest struct {
	Request
	Price                     *decimal.Decimal `json:"price,omitempty" pki:"price"`
	BasketID                  string           `json:"basketId,omitempty" pki:"basketId"`
	PaymentGroup              PaymentGroup     `json:"paymentGroup,omitempty" pki:"paymentGroup"`
	Buyer                     *Buyer           `json:"buyer,omitempty" pki:"buyer"`
	ShippingAddress           *Address         `json:"shippingAddress,omitempty" pki:"shippingAddress"`
	BillingAddress            *Address         `json:"billingAddress,omitempty" pki:"billingAddress"`
	BasketItems               []BasketItem     `json:"basketItems,omitempty" pki:"basketItems"`
	CallbackURL               string           `json:"callbackUrl,omitempty" pki:"callbackUrl"`
	PaymentSource             string           `json:"paymentSource,omitempty" pki:"paymentSource"`
	Currency                  Currency         `json:"currency,omitempty" pki:"currency"`
	PosOrderID                string           `json:"posOrderId,omitempty" pki:"posOrderId"`
	PaidPrice                 *decimal.Decimal `json:"paidPrice,omitempty" pki:"paidPrice"`
	ForceThreeDS              *int             `json:"forceThreeDS,omitempty" pki:"forceThreeDS"`
	CardUserKey               string           `json:"cardUserKey,omitempty" pki:"cardUserKey"`
	EnabledInstallments       []int            `json:"enabledInstallments,omitempty" pki:"enabledInstallments"`
	PaymentWithNewCardEnabled *bool            `json:"paymentWithNewCardEnabled,omitempty" pki:"paymentWithNewCardEnabled"`
	DebitCardAllowed          *bool            `json:"debitCardAllowed,omitempty" pki:"debitCardAllowed"`
}

// RetrieveCheckoutFormRequest fetches the outcome of a checkout form.
type RetrieveCheckoutFormRequest struct {
	Request
	Token string `json:"token,omitempty" pki:"token"`
}

// CheckoutFormInitialize carries the script and URL of the hosted form.
type CheckoutFormInitialize struct {
	Resource
	Token               string `json:"token"`
	CheckoutFormContent string `json:"checkoutFormContent"`
	TokenExpireTime     int64  `json:"tokenExpireTime"`
	PaymentPageURL      string `json:"paymentPageUrl"`
}

// CheckoutForm is the payment produced by a completed checkout form.
type CheckoutForm struct {
	Payment
	Token       string `json:"token"`
	CallbackURL string `json:"callbackUrl"`
}

// InitializeCheckoutForm creates a hosted checkout form.
func (c *Client) InitializeCheckoutForm(ctx context.Context, req *CreateCheckoutFormInitializeRequest) (*CheckoutFormInitialize, error) {
	var resp CheckoutFormInitialize
	if err := c.doRequest(ctx, http.MethodPost, "/payment/iyzipos/checkoutform/initialize/auth/ecom", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveCheckoutForm returns the result of a checkout form by token.
func (c *Client) RetrieveCheckoutForm(ctx context.Context, req *RetrieveCheckoutFormRequest) (*CheckoutForm, error) {
	var resp CheckoutForm
	if err := c.doRequest(ctx, http.MethodPost, "/payment/iyzipos/checkoutform/auth/ecom/detail", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
