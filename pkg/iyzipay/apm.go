package iyzipay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// CreateApmInitializeRequest starts an alternative payment method payment
// such as Sofort or iDEAL.
type CreateApmInitializeRequest struct {
	Request
	Price                   *decimal.Decimal `json:"price,omitempty" pki:"price"`
	PaidPrice               *decimal.Decimal `json:"paidPrice,omitempty" pki:"paidPrice"`
	PaymentChannel          PaymentChannel   `json:"paymentChannel,omitempty" pki:"paymentChannel"`
	PaymentGroup            PaymentGroup     `json:"paymentGroup,omitempty" pki:"paymentGroup"`
	PaymentSource           string           `json:"paymentSource,omitempty" pki:"paymentSource"`
	Currency                Currency         `json:"currency,omitempty" pki:"currency"`
	MerchantOrderID         string           `json:"merchantOrderId,omitempty" pki:"merchantOrderId"`
	CountryCode             string           `json:"countryCode,omitempty" pki:"countryCode"`
	AccountHolderName       string           `json:"accountHolderName,omitempty" pki:"accountHolderName"`
	MerchantCallbackURL     string           `json:"merchantCallbackUrl,omitempty" pki:"merchantCallbackUrl"`
	MerchantErrorURL        string           `json:"merchantErrorUrl,omitempty" pki:"merchantErrorUrl"`
	MerchantNotificationURL string           `json:"merchantNotificationUrl,omitempty" pki:"merchantNotificationUrl"`
	ApmType                 ApmType          `json:"apmType,omitempty" pki:"apmType"`
	BasketID                string           `json:"basketId,omitempty" pki:"basketId"`
	Buyer                   *Buyer           `json:"buyer,omitempty" pki:"buyer"`
	ShippingAddress         *Address         `json:"shippingAddress,omitempty" pki:"shippingAddress"`
	BillingAddress          *Address         `json:"billingAddress,omitempty" pki:"billingAddress"`
	BasketItems             []BasketItem     `json:"basketItems,omitempty" pki:"basketItems"`
}

// RetrieveApmRequest fetches an APM payment by id.
type RetrieveApmRequest struct {
	Request
	PaymentID string `json:"paymentId,omitempty" pki:"paymentId"`
}

// Apm is the state of an alternative payment method payment.
type Apm struct {
	Resource
	RedirectURL                  string          `json:"redirectUrl"`
	Price                        decimal.Decimal `json:"price"`
	PaidPrice                    decimal.Decimal `json:"paidPrice"`
	PaymentID                    string          `json:"paymentId"`
	MerchantCommissionRate       decimal.Decimal `json:"merchantCommissionRate"`
	MerchantCommissionRateAmount decimal.Decimal `json:"merchantCommissionRateAmount"`
	IyziCommissionRateAmount     decimal.Decimal `json:"iyziCommissionRateAmount"`
	IyziCommissionFee            decimal.Decimal `json:"iyziCommissionFee"`
	BasketID                     string          `json:"basketId"`
	Currency                     string          `json:"currency"`
	PaymentItems                 []PaymentItem   `json:"itemTransactions"`
	Phase                        string          `json:"phase"`
	AccountHolderName            string          `json:"accountHolderName"`
	AccountNumber                string          `json:"accountNumber"`
	BankName                     string          `json:"bankName"`
	BankCode                     string          `json:"bankCode"`
	BIC                          string          `json:"bic"`
	PaymentPurpose               string          `json:"paymentPurpose"`
	IBAN                         string          `json:"iban"`
	CountryCode                  string          `json:"countryCode"`
	Apm                          string          `json:"apm"`
	MobilePhone                  string          `json:"mobilePhone"`
	PaymentStatus                string          `json:"paymentStatus"`
	PaymentTransactionID         string          `json:"paymentTransactionId"`
}

// InitializeApm starts an APM payment. The buyer continues at RedirectURL.
func (c *Client) InitializeApm(ctx context.Context, req *CreateApmInitializeRequest) (*Apm, error) {
	var resp Apm
	if err := c.doRequest(ctx, http.MethodPost, "/payment/apm/initialize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveApm returns an APM payment.
func (c *Client) RetrieveApm(ctx context.Context, req *RetrieveApmRequest) (*Apm, error) {
	var resp Apm
	if err := c.doRequest(ctx, http.MethodPost, "/payment/apm/retrieve", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
