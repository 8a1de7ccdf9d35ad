package iyzipay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// OrderItem is a line of an iyziup order.
type OrderItem struct {
	ID              string           `json:"id,omitempty" pki:"id"`
	Price           *decimal.Decimal `json:"price,omitempty" pki:"price"`
	Name            string           `json:"name,omitempty" pki:"name"`
	Category1       string           `json:"category1,omitempty" pki:"category1"`
	Category2       string           `json:"category2,omitempty" pki:"category2"`
	ItemType        BasketItemType   `json:"itemType,omitempty" pki:"itemType"`
	ItemURL         string           `json:"itemUrl,omitempty" pki:"itemUrl"`
	ItemDescription string           `json:"itemDescription,omitempty" pki:"itemDescription"`
}

// IyziupAddress is an address known for the consumer.
type IyziupAddress struct {
	Alias        string `json:"alias,omitempty" pki:"alias"`
	AddressLine1 string `json:"addressLine1,omitempty" pki:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty" pki:"addressLine2"`
	ZipCode      string `json:"zipCode,omitempty" pki:"zipCode"`
	ContactName  string `json:"contactName,omitempty" pki:"contactName"`
	City         string `json:"city,omitempty" pki:"city"`
	Country      string `json:"country,omitempty" pki:"country"`
}

// InitialConsumer prefills the iyziup form.
type InitialConsumer struct {
	Name        string          `json:"name,omitempty" pki:"name"`
	Surname     string          `json:"surname,omitempty" pki:"surname"`
	Email       string          `json:"email,omitempty" pki:"email"`
	GsmNumber   string          `json:"gsmNumber,omitempty" pki:"gsmNumber"`
	AddressList []IyziupAddress `json:"addressList,omitempty" pki:"addressList"`
}

// CreateIyziupFormInitializeRequest starts an iyziup form.
type CreateIyziupFormInitializeRequest struct {
	Request
	MerchantOrderID     string           `json:"merchantOrderId,omitempty" pki:"merchantOrderId"`
	PaymentGroup        PaymentGroup     `json:"paymentGroup,omitempty" pki:"paymentGroup"`
	PaymentSource       string           `json:"paymentSource,omitempty" pki:"paymentSource"`
	ForceThreeDS        *int             `json:"forceThreeDS,omitempty" pki:"forceThreeDS"`
	EnabledInstallments []int            `json:"enabledInstallments,omitempty" pki:"enabledInstallments"`
	EnabledCardFamily   string           `json:"enabledCardFamily,omitempty" pki:"enabledCardFamily"`
	Currency            Currency         `json:"currency,omitempty" pki:"currency"`
	Price               *decimal.Decimal `json:"price,omitempty" pki:"price"`
	PaidPrice           *decimal.Decimal `json:"paidPrice,omitempty" pki:"paidPrice"`
	ShippingPrice       *decimal.Decimal `json:"shippingPrice,omitempty" pki:"shippingPrice"`
	CallbackURL         string           `json:"callbackUrl,omitempty" pki:"callbackUrl"`
	TermsURL            string           `json:"termsUrl,omitempty" pki:"termsUrl"`
	PreSalesContractURL string           `json:"preSalesContractUrl,omitempty" pki:"preSalesContractUrl"`
	OrderItems          []OrderItem      `json:"orderItems,omitempty" pki:"orderItems"`
	InitialConsumer     *InitialConsumer `json:"initialConsumer,omitempty" pki:"initialConsumer"`
}

// RetrieveIyziupFormRequest fetches the order produced by an iyziup form.
type RetrieveIyziupFormRequest struct {
	Request
	Token string `json:"token,omitempty" pki:"token"`
}

// IyziupFormInitialize carries the form script.
type IyziupFormInitialize struct {
	Resource
	Token           string `json:"token"`
	Content         string `json:"content"`
	TokenExpireTime int64  `json:"tokenExpireTime"`
}

// Consumer is the buyer as entered on the iyziup form.
type Consumer struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	IdentityNumber string `json:"identityNumber"`
	Email          string `json:"email"`
	GsmNumber      string `json:"gsmNumber"`
}

// IyziupPayment is the payment behind an iyziup order.
type IyziupPayment struct {
	Price                        decimal.Decimal `json:"price"`
	PaidPrice                    decimal.Decimal `json:"paidPrice"`
	Currency                     string          `json:"currency"`
	Installment                  int             `json:"installment"`
	PaymentID                    string          `json:"paymentId"`
	PaymentStatus                string          `json:"paymentStatus"`
	FraudStatus                  int             `json:"fraudStatus"`
	MerchantCommissionRate       decimal.Decimal `json:"merchantCommissionRate"`
	MerchantCommissionRateAmount decimal.Decimal `json:"merchantCommissionRateAmount"`
	IyziCommissionRateAmount     decimal.Decimal `json:"iyziCommissionRateAmount"`
	IyziCommissionFee            decimal.Decimal `json:"iyziCommissionFee"`
	CardType                     string          `json:"cardType"`
	CardAssociation              string          `json:"cardAssociation"`
	CardFamily                   string          `json:"cardFamily"`
	BinNumber                    string          `json:"binNumber"`
	BasketID                     string          `json:"basketId"`
	PaymentItems                 []PaymentItem   `json:"itemTransactions"`
	ConnectorName                string          `json:"connectorName"`
	AuthCode                     string          `json:"authCode"`
	Phase                        string          `json:"phase"`
	LastFourDigits               string          `json:"lastFourDigits"`
	PosOrderID                   string          `json:"posOrderId"`
}

// IyziupForm is the order produced by a completed iyziup form.
type IyziupForm struct {
	Resource
	OrderResponseStatus string        `json:"orderResponseStatus"`
	Token               string        `json:"token"`
	CallbackURL         string        `json:"callbackUrl"`
	Consumer            Consumer      `json:"consumer"`
	ShippingAddress     *Address      `json:"shippingAddress"`
	BillingAddress      *Address      `json:"billingAddress"`
	PaymentDetail       IyziupPayment `json:"paymentDetail"`
}

// InitializeIyziupForm creates an iyziup form.
func (c *Client) InitializeIyziupForm(ctx context.Context, req *CreateIyziupFormInitializeRequest) (*IyziupFormInitialize, error) {
	var resp IyziupFormInitialize
	if err := c.doRequest(ctx, http.MethodPost, "/v1/iyziup/form/initialize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveIyziupForm returns the order of an iyziup form by token.
func (c *Client) RetrieveIyziupForm(ctx context.Context, req *RetrieveIyziupFormRequest) (*IyziupForm, error) {
	var resp IyziupForm
	if err := c.doRequest(ctx, http.MethodPost, "/v1/iyziup/form/order/retrieve", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
