package iyzipay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// PaymentCard carries the card used for a payment, either in full or as a
// stored card token.
type PaymentCard struct {
	CardHolderName string `json:"cardHolderName,omitempty" pki:"cardHolderName"`
	CardNumber     string `json:"cardNumber,omitempty" pki:"cardNumber"`
	ExpireYear     string `json:"expireYear,omitempty" pki:"expireYear"`
	ExpireMonth    string `json:"expireMonth,omitempty" pki:"expireMonth"`
	CVC            string `json:"cvc,omitempty" pki:"cvc"`
	RegisterCard   *int   `json:"registerCard,omitempty" pki:"registerCard"`
	CardAlias      string `json:"cardAlias,omitempty" pki:"cardAlias"`
	CardToken      string `json:"cardToken,omitempty" pki:"cardToken"`
	CardUserKey    string `json:"cardUserKey,omitempty" pki:"cardUserKey"`
}

// Buyer describes the customer.
type Buyer struct {
	ID                  string `json:"id,omitempty" pki:"id"`
	Name                string `json:"name,omitempty" pki:"name"`
	Surname             string `json:"surname,omitempty" pki:"surname"`
	IdentityNumber      string `json:"identityNumber,omitempty" pki:"identityNumber"`
	Email               string `json:"email,omitempty" pki:"email"`
	GsmNumber           string `json:"gsmNumber,omitempty" pki:"gsmNumber"`
	RegistrationDate    string `json:"registrationDate,omitempty" pki:"registrationDate"`
	LastLoginDate       string `json:"lastLoginDate,omitempty" pki:"lastLoginDate"`
	RegistrationAddress string `json:"registrationAddress,omitempty" pki:"registrationAddress"`
	City                string `json:"city,omitempty" pki:"city"`
	Country             string `json:"country,omitempty" pki:"country"`
	ZipCode             string `json:"zipCode,omitempty" pki:"zipCode"`
	IP                  string `json:"ip,omitempty" pki:"ip"`
}

// Address is a shipping or billing address.
type Address struct {
	Address     string `json:"address,omitempty" pki:"address"`
	ZipCode     string `json:"zipCode,omitempty" pki:"zipCode"`
	ContactName string `json:"contactName,omitempty" pki:"contactName"`
	City        string `json:"city,omitempty" pki:"city"`
	Country     string `json:"country,omitempty" pki:"country"`
}

// BasketItem is a line of the basket. Prices of all items must add up to
// the payment price.
type BasketItem struct {
	ID               string           `json:"id,omitempty" pki:"id"`
	Price            *decimal.Decimal `json:"price,omitempty" pki:"price"`
	Name             string           `json:"name,omitempty" pki:"name"`
	Category1        string           `json:"category1,omitempty" pki:"category1"`
	Category2        string           `json:"category2,omitempty" pki:"category2"`
	ItemType         BasketItemType   `json:"itemType,omitempty" pki:"itemType"`
	SubMerchantKey   string           `json:"subMerchantKey,omitempty" pki:"subMerchantKey"`
	SubMerchantPrice *decimal.Decimal `json:"subMerchantPrice,omitempty" pki:"subMerchantPrice"`
}

// CreatePaymentRequest is used for non-3DS payments and 3DS initialization.
type CreatePaymentRequest struct {
	Request
	Price           *decimal.Decimal `json:"price,omitempty" pki:"price"`
	PaidPrice       *decimal.Decimal `json:"paidPrice,omitempty" pki:"paidPrice"`
	Installment     int              `json:"installment,omitempty" pki:"installment"`
	PaymentChannel  PaymentChannel   `json:"paymentChannel,omitempty" pki:"paymentChannel"`
	BasketID        string           `json:"basketId,omitempty" pki:"basketId"`
	PaymentGroup    PaymentGroup     `json:"paymentGroup,omitempty" pki:"paymentGroup"`
	PaymentCard     *PaymentCard     `json:"paymentCard,omitempty" pki:"paymentCard"`
	Buyer           *Buyer           `json:"buyer,omitempty" pki:"buyer"`
	ShippingAddress *Address         `json:"shippingAddress,omitempty" pki:"shippingAddress"`
	BillingAddress  *Address         `json:"billingAddress,omitempty" pki:"billingAddress"`
	BasketItems     []BasketItem     `json:"basketItems,omitempty" pki:"basketItems"`
	PaymentSource   string           `json:"paymentSource,omitempty" pki:"paymentSource"`
	PosOrderID      string           `json:"posOrderId,omitempty" pki:"posOrderId"`
	Currency        Currency         `json:"currency,omitempty" pki:"currency"`
	ConnectorName   string           `json:"connectorName,omitempty" pki:"connectorName"`
	CallbackURL     string           `json:"callbackUrl,omitempty" pki:"callbackUrl"`
}

// RetrievePaymentRequest looks a payment up by id or by the merchant's
// conversation id.
type RetrievePaymentRequest struct {
	Request
	PaymentID             string `json:"paymentId,omitempty" pki:"paymentId"`
	PaymentConversationID string `json:"paymentConversationId,omitempty" pki:"paymentConversationId"`
}

// CreateThreedsPaymentRequest completes a 3DS payment after the bank callback.
type CreateThreedsPaymentRequest struct {
	Request
	PaymentID        string `json:"paymentId,omitempty" pki:"paymentId"`
	ConversationData string `json:"conversationData,omitempty" pki:"conversationData"`
}

// CreateCancelRequest voids a payment on the day it was made.
type CreateCancelRequest struct {
	Request
	PaymentID   string       `json:"paymentId,omitempty" pki:"paymentId"`
	IP          string       `json:"ip,omitempty" pki:"ip"`
	Reason      RefundReason `json:"reason,omitempty" pki:"reason"`
	Description string       `json:"description,omitempty" pki:"description"`
}

// CreateRefundRequest refunds all or part of a basket item.
type CreateRefundRequest struct {
	Request
	PaymentTransactionID string           `json:"paymentTransactionId,omitempty" pki:"paymentTransactionId"`
	Price                *decimal.Decimal `json:"price,omitempty" pki:"price"`
	IP                   string           `json:"ip,omitempty" pki:"ip"`
	Currency             Currency         `json:"currency,omitempty" pki:"currency"`
	Reason               RefundReason     `json:"reason,omitempty" pki:"reason"`
	Description          string           `json:"description,omitempty" pki:"description"`
}

// UpdatePaymentItemRequest moves a paid item to another sub-merchant.
type UpdatePaymentItemRequest struct {
	Request
	SubMerchantKey       string           `json:"subMerchantKey,omitempty" pki:"subMerchantKey"`
	PaymentTransactionID int64            `json:"paymentTransactionId,omitempty" pki:"paymentTransactionId"`
	SubMerchantPrice     *decimal.Decimal `json:"subMerchantPrice,omitempty" pki:"subMerchantPrice"`
}

// ConvertedPayout is the settlement breakdown of a payment item.
type ConvertedPayout struct {
	PaidPrice                     decimal.Decimal `json:"paidPrice"`
	IyziCommissionRateAmount      decimal.Decimal `json:"iyziCommissionRateAmount"`
	IyziCommissionFee             decimal.Decimal `json:"iyziCommissionFee"`
	BlockageRateAmountMerchant    decimal.Decimal `json:"blockageRateAmountMerchant"`
	BlockageRateAmountSubMerchant decimal.Decimal `json:"blockageRateAmountSubMerchant"`
	SubMerchantPayoutAmount       decimal.Decimal `json:"subMerchantPayoutAmount"`
	MerchantPayoutAmount          decimal.Decimal `json:"merchantPayoutAmount"`
	IyziConversionRate            decimal.Decimal `json:"iyziConversionRate"`
	IyziConversionRateAmount      decimal.Decimal `json:"iyziConversionRateAmount"`
	Currency                      string          `json:"currency"`
}

// PaymentItem is a basket item as settled by iyzico.
type PaymentItem struct {
	ItemID                        string           `json:"itemId"`
	PaymentTransactionID          string           `json:"paymentTransactionId"`
	TransactionStatus             int              `json:"transactionStatus"`
	Price                         decimal.Decimal  `json:"price"`
	PaidPrice                     decimal.Decimal  `json:"paidPrice"`
	MerchantCommissionRate        decimal.Decimal  `json:"merchantCommissionRate"`
	MerchantCommissionRateAmount  decimal.Decimal  `json:"merchantCommissionRateAmount"`
	IyziCommissionRateAmount      decimal.Decimal  `json:"iyziCommissionRateAmount"`
	IyziCommissionFee             decimal.Decimal  `json:"iyziCommissionFee"`
	BlockageRate                  decimal.Decimal  `json:"blockageRate"`
	BlockageRateAmountMerchant    decimal.Decimal  `json:"blockageRateAmountMerchant"`
	BlockageRateAmountSubMerchant decimal.Decimal  `json:"blockageRateAmountSubMerchant"`
	BlockageResolvedDate          string           `json:"blockageResolvedDate"`
	SubMerchantKey                string           `json:"subMerchantKey"`
	SubMerchantPrice              decimal.Decimal  `json:"subMerchantPrice"`
	SubMerchantPayoutRate         decimal.Decimal  `json:"subMerchantPayoutRate"`
	SubMerchantPayoutAmount       decimal.Decimal  `json:"subMerchantPayoutAmount"`
	MerchantPayoutAmount          decimal.Decimal  `json:"merchantPayoutAmount"`
	ConvertedPayout               *ConvertedPayout `json:"convertedPayout,omitempty"`
}

// Payment is the result of creating or retrieving a payment.
type Payment struct {
	Resource
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
	CardToken                    string          `json:"cardToken"`
	CardUserKey                  string          `json:"cardUserKey"`
	BinNumber                    string          `json:"binNumber"`
	LastFourDigits               string          `json:"lastFourDigits"`
	BasketID                     string          `json:"basketId"`
	PaymentItems                 []PaymentItem   `json:"itemTransactions"`
	ConnectorName                string          `json:"connectorName"`
	AuthCode                     string          `json:"authCode"`
	Phase                        string          `json:"phase"`
	PosOrderID                   string          `json:"posOrderId"`
	HostReference                string          `json:"hostReference"`
}

// ThreedsInitialize holds the HTML that redirects the buyer to the bank.
type ThreedsInitialize struct {
	Resource
	HTMLContent string `json:"threeDSHtmlContent"`
}

// Cancel is the result of a cancel.
type Cancel struct {
	Resource
	PaymentID     string          `json:"paymentId"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	ConnectorName string          `json:"connectorName"`
	AuthCode      string          `json:"authCode"`
	HostReference string          `json:"hostReference"`
}

// Refund is the result of a refund.
type Refund struct {
	Resource
	PaymentID            string          `json:"paymentId"`
	PaymentTransactionID string          `json:"paymentTransactionId"`
	Price                decimal.Decimal `json:"price"`
	Currency             string          `json:"currency"`
	ConnectorName        string          `json:"connectorName"`
	AuthCode             string          `json:"authCode"`
	HostReference        string          `json:"hostReference"`
}

// PaymentItemUpdate is the result of UpdatePaymentItem.
type PaymentItemUpdate struct {
	Resource
	PaymentItem
}

// CreatePayment charges a card without 3DS.
func (c *Client) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	var resp Payment
	if err := c.doRequest(ctx, http.MethodPost, "/payment/auth", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrievePayment returns a payment by id.
func (c *Client) RetrievePayment(ctx context.Context, req *RetrievePaymentRequest) (*Payment, error) {
	var resp Payment
	if err := c.doRequest(ctx, http.MethodPost, "/payment/detail", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InitializeThreeds starts a 3DS payment. The returned HTML must be shown
// to the buyer.
func (c *Client) InitializeThreeds(ctx context.Context, req *CreatePaymentRequest) (*ThreedsInitialize, error) {
	var resp ThreedsInitialize
	if err := c.doRequest(ctx, http.MethodPost, "/payment/3dsecure/initialize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateThreedsPayment completes a 3DS payment.
func (c *Client) CreateThreedsPayment(ctx context.Context, req *CreateThreedsPaymentRequest) (*Payment, error) {
	var resp Payment
	if err := c.doRequest(ctx, http.MethodPost, "/payment/3dsecure/auth", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCancel cancels a payment.
func (c *Client) CreateCancel(ctx context.Context, req *CreateCancelRequest) (*Cancel, error) {
	var resp Cancel
	if err := c.doRequest(ctx, http.MethodPost, "/payment/cancel", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateRefund refunds a payment transaction.
func (c *Client) CreateRefund(ctx context.Context, req *CreateRefundRequest) (*Refund, error) {
	var resp Refund
	if err := c.doRequest(ctx, http.MethodPost, "/payment/refund", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdatePaymentItem changes the sub-merchant of a paid item.
func (c *Client) UpdatePaymentItem(ctx context.Context, req *UpdatePaymentItemRequest) (*PaymentItemUpdate, error) {
	var resp PaymentItemUpdate
	if err := c.doRequest(ctx, http.MethodPut, "/payment/item", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
