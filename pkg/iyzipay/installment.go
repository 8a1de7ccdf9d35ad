package iyzipay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// RetrieveBinNumberRequest asks for the issuer of a card prefix.
type RetrieveBinNumberRequest struct {
	Request
	BinNumber string `json:"binNumber,omitempty" pki:"binNumber"`
}

// BinNumber describes the card family behind a BIN.
type BinNumber struct {
	Resource
	BinNumber       string `json:"binNumber"`
	CardType        string `json:"cardType"`
	CardAssociation string `json:"cardAssociation"`
	CardFamily      string `json:"cardFamily"`
	BankName        string `json:"bankName"`
	BankCode        int64  `json:"bankCode"`
	Commercial      int    `json:"commercial"`
}

// RetrieveInstallmentInfoRequest asks for installment options for a price,
// optionally narrowed to one BIN.
type RetrieveInstallmentInfoRequest struct {
	Request
	BinNumber string           `json:"binNumber,omitempty" pki:"binNumber"`
	Price     *decimal.Decimal `json:"price,omitempty" pki:"price"`
	Currency  Currency         `json:"currency,omitempty" pki:"currency"`
}

// InstallmentPrice is one installment option.
type InstallmentPrice struct {
	InstallmentPrice  decimal.Decimal `json:"installmentPrice"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	InstallmentNumber int             `json:"installmentNumber"`
}

// InstallmentDetail groups the options offered by one card family.
type InstallmentDetail struct {
	BinNumber         string             `json:"binNumber"`
	Price             decimal.Decimal    `json:"price"`
	CardType          string             `json:"cardType"`
	CardAssociation   string             `json:"cardAssociation"`
	CardFamilyName    string             `json:"cardFamilyName"`
	Force3DS          int                `json:"force3ds"`
	BankCode          int64              `json:"bankCode"`
	BankName          string             `json:"bankName"`
	ForceCVC          int                `json:"forceCvc"`
	Commercial        int                `json:"commercial"`
	InstallmentPrices []InstallmentPrice `json:"installmentPrices"`
}

// InstallmentInfo is the result of RetrieveInstallmentInfo.
type InstallmentInfo struct {
	Resource
	InstallmentDetails []InstallmentDetail `json:"installmentDetails"`
}

// RetrieveBinNumber looks up a card prefix.
func (c *Client) RetrieveBinNumber(ctx context.Context, req *RetrieveBinNumberRequest) (*BinNumber, error) {
	var resp BinNumber
	if err := c.doRequest(ctx, http.MethodPost, "/payment/bin/check", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveInstallmentInfo lists installment options.
func (c *Client) RetrieveInstallmentInfo(ctx context.Context, req *RetrieveInstallmentInfoRequest) (*InstallmentInfo, error) {
	var resp InstallmentInfo
	if err := c.doRequest(ctx, http.MethodPost, "/payment/iyzipos/installment", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
