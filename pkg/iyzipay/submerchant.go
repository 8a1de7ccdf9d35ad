package iyzipay

import (
	"context"
	"net/http"
)

// CreateSubMerchantRequest registers a marketplace seller.
type CreateSubMerchantRequest struct {
	Request
	Name                  string          `json:"name,omitempty" pki:"name"`
	Email                 string          `json:"email,omitempty" pki:"email"`
	GsmNumber             string          `json:"gsmNumber,omitempty" pki:"gsmNumber"`
	Address               string          `json:"address,omitempty" pki:"address"`
	IBAN                  string          `json:"iban,omitempty" pki:"iban"`
	TaxOffice             string          `json:"taxOffice,omitempty" pki:"taxOffice"`
	ContactName           string          `json:"contactName,omitempty" pki:"contactName"`
	ContactSurname        string          `json:"contactSurname,omitempty" pki:"contactSurname"`
	LegalCompanyTitle     string          `json:"legalCompanyTitle,omitempty" pki:"legalCompanyTitle"`
	SwiftCode             string          `json:"swiftCode,omitempty" pki:"swiftCode"`
	Currency              Currency        `json:"currency,omitempty" pki:"currency"`
	SubMerchantExternalID string          `json:"subMerchantExternalId,omitempty" pki:"subMerchantExternalId"`
	IdentityNumber        string          `json:"identityNumber,omitempty" pki:"identityNumber"`
	TaxNumber             string          `json:"taxNumber,omitempty" pki:"taxNumber"`
	SubMerchantType       SubMerchantType `json:"subMerchantType,omitempty" pki:"subMerchantType"`
}

// UpdateSubMerchantRequest changes a registered seller.
type UpdateSubMerchantRequest struct {
	Request
	Name              string   `json:"name,omitempty" pki:"name"`
	Email             string   `json:"email,omitempty" pki:"email"`
	GsmNumber         string   `json:"gsmNumber,omitempty" pki:"gsmNumber"`
	Address           string   `json:"address,omitempty" pki:"address"`
	IBAN              string   `json:"iban,omitempty" pki:"iban"`
	TaxOffice         string   `json:"taxOffice,omitempty" pki:"taxOffice"`
	ContactName       string   `json:"contactName,omitempty" pki:"contactName"`
	ContactSurname    string   `json:"contactSurname,omitempty" pki:"contactSurname"`
	LegalCompanyTitle string   `json:"legalCompanyTitle,omitempty" pki:"legalCompanyTitle"`
	SwiftCode         string   `json:"swiftCode,omitempty" pki:"swiftCode"`
	Currency          Currency `json:"currency,omitempty" pki:"currency"`
	SubMerchantKey    string   `json:"subMerchantKey,omitempty" pki:"subMerchantKey"`
	IdentityNumber    string   `json:"identityNumber,omitempty" pki:"identityNumber"`
	TaxNumber         string   `json:"taxNumber,omitempty" pki:"taxNumber"`
}

// RetrieveSubMerchantRequest looks a seller up by the merchant's own id.
type RetrieveSubMerchantRequest struct {
	Request
	SubMerchantExternalID string `json:"subMerchantExternalId,omitempty" pki:"subMerchantExternalId"`
}

// SubMerchant is a registered seller.
type SubMerchant struct {
	Resource
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	GsmNumber             string `json:"gsmNumber"`
	Address               string `json:"address"`
	IBAN                  string `json:"iban"`
	TaxOffice             string `json:"taxOffice"`
	ContactName           string `json:"contactName"`
	ContactSurname        string `json:"contactSurname"`
	LegalCompanyTitle     string `json:"legalCompanyTitle"`
	SwiftCode             string `json:"swiftCode"`
	Currency              string `json:"currency"`
	SubMerchantExternalID string `json:"subMerchantExternalId"`
	IdentityNumber        string `json:"identityNumber"`
	TaxNumber             string `json:"taxNumber"`
	SubMerchantType       string `json:"subMerchantType"`
	SubMerchantKey        string `json:"subMerchantKey"`
}

// CreateApprovalRequest releases or holds the payout of a basket item.
type CreateApprovalRequest struct {
	Request
	PaymentTransactionID string `json:"paymentTransactionId,omitempty" pki:"paymentTransactionId"`
}

// Approval is the result of an approve or disapprove call.
type Approval struct {
	Resource
	PaymentTransactionID string `json:"paymentTransactionId"`
}

// CreateSubMerchant registers a seller.
func (c *Client) CreateSubMerchant(ctx context.Context, req *CreateSubMerchantRequest) (*SubMerchant, error) {
	var resp SubMerchant
	if err := c.doRequest(ctx, http.MethodPost, "/onboarding/submerchant", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSubMerchant changes a seller.
func (c *Client) UpdateSubMerchant(ctx context.Context, req *UpdateSubMerchantRequest) (*SubMerchant, error) {
	var resp SubMerchant
	if err := c.doRequest(ctx, http.MethodPut, "/onboarding/submerchant", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveSubMerchant returns a seller by external id.
func (c *Client) RetrieveSubMerchant(ctx context.Context, req *RetrieveSubMerchantRequest) (*SubMerchant, error) {
	var resp SubMerchant
	if err := c.doRequest(ctx, http.MethodPost, "/onboarding/submerchant/detail", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateApproval releases a basket item's payout to its sub-merchant.
func (c *Client) CreateApproval(ctx context.Context, req *CreateApprovalRequest) (*Approval, error) {
	var resp Approval
	if err := c.doRequest(ctx, http.MethodPost, "/payment/iyzipos/item/approve", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateDisapproval revokes an earlier approval.
func (c *Client) CreateDisapproval(ctx context.Context, req *CreateApprovalRequest) (*Approval, error) {
	var resp Approval
	if err := c.doRequest(ctx, http.MethodPost, "/payment/iyzipos/item/disapprove", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
