package iyzipay

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

const iyziLinkProductsPath = "/v2/iyzilink/products"

var ErrMissingToken = errors.New("iyzilink token is required")

// IyziLinkSaveRequest creates or updates an iyzilink product.
type IyziLinkSaveRequest struct {
	Request
	Name                 string           `json:"name,omitempty"`
	Description          string           `json:"description,omitempty"`
	Base64EncodedImage   string           `json:"encodedImageFile,omitempty"`
	Price                *decimal.Decimal `json:"price,omitempty"`
	Currency             Currency         `json:"currencyCode,omitempty"`
	AddressIgnorable     *bool            `json:"addressIgnorable,omitempty"`
	SoldLimit            *int             `json:"soldLimit,omitempty"`
	InstallmentRequested *bool            `json:"installmentRequested,omitempty"`
}

// IyziLinkSave identifies a created or updated product.
type IyziLinkSave struct {
	Token    string `json:"token"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
}

// IyziLinkItem is a product as stored by iyzico.
type IyziLinkItem struct {
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price"`
	Currency             string          `json:"currencyCode"`
	Token                string          `json:"token"`
	Status               IyziLinkStatus  `json:"productStatus"`
	URL                  string          `json:"url"`
	ImageURL             string          `json:"imageUrl"`
	AddressIgnorable     bool            `json:"addressIgnorable"`
	SoldCount            int             `json:"soldCount"`
	SoldLimit            *int            `json:"soldLimit,omitempty"`
	RemainingSoldLimit   *int            `json:"remainingSoldLimit,omitempty"`
	InstallmentRequested bool            `json:"installmentRequested"`
}

// IyziLinkPaging is one page of products.
type IyziLinkPaging struct {
	Items       []IyziLinkItem `json:"items"`
	TotalCount  int64          `json:"totalCount"`
	CurrentPage int            `json:"currentPage"`
	PageCount   int            `json:"pageCount"`
}

// IyziLinkSaveResource is the result of CreateIyziLink and UpdateIyziLink.
type IyziLinkSaveResource struct {
	Resource
	Data *IyziLinkSave `json:"data,omitempty"`
}

// IyziLinkResource is the result of RetrieveIyziLink and DeleteIyziLink.
type IyziLinkResource struct {
	Resource
	Data *IyziLinkItem `json:"data,omitempty"`
}

// IyziLinkPagingResource is the result of RetrieveAllIyziLinks.
type IyziLinkPagingResource struct {
	Resource
	Data *IyziLinkPaging `json:"data,omitempty"`
}

func iyziLinkPath(token string) string {
	return iyziLinkProductsPath + "/" + url.PathEscape(token)
}

// CreateIyziLink creates a payment link product.
func (c *Client) CreateIyziLink(ctx context.Context, req *IyziLinkSaveRequest) (*IyziLinkSaveResource, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	var resp IyziLinkSaveResource
	if err := c.doRequestV2(ctx, http.MethodPost, iyziLinkProductsPath, req.QueryParams(), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateIyziLink replaces the product identified by token.
func (c *Client) UpdateIyziLink(ctx context.Context, token string, req *IyziLinkSaveRequest) (*IyziLinkSaveResource, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if req == nil {
		return nil, ErrNilRequest
	}
	var resp IyziLinkSaveResource
	if err := c.doRequestV2(ctx, http.MethodPut, iyziLinkPath(token), req.QueryParams(), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveIyziLink returns the product identified by token.
func (c *Client) RetrieveIyziLink(ctx context.Context, token string, req *Request) (*IyziLinkResource, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var resp IyziLinkResource
	if err := c.doRequestV2(ctx, http.MethodGet, iyziLinkPath(token), queryOf(req), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveAllIyziLinks lists products page by page.
func (c *Client) RetrieveAllIyziLinks(ctx context.Context, req *PagingRequest) (*IyziLinkPagingResource, error) {
	query := url.Values{}
	if req != nil {
		query = req.QueryParams()
	}
	query.Set("productType", "IYZILINK")

	var resp IyziLinkPagingResource
	if err := c.doRequestV2(ctx, http.MethodGet, iyziLinkProductsPath, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteIyziLink removes the product identified by token.
func (c *Client) DeleteIyziLink(ctx context.Context, token string, req *Request) (*IyziLinkResource, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var resp IyziLinkResource
	if err := c.doRequestV2(ctx, http.MethodDelete, iyziLinkPath(token), queryOf(req), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func queryOf(req *Request) url.Values {
	if req == nil {
		return url.Values{}
	}
	return req.QueryParams()
}
