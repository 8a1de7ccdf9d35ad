package iyzipay

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Locale selects the language of error messages returned by the API.
type Locale string

const (
	LocaleTR Locale = "tr"
	LocaleEN Locale = "en"
)

// Currency codes accepted by iyzico
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyIRR Currency = "IRR"
	CurrencyGBP Currency = "GBP"
	CurrencyNOK Currency = "NOK"
	CurrencyRUB Currency = "RUB"
	CurrencyCHF Currency = "CHF"
)

// Status is the outcome reported by every API response.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// PaymentChannel identifies where a payment was initiated.
type PaymentChannel string

const (
	PaymentChannelMobile        PaymentChannel = "MOBILE"
	PaymentChannelWeb           PaymentChannel = "WEB"
	PaymentChannelMobileWeb     PaymentChannel = "MOBILE_WEB"
	PaymentChannelMobileIOS     PaymentChannel = "MOBILE_IOS"
	PaymentChannelMobileAndroid PaymentChannel = "MOBILE_ANDROID"
	PaymentChannelMobileWindows PaymentChannel = "MOBILE_WINDOWS"
	PaymentChannelMobileTablet  PaymentChannel = "MOBILE_TABLET"
	PaymentChannelMobilePhone   PaymentChannel = "MOBILE_PHONE"
)

// PaymentGroup classifies what is being sold.
type PaymentGroup string

const (
	PaymentGroupProduct      PaymentGroup = "PRODUCT"
	PaymentGroupListing      PaymentGroup = "LISTING"
	PaymentGroupSubscription PaymentGroup = "SUBSCRIPTION"
)

// BasketItemType distinguishes shipped goods from digital ones.
type BasketItemType string

const (
	BasketItemTypePhysical BasketItemType = "PHYSICAL"
	BasketItemTypeVirtual  BasketItemType = "VIRTUAL"
)

// RefundReason explains a cancel or refund.
type RefundReason string

const (
	RefundReasonDoublePayment RefundReason = "DOUBLE_PAYMENT"
	RefundReasonBuyerRequest  RefundReason = "BUYER_REQUEST"
	RefundReasonFraud         RefundReason = "FRAUD"
	RefundReasonOther         RefundReason = "OTHER"
)

// SubMerchantType is the legal form of a marketplace seller.
type SubMerchantType string

const (
	SubMerchantTypePersonal            SubMerchantType = "PERSONAL"
	SubMerchantTypePrivateCompany      SubMerchantType = "PRIVATE_COMPANY"
	SubMerchantTypeLimitedOrJointStock SubMerchantType = "LIMITED_OR_JOINT_STOCK_COMPANY"
)

// ApmType is an alternative payment method.
type ApmType string

const (
	ApmTypeSofort  ApmType = "SOFORT"
	ApmTypeIdeal   ApmType = "IDEAL"
	ApmTypeQiwi    ApmType = "QIWI"
	ApmTypeGiropay ApmType = "GIROPAY"
)

// IyziLinkStatus is the lifecycle state of an iyzilink product.
type IyziLinkStatus string

const (
	IyziLinkStatusActive  IyziLinkStatus = "ACTIVE"
	IyziLinkStatusPassive IyziLinkStatus = "PASSIVE"
	IyziLinkStatusDeleted IyziLinkStatus = "DELETED"
)

// APIError represents a failure status returned by the API
type APIError struct {
	StatusCode     int    `json:"-"`
	Code           string `json:"errorCode"`
	Message        string `json:"errorMessage"`
	Group          string `json:"errorGroup"`
	ConversationID string `json:"conversationId"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return "iyzipay: " + e.Message
	}
	return fmt.Sprintf("iyzipay: %s: %s", e.Code, e.Message)
}

// HTTPError is returned when the server answers with a non-2xx status and a
// body that is not an iyzico resource.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("iyzipay: unexpected HTTP status %d", e.StatusCode)
}

// Resource holds the fields common to every response.
type Resource struct {
	Status         Status `json:"status"`
	ErrorCode      string `json:"errorCode,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
	ErrorGroup     string `json:"errorGroup,omitempty"`
	Locale         string `json:"locale,omitempty"`
	SystemTime     int64  `json:"systemTime,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
}

func (r *Resource) resource() *Resource { return r }

// Err converts a failure status into an *APIError. It returns nil on success.
func (r *Resource) Err() error {
	if r.Status != StatusFailure {
		return nil
	}
	return &APIError{
		Code:           r.ErrorCode,
		Message:        r.ErrorMessage,
		Group:          r.ErrorGroup,
		ConversationID: r.ConversationID,
	}
}

type resourceHolder interface {
	resource() *Resource
}

// Request is the envelope embedded in every request.
type Request struct {
	Locale         Locale `json:"locale,omitempty" pki:"locale"`
	ConversationID string `json:"conversationId,omitempty" pki:"conversationId"`
}

// QueryParams renders the envelope for endpoints that carry it in the URL.
func (r Request) QueryParams() url.Values {
	q := url.Values{}
	if r.ConversationID != "" {
		q.Set("conversationId", r.ConversationID)
	}
	if r.Locale != "" {
		q.Set("locale", string(r.Locale))
	}
	return q
}

// PagingRequest adds page selection to the envelope.
type PagingRequest struct {
	Request
	Page  int `json:"page,omitempty" pki:"page"`
	Count int `json:"count,omitempty" pki:"count"`
}

// QueryParams renders the envelope and paging parameters.
func (r PagingRequest) QueryParams() url.Values {
	q := r.Request.QueryParams()
	if r.Page > 0 {
		q.Set("page", strconv.Itoa(r.Page))
	}
	if r.Count > 0 {
		q.Set("count", strconv.Itoa(r.Count))
	}
	return q
}

// Price parses a decimal string for use in request fields. It panics on
// malformed input, so it is meant for literals.
func Price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }
