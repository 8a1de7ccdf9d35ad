package iyzipay

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// RetrieveTransactionsRequest selects settlement records of one day,
// formatted as yyyy-MM-dd.
type RetrieveTransactionsRequest struct {
	Request
	Date string `json:"date,omitempty" pki:"date"`
}

// PayoutCompletedTransaction is a transaction paid out to the merchant or a
// sub-merchant.
type PayoutCompletedTransaction struct {
	PaymentTransactionID string          `json:"paymentTransactionId"`
	PayoutAmount         decimal.Decimal `json:"payoutAmount"`
	PayoutType           string          `json:"payoutType"`
	SubMerchantKey       string          `json:"subMerchantKey"`
	Currency             string          `json:"currency"`
}

// PayoutCompletedTransactionList is the result of RetrievePayoutCompletedTransactions.
type PayoutCompletedTransactionList struct {
	Resource
	PayoutCompletedTransactions []PayoutCompletedTransaction `json:"payoutCompletedTransactions"`
}

// BouncedBankTransfer is a payout the receiving bank returned.
type BouncedBankTransfer struct {
	SubMerchantKey    string `json:"subMerchantKey"`
	IBAN              string `json:"iban"`
	ContactName       string `json:"contactName"`
	ContactSurname    string `json:"contactSurname"`
	LegalCompanyTitle string `json:"legalCompanyTitle"`
	SubMerchantType   string `json:"marketplaceSubmerchantType"`
}

// BouncedBankTransferList is the result of RetrieveBouncedBankTransfers.
type BouncedBankTransferList struct {
	Resource
	BankTransfers []BouncedBankTransfer `json:"bankTransfers"`
}

// RetrievePayoutCompletedTransactions lists the payouts completed on a day.
func (c *Client) RetrievePayoutCompletedTransactions(ctx context.Context, req *RetrieveTransactionsRequest) (*PayoutCompletedTransactionList, error) {
	var resp PayoutCompletedTransactionList
	if err := c.doRequest(ctx, http.MethodPost, "/reporting/settlement/payoutcompleted", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveBouncedBankTransfers lists the payouts bounced on a day.
func (c *Client) RetrieveBouncedBankTransfers(ctx context.Context, req *RetrieveTransactionsRequest) (*BouncedBankTransferList, error) {
	var resp BouncedBankTransferList
	if err := c.doRequest(ctx, http.MethodPost, "/reporting/settlement/bounced", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
