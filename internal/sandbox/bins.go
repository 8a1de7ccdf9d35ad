package sandbox

import (
	"net/http"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

type binInfo struct {
	cardType    string
	association string
	family      string
	bankName    string
	bankCode    int64
	commercial  int
}

// Card prefixes of the iyzico sandbox test cards.
var binTable = map[string]binInfo{
	"552879": {"CREDIT_CARD", "MASTER_CARD", "Paraf", "Halkbank", 12, 0},
	"540036": {"CREDIT_CARD", "MASTER_CARD", "Bonus", "Garanti Bankası", 62, 0},
	"589004": {"DEBIT_CARD", "MASTER_CARD", "Axess", "Akbank", 46, 0},
	"454671": {"CREDIT_CARD", "VISA", "World", "Yapı ve Kredi Bankası", 67, 0},
	"979203": {"DEBIT_CARD", "TROY", "Maximum", "Türkiye İş Bankası", 64, 0},
	"450634": {"CREDIT_CARD", "VISA", "Business", "Garanti Bankası", 62, 1},
}

// Test cards that are declined, with the code iyzico reports for them.
var declinedCards = map[string][2]string{
	"4111111111111129": {CodeInsufficientFunds, "Not sufficient funds"},
	"4129111111111111": {CodeDoNotHonour, "Do not honour"},
}

// installmentRates are the surcharges offered per installment count.
var installmentRates = []struct {
	count int
	rate  decimal.Decimal
}{
	{1, decimal.Zero},
	{2, decimal.RequireFromString("0.0255")},
	{3, decimal.RequireFromString("0.0375")},
	{6, decimal.RequireFromString("0.0690")},
	{9, decimal.RequireFromString("0.0985")},
}

// lookupCard describes a card number, falling back to its association for
// prefixes outside the table.
func lookupCard(number string) binInfo {
	if len(number) >= 6 {
		if info, ok := binTable[number[:6]]; ok {
			return info
		}
	}

	info := binInfo{cardType: "CREDIT_CARD"}
	if number == "" {
		return info
	}
	switch number[0] {
	case '3':
		info.association = "AMERICAN_EXPRESS"
	case '4':
		info.association = "VISA"
	case '5':
		info.association = "MASTER_CARD"
	case '9':
		info.association = "TROY"
	}
	return info
}

// RetrieveBinNumber handles POST /payment/bin/check
func (h *Handler) RetrieveBinNumber(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.RetrieveBinNumberRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if len(req.BinNumber) < 6 {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "binNumber must be at least 6 digits")
		return
	}
	info, ok := binTable[req.BinNumber[:6]]
	if !ok {
		h.respondError(w, http.StatusOK, req.Request, CodeUnknownBin, "Bin number not found")
		return
	}

	respondJSON(w, http.StatusOK, iyzipay.BinNumber{
		Resource:        h.resource(req.Request),
		BinNumber:       req.BinNumber[:6],
		CardType:        info.cardType,
		CardAssociation: info.association,
		CardFamily:      info.family,
		BankName:        info.bankName,
		BankCode:        info.bankCode,
		Commercial:      info.commercial,
	})
}

// RetrieveInstallmentInfo handles POST /payment/iyzipos/installment
func (h *Handler) RetrieveInstallmentInfo(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.RetrieveInstallmentInfoRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if req.Price == nil || !req.Price.IsPositive() {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "price must be greater than zero")
		return
	}

	bins := make([]string, 0, len(binTable))
	if req.BinNumber != "" {
		if len(req.BinNumber) < 6 {
			h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "binNumber must be at least 6 digits")
			return
		}
		if _, ok := binTable[req.BinNumber[:6]]; !ok {
			h.respondError(w, http.StatusOK, req.Request, CodeUnknownBin, "Bin number not found")
			return
		}
		bins = append(bins, req.BinNumber[:6])
	} else {
		for bin, info := range binTable {
			if info.cardType == "CREDIT_CARD" {
				bins = append(bins, bin)
			}
		}
		sort.Strings(bins)
	}

	resp := iyzipay.InstallmentInfo{
		Resource:           h.resource(req.Request),
		InstallmentDetails: []iyzipay.InstallmentDetail{},
	}
	for _, bin := range bins {
		info := binTable[bin]
		detail := iyzipay.InstallmentDetail{
			BinNumber:       bin,
			Price:           *req.Price,
			CardType:        info.cardType,
			CardAssociation: info.association,
			CardFamilyName:  info.family,
			BankCode:        info.bankCode,
			BankName:        info.bankName,
			ForceCVC:        0,
			Commercial:      info.commercial,
		}
		for _, opt := range installmentRates {
			if opt.count > 1 && info.cardType != "CREDIT_CARD" {
				break
			}
			total := req.Price.Mul(decimal.NewFromInt(1).Add(opt.rate)).Round(2)
			detail.InstallmentPrices = append(detail.InstallmentPrices, iyzipay.InstallmentPrice{
				InstallmentPrice:  total.DivRound(decimal.NewFromInt(int64(opt.count)), 2),
				TotalPrice:        total,
				InstallmentNumber: opt.count,
			})
		}
		resp.InstallmentDetails = append(resp.InstallmentDetails, detail)
	}

	respondJSON(w, http.StatusOK, resp)
}
