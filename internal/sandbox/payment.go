package sandbox

import (
	"encoding/base64"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

var (
	iyziCommissionRate = decimal.RequireFromString("0.0289")
	iyziCommissionFee  = decimal.RequireFromString("0.25")
	hundred            = decimal.NewFromInt(100)
)

// Transaction statuses of payment items
const (
	itemWaitingApproval = 1
	itemApproved        = 2
)

// validateBasket checks that the basket adds up to price. It returns the
// failure code and message, or empty strings when the basket is valid.
func validateBasket(price, paidPrice *decimal.Decimal, items []iyzipay.BasketItem) (string, string) {
	if price == nil || !price.IsPositive() {
		return CodeInvalidRequest, "price must be greater than zero"
	}
	if paidPrice == nil || !paidPrice.IsPositive() {
		return CodeInvalidRequest, "paidPrice must be greater than zero"
	}
	if len(items) == 0 {
		return CodeInvalidRequest, "basketItems are required"
	}

	sum := decimal.Zero
	for _, item := range items {
		if item.Price == nil || !item.Price.IsPositive() {
			return CodeInvalidRequest, "basket item price must be greater than zero"
		}
		sum = sum.Add(*item.Price)
	}
	if !sum.Equal(*price) {
		return CodeBasketMismatch, "basket items total must equal price"
	}
	return "", ""
}

// authorize charges the request's card and builds the resulting payment. It
// returns a failure code and message when the charge is refused.
func (h *Handler) authorize(req *iyzipay.CreatePaymentRequest) (*iyzipay.Payment, string, string) {
	if code, msg := validateBasket(req.Price, req.PaidPrice, req.BasketItems); code != "" {
		return nil, code, msg
	}
	if req.PaymentCard == nil {
		return nil, CodeInvalidRequest, "paymentCard is required"
	}

	card := req.PaymentCard
	var bin, lastFour, cardToken, cardUserKey string
	switch {
	case card.CardToken != "":
		stored, err := h.store.Card(card.CardUserKey, card.CardToken)
		if err != nil {
			return nil, CodeNotFound, err.Error()
		}
		bin, lastFour = stored.BinNumber, stored.LastFourDigits
		cardToken, cardUserKey = stored.CardToken, stored.CardUserKey
	case len(card.CardNumber) >= 12:
		if declined, ok := declinedCards[card.CardNumber]; ok {
			return nil, declined[0], declined[1]
		}
		bin, lastFour = card.CardNumber[:6], card.CardNumber[len(card.CardNumber)-4:]
	default:
		return nil, CodeInvalidRequest, "cardNumber is invalid"
	}
	info := lookupCard(bin)

	currency := string(req.Currency)
	if currency == "" {
		currency = string(iyzipay.CurrencyTRY)
	}
	installment := req.Installment
	if installment == 0 {
		installment = 1
	}

	authCode, err := h.rng.GenerateInt(1000000)
	if err != nil {
		return nil, CodeDoNotHonour, "authorization failed"
	}

	price, paidPrice := *req.Price, *req.PaidPrice
	merchantCommission := paidPrice.Sub(price)
	p := &iyzipay.Payment{
		Resource:                     h.resource(req.Request),
		Price:                        price,
		PaidPrice:                    paidPrice,
		Currency:                     currency,
		Installment:                  installment,
		PaymentStatus:                "SUCCESS",
		FraudStatus:                  1,
		MerchantCommissionRate:       merchantCommission.Div(price).Mul(hundred).Round(8),
		MerchantCommissionRateAmount: merchantCommission,
		IyziCommissionFee:            iyziCommissionFee,
		CardType:                     info.cardType,
		CardAssociation:              info.association,
		CardFamily:                   info.family,
		CardToken:                    cardToken,
		CardUserKey:                  cardUserKey,
		BinNumber:                    bin,
		LastFourDigits:               lastFour,
		BasketID:                     req.BasketID,
		ConnectorName:                req.ConnectorName,
		AuthCode:                     fmt.Sprintf("%06d", authCode),
		Phase:                        "AUTH",
		PosOrderID:                   req.PosOrderID,
		HostReference:                "mock" + strconv.FormatInt(h.now().UnixNano(), 36),
	}
	p.PaymentItems = splitBasket(req.BasketItems, price, paidPrice, currency)
	for _, item := range p.PaymentItems {
		p.IyziCommissionRateAmount = p.IyziCommissionRateAmount.Add(item.IyziCommissionRateAmount)
	}

	if card.CardToken == "" && card.RegisterCard != nil && *card.RegisterCard == 1 {
		stored := h.newCard(req.Buyer, card.CardUserKey, &iyzipay.CardInformation{
			CardAlias:      card.CardAlias,
			CardNumber:     card.CardNumber,
			ExpireYear:     card.ExpireYear,
			ExpireMonth:    card.ExpireMonth,
			CardHolderName: card.CardHolderName,
		})
		h.store.SaveCard(stored)
		p.CardToken, p.CardUserKey = stored.CardToken, stored.CardUserKey
	}

	return p, "", ""
}

// splitBasket spreads paidPrice over the basket in proportion to item
// prices. The last item absorbs rounding so that the parts add up exactly.
func splitBasket(items []iyzipay.BasketItem, price, paidPrice decimal.Decimal, currency string) []iyzipay.PaymentItem {
	out := make([]iyzipay.PaymentItem, 0, len(items))
	allocated := decimal.Zero
	for i, item := range items {
		itemPaid := item.Price.Mul(paidPrice).DivRound(price, 8)
		if i == len(items)-1 {
			itemPaid = paidPrice.Sub(allocated)
		}
		allocated = allocated.Add(itemPaid)

		rateAmount := itemPaid.Mul(iyziCommissionRate).Round(8)
		fee := iyziCommissionFee.Mul(itemPaid).DivRound(paidPrice, 8)
		merchantPayout := itemPaid.Sub(rateAmount).Sub(fee)

		pi := iyzipay.PaymentItem{
			ItemID:                       item.ID,
			TransactionStatus:            itemApproved,
			Price:                        *item.Price,
			PaidPrice:                    itemPaid,
			MerchantCommissionRate:       itemPaid.Sub(*item.Price).Div(*item.Price).Mul(hundred).Round(8),
			MerchantCommissionRateAmount: itemPaid.Sub(*item.Price),
			IyziCommissionRateAmount:     rateAmount,
			IyziCommissionFee:            fee,
			SubMerchantKey:               item.SubMerchantKey,
		}
		if item.SubMerchantKey != "" {
			pi.TransactionStatus = itemWaitingApproval
			if item.SubMerchantPrice != nil {
				pi.SubMerchantPrice = *item.SubMerchantPrice
				pi.SubMerchantPayoutAmount = *item.SubMerchantPrice
				merchantPayout = merchantPayout.Sub(*item.SubMerchantPrice)
			}
		}
		pi.MerchantPayoutAmount = merchantPayout
		pi.ConvertedPayout = &iyzipay.ConvertedPayout{
			PaidPrice:                itemPaid,
			IyziCommissionRateAmount: rateAmount,
			IyziCommissionFee:        fee,
			SubMerchantPayoutAmount:  pi.SubMerchantPayoutAmount,
			MerchantPayoutAmount:     merchantPayout,
			IyziConversionRate:       decimal.Zero,
			IyziConversionRateAmount: decimal.Zero,
			Currency:                 currency,
		}
		out = append(out, pi)
	}
	return out
}

// CreatePayment handles POST /payment/auth
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.CreatePaymentRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	p, code, msg := h.authorize(&req)
	if code != "" {
		h.respondError(w, http.StatusOK, req.Request, code, msg)
		return
	}
	h.store.SavePayment(p, false)

	h.logger.Info("payment created", "payment_id", p.PaymentID, "paid_price", p.PaidPrice.String())
	respondJSON(w, http.StatusOK, p)
}

// RetrievePayment handles POST /payment/detail
func (h *Handler) RetrievePayment(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.RetrievePaymentRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	var (
		p   *iyzipay.Payment
		err error
	)
	switch {
	case req.PaymentID != "":
		p, err = h.store.Payment(req.PaymentID)
	case req.PaymentConversationID != "":
		p, err = h.store.PaymentByConversation(req.PaymentConversationID)
	default:
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "paymentId or paymentConversationId is required")
		return
	}
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	p.Resource = h.resource(req.Request)
	respondJSON(w, http.StatusOK, p)
}

// InitializeThreeds handles POST /payment/3dsecure/initialize
func (h *Handler) InitializeThreeds(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.CreatePaymentRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if req.CallbackURL == "" {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "callbackUrl is required")
		return
	}
	p, code, msg := h.authorize(&req)
	if code != "" {
		h.respondError(w, http.StatusOK, req.Request, code, msg)
		return
	}
	p.PaymentStatus = "INIT_THREEDS"
	p.Phase = ""
	h.store.SavePayment(p, true)

	page := fmt.Sprintf(`<!doctype html><html><body onload="document.forms[0].submit()">`+
		`<form method="post" action="%s">`+
		`<input type="hidden" name="status" value="success">`+
		`<input type="hidden" name="paymentId" value="%s">`+
		`<input type="hidden" name="conversationId" value="%s">`+
		`<input type="hidden" name="mdStatus" value="1">`+
		`</form></body></html>`,
		html.EscapeString(req.CallbackURL), p.PaymentID, html.EscapeString(req.ConversationID))

	respondJSON(w, http.StatusOK, iyzipay.ThreedsInitialize{
		Resource:    h.resource(req.Request),
		HTMLContent: base64.StdEncoding.EncodeToString([]byte(page)),
	})
}

// CreateThreedsPayment handles POST /payment/3dsecure/auth
func (h *Handler) CreateThreedsPayment(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.CreateThreedsPaymentRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	p, err := h.store.CompleteThreeds(req.PaymentID)
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	p.Resource = h.resource(req.Request)
	respondJSON(w, http.StatusOK, p)
}

// CreateCancel handles POST /payment/cancel
func (h *Handler) CreateCancel(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.CreateCancelRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	p, err := h.store.Cancel(req.PaymentID)
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	h.logger.Info("payment cancelled", "payment_id", p.PaymentID, "reason", req.Reason)
	respondJSON(w, http.StatusOK, iyzipay.Cancel{
		Resource:      h.resource(req.Request),
		PaymentID:     p.PaymentID,
		Price:         p.PaidPrice,
		Currency:      p.Currency,
		ConnectorName: p.ConnectorName,
		AuthCode:      p.AuthCode,
		HostReference: p.HostReference,
	})
}

// CreateRefund handles POST /payment/refund
func (h *Handler) CreateRefund(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.CreateRefundRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if req.Price == nil || !req.Price.IsPositive() {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "price must be greater than zero")
		return
	}

	paymentID, err := h.store.Refund(req.PaymentTransactionID, *req.Price)
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}
	p, err := h.store.Payment(paymentID)
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	h.logger.Info("payment refunded", "payment_id", paymentID, "transaction_id", req.PaymentTransactionID, "amount", req.Price.String())
	respondJSON(w, http.StatusOK, iyzipay.Refund{
		Resource:             h.resource(req.Request),
		PaymentID:            paymentID,
		PaymentTransactionID: req.PaymentTransactionID,
		Price:                *req.Price,
		Currency:             p.Currency,
		ConnectorName:        p.ConnectorName,
		AuthCode:             p.AuthCode,
		HostReference:        p.HostReference,
	})
}

// UpdatePaymentItem handles PUT /payment/item
func (h *Handler) UpdatePaymentItem(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.UpdatePaymentItemRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if req.SubMerchantKey == "" || req.SubMerchantPrice == nil {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "subMerchantKey and subMerchantPrice are required")
		return
	}

	item, err := h.store.UpdateItem(strconv.FormatInt(req.PaymentTransactionID, 10), func(pi *iyzipay.PaymentItem) {
		delta := req.SubMerchantPrice.Sub(pi.SubMerchantPrice)
		pi.SubMerchantKey = req.SubMerchantKey
		pi.SubMerchantPrice = *req.SubMerchantPrice
		pi.SubMerchantPayoutAmount = *req.SubMerchantPrice
		pi.MerchantPayoutAmount = pi.MerchantPayoutAmount.Sub(delta)
	})
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	respondJSON(w, http.StatusOK, iyzipay.PaymentItemUpdate{
		Resource:    h.resource(req.Request),
		PaymentItem: *item,
	})
}

// CreateApproval handles POST /payment/iyzipos/item/approve
func (h *Handler) CreateApproval(w http.ResponseWriter, r *http.Request) {
	h.setApproval(w, r, itemApproved)
}

// CreateDisapproval handles POST /payment/iyzipos/item/disapprove
func (h *Handler) CreateDisapproval(w http.ResponseWriter, r *http.Request) {
	h.setApproval(w, r, itemWaitingApproval)
}

func (h *Handler) setApproval(w http.ResponseWriter, r *http.Request, status int) {
	var req iyzipay.CreateApprovalRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	_, err := h.store.UpdateItem(req.PaymentTransactionID, func(pi *iyzipay.PaymentItem) {
		pi.TransactionStatus = status
	})
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	respondJSON(w, http.StatusOK, iyzipay.Approval{
		Resource:             h.resource(req.Request),
		PaymentTransactionID: req.PaymentTransactionID,
	})
}

// InitializeCheckoutForm handles POST /payment/iyzipos/checkoutform/initialize/auth/ecom
func (h *Handler) InitializeCheckoutForm(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.CreateCheckoutFormInitializeRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if code, msg := validateBasket(req.Price, req.PaidPrice, req.BasketItems); code != "" {
		h.respondError(w, http.StatusOK, req.Request, code, msg)
		return
	}
	if req.CallbackURL == "" {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "callbackUrl is required")
		return
	}

	token := uuid.NewString()
	h.store.SaveCheckout(token, &req)

	pageURL := "http://" + r.Host + "/checkout?token=" + token
	respondJSON(w, http.StatusOK, iyzipay.CheckoutFormInitialize{
		Resource:            h.resource(req.Request),
		Token:               token,
		CheckoutFormContent: `<script type="text/javascript">var iyziInit = {token:"` + token + `"};</script>`,
		TokenExpireTime:     1800,
		PaymentPageURL:      pageURL,
	})
}

// checkoutCard is charged when a checkout form is completed.
const checkoutCard = "5528790000000008"

// RetrieveCheckoutForm handles POST /payment/iyzipos/checkoutform/auth/ecom/detail
func (h *Handler) RetrieveCheckoutForm(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.RetrieveCheckoutFormRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	form, err := h.store.TakeCheckout(req.Token)
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	p, code, msg := h.authorize(&iyzipay.CreatePaymentRequest{
		Request:     req.Request,
		Price:       form.Price,
		PaidPrice:   form.PaidPrice,
		BasketID:    form.BasketID,
		BasketItems: form.BasketItems,
		Buyer:       form.Buyer,
		Currency:    form.Currency,
		PosOrderID:  form.PosOrderID,
		PaymentCard: &iyzipay.PaymentCard{CardNumber: checkoutCard},
	})
	if code != "" {
		h.respondError(w, http.StatusOK, req.Request, code, msg)
		return
	}
	h.store.SavePayment(p, false)

	respondJSON(w, http.StatusOK, iyzipay.CheckoutForm{
		Payment:     *p,
		Token:       req.Token,
		CallbackURL: form.CallbackURL,
	})
}
