package sandbox

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

// newCard builds a stored card for info, creating a card user when
// cardUserKey is empty.
func (h *Handler) newCard(buyer *iyzipay.Buyer, cardUserKey string, info *iyzipay.CardInformation) iyzipay.Card {
	if cardUserKey == "" {
		cardUserKey = uuid.NewString()
	}
	bin := lookupCard(info.CardNumber)
	card := iyzipay.Card{
		CardUserKey:     cardUserKey,
		CardToken:       uuid.NewString(),
		CardAlias:       info.CardAlias,
		BinNumber:       info.CardNumber[:6],
		LastFourDigits:  info.CardNumber[len(info.CardNumber)-4:],
		CardType:        bin.cardType,
		CardAssociation: bin.association,
		CardFamily:      bin.family,
		CardBankCode:    bin.bankCode,
		CardBankName:    bin.bankName,
	}
	if buyer != nil {
		card.Email = buyer.Email
	}
	return card
}

// CreateCard handles POST /cardstorage/card
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.CreateCardRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if req.Card == nil || len(req.Card.CardNumber) < 12 {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "cardNumber is invalid")
		return
	}
	if req.CardUserKey == "" && req.Email == "" {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "email is required for a new card user")
		return
	}

	card := h.newCard(&iyzipay.Buyer{Email: req.Email}, req.CardUserKey, req.Card)
	card.ExternalID = req.ExternalID
	h.store.SaveCard(card)

	card.Resource = h.resource(req.Request)
	respondJSON(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /cardstorage/card
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.DeleteCardRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if err := h.store.DeleteCard(req.CardUserKey, req.CardToken); err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	respondJSON(w, http.StatusOK, iyzipay.Card{Resource: h.resource(req.Request)})
}

// RetrieveCardList handles POST /cardstorage/cards
func (h *Handler) RetrieveCardList(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.RetrieveCardListRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	resp := iyzipay.CardList{
		Resource:    h.resource(req.Request),
		CardUserKey: req.CardUserKey,
		CardDetails: []iyzipay.CardDetail{},
	}
	for _, c := range h.store.Cards(req.CardUserKey) {
		resp.CardDetails = append(resp.CardDetails, iyzipay.CardDetail{
			CardToken:       c.CardToken,
			CardAlias:       c.CardAlias,
			BinNumber:       c.BinNumber,
			LastFourDigits:  c.LastFourDigits,
			CardType:        c.CardType,
			CardAssociation: c.CardAssociation,
			CardFamily:      c.CardFamily,
			CardBankCode:    c.CardBankCode,
			CardBankName:    c.CardBankName,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}
