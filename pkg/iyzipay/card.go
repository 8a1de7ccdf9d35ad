package iyzipay

import (
	"context"
	"net/http"
	"net/url"
)

// CardInformation is the card being stored.
type CardInformation struct {
	CardAlias      string `json:"cardAlias,omitempty" pki:"cardAlias"`
	CardNumber     string `json:"cardNumber,omitempty" pki:"cardNumber"`
	ExpireYear     string `json:"expireYear,omitempty" pki:"expireYear"`
	ExpireMonth    string `json:"expireMonth,omitempty" pki:"expireMonth"`
	CardHolderName string `json:"cardHolderName,omitempty" pki:"cardHolderName"`
}

// CreateCardRequest stores a card. Without CardUserKey a new card user is
// created for Email.
type CreateCardRequest struct {
	Request
	ExternalID  string           `json:"externalId,omitempty" pki:"externalId"`
	Email       string           `json:"email,omitempty" pki:"email"`
	CardUserKey string           `json:"cardUserKey,omitempty" pki:"cardUserKey"`
	Card        *CardInformation `json:"card,omitempty" pki:"card"`
}

// DeleteCardRequest removes a stored card.
type DeleteCardRequest struct {
	Request
	CardUserKey string `json:"cardUserKey,omitempty" pki:"cardUserKey"`
	CardToken   string `json:"cardToken,omitempty" pki:"cardToken"`
}

// RetrieveCardListRequest lists the cards of a card user.
type RetrieveCardListRequest struct {
	Request
	CardUserKey string `json:"cardUserKey,omitempty" pki:"cardUserKey"`
}

// CreateCardManagementPageInitializeRequest opens a hosted page where a card
// user manages their stored cards.
type CreateCardManagementPageInitializeRequest struct {
	Request
	AddNewCardEnabled *bool  `json:"addNewCardEnabled,omitempty" pki:"addNewCardEnabled"`
	ValidateNewCard   *bool  `json:"validateNewCard,omitempty" pki:"validateNewCard"`
	ExternalID        string `json:"externalId,omitempty" pki:"externalId"`
	Email             string `json:"email,omitempty" pki:"email"`
	CardUserKey       string `json:"cardUserKey,omitempty" pki:"cardUserKey"`
	CallbackURL       string `json:"callbackUrl,omitempty" pki:"callbackUrl"`
	DebitCardAllowed  *bool  `json:"debitCardAllowed,omitempty" pki:"debitCardAllowed"`
}

// RetrieveCardManagementPageCardRequest lists the cards saved through a card
// management page. Only the envelope is sent, in the query string.
type RetrieveCardManagementPageCardRequest struct {
	Request
	PageToken string `json:"-" pki:"token"`
}

// Card is a stored card.
type Card struct {
	Resource
	ExternalID      string `json:"externalId"`
	Email           string `json:"email"`
	CardUserKey     string `json:"cardUserKey"`
	CardToken       string `json:"cardToken"`
	CardAlias       string `json:"cardAlias"`
	BinNumber       string `json:"binNumber"`
	LastFourDigits  string `json:"lastFourDigits"`
	CardType        string `json:"cardType"`
	CardAssociation string `json:"cardAssociation"`
	CardFamily      string `json:"cardFamily"`
	CardBankCode    int64  `json:"cardBankCode"`
	CardBankName    string `json:"cardBankName"`
}

// CardDetail is one entry of a card list.
type CardDetail struct {
	CardToken       string `json:"cardToken"`
	CardAlias       string `json:"cardAlias"`
	BinNumber       string `json:"binNumber"`
	LastFourDigits  string `json:"lastFourDigits"`
	CardType        string `json:"cardType"`
	CardAssociation string `json:"cardAssociation"`
	CardFamily      string `json:"cardFamily"`
	CardBankCode    int64  `json:"cardBankCode"`
	CardBankName    string `json:"cardBankName"`
}

// CardManagementPageInitialize carries the URL of a card management page.
type CardManagementPageInitialize struct {
	Resource
	ExternalID  string `json:"externalId"`
	Token       string `json:"token"`
	CardPageURL string `json:"cardPageUrl"`
}

// CardManagementPageCard is the result of RetrieveCardManagementPageCards.
type CardManagementPageCard struct {
	Resource
	ExternalID  string       `json:"externalId"`
	CardUserKey string       `json:"cardUserKey"`
	CardDetails []CardDetail `json:"cardDetails"`
}

// CardList is the result of RetrieveCardList.
type CardList struct {
	Resource
	CardUserKey string       `json:"cardUserKey"`
	CardDetails []CardDetail `json:"cardDetails"`
}

// CreateCard stores a card.
func (c *Client) CreateCard(ctx context.Context, req *CreateCardRequest) (*Card, error) {
	var resp Card
	if err := c.doRequest(ctx, http.MethodPost, "/cardstorage/card", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCard removes a stored card.
func (c *Client) DeleteCard(ctx context.Context, req *DeleteCardRequest) (*Card, error) {
	var resp Card
	if err := c.doRequest(ctx, http.MethodDelete, "/cardstorage/card", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveCardList lists the stored cards of a card user.
func (c *Client) RetrieveCardList(ctx context.Context, req *RetrieveCardListRequest) (*CardList, error) {
	var resp CardList
	if err := c.doRequest(ctx, http.MethodPost, "/cardstorage/cards", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InitializeCardManagementPage creates a card management page.
func (c *Client) InitializeCardManagementPage(ctx context.Context, req *CreateCardManagementPageInitializeRequest) (*CardManagementPageInitialize, error) {
	var resp CardManagementPageInitialize
	if err := c.doRequest(ctx, http.MethodPost, "/v1/card-management/pages", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveCardManagementPageCards lists the cards of a card management page.
func (c *Client) RetrieveCardManagementPageCards(ctx context.Context, req *RetrieveCardManagementPageCardRequest) (*CardManagementPageCard, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if req.PageToken == "" {
		return nil, ErrMissingToken
	}
	endpoint := "/v1/card-management/pages/" + url.PathEscape(req.PageToken) + "/cards"

	var resp CardManagementPageCard
	if err := c.doRequestQuery(ctx, http.MethodGet, endpoint, req.QueryParams(), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
