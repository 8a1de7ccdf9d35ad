package sandbox

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

const (
	linkTokenSize    = 6
	defaultPageCount = 10
	maxPageCount     = 100
	linkBaseURL      = "https://sandbox.iyzi.link/"
	linkImageBaseURL = "https://sandbox-img.iyzi.link/"
)

// queryRequest reads the envelope IYZWSv2 requests carry in the URL.
func queryRequest(r *http.Request) iyzipay.Request {
	q := r.URL.Query()
	return iyzipay.Request{
		Locale:         iyzipay.Locale(q.Get("locale")),
		ConversationID: q.Get("conversationId"),
	}
}

func (h *Handler) decodeLink(w http.ResponseWriter, r *http.Request) (*iyzipay.IyziLinkSaveRequest, bool) {
	var req iyzipay.IyziLinkSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, queryRequest(r), CodeInvalidRequest, "Invalid request body")
		return nil, false
	}
	if req.Name == "" {
		h.respondError(w, http.StatusOK, queryRequest(r), CodeInvalidRequest, "name is required")
		return nil, false
	}
	if req.Price == nil || !req.Price.IsPositive() {
		h.respondError(w, http.StatusOK, queryRequest(r), CodeInvalidRequest, "price must be greater than zero")
		return nil, false
	}
	return &req, true
}

func applyLink(item *iyzipay.IyziLinkItem, req *iyzipay.IyziLinkSaveRequest) {
	item.Name = req.Name
	item.Description = req.Description
	item.Price = *req.Price
	item.Currency = string(req.Currency)
	if item.Currency == "" {
		item.Currency = string(iyzipay.CurrencyTRY)
	}
	item.AddressIgnorable = req.AddressIgnorable != nil && *req.AddressIgnorable
	item.InstallmentRequested = req.InstallmentRequested != nil && *req.InstallmentRequested
	item.SoldLimit = req.SoldLimit
	item.RemainingSoldLimit = nil
	if req.SoldLimit != nil {
		remaining := *req.SoldLimit - item.SoldCount
		item.RemainingSoldLimit = &remaining
	}
}

func (h *Handler) respondLinkSave(w http.ResponseWriter, r *http.Request, item *iyzipay.IyziLinkItem) {
	respondJSON(w, http.StatusOK, iyzipay.IyziLinkSaveResource{
		Resource: h.resource(queryRequest(r)),
		Data: &iyzipay.IyziLinkSave{
			Token:    item.Token,
			URL:      item.URL,
			ImageURL: item.ImageURL,
		},
	})
}

// CreateIyziLink handles POST /v2/iyzilink/products
func (h *Handler) CreateIyziLink(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLink(w, r)
	if !ok {
		return
	}

	token, err := h.rng.Alphanumeric(linkTokenSize)
	if err != nil {
		h.logger.Error("failed to generate link token", "error", err)
		h.respondError(w, http.StatusInternalServerError, queryRequest(r), "INTERNAL_ERROR", "Internal server error")
		return
	}

	item := iyzipay.IyziLinkItem{
		Token:    token,
		Status:   iyzipay.IyziLinkStatusActive,
		URL:      linkBaseURL + token,
		ImageURL: linkImageBaseURL + token + ".jpg",
	}
	applyLink(&item, req)
	h.store.SaveLink(item, h.now())

	h.logger.Info("iyzilink created", "token", token)
	h.respondLinkSave(w, r, &item)
}

// UpdateIyziLink handles PUT /v2/iyzilink/products/{token}
func (h *Handler) UpdateIyziLink(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	item, err := h.store.Link(token)
	if err != nil {
		h.respondStoreError(w, queryRequest(r), err)
		return
	}

	req, ok := h.decodeLink(w, r)
	if !ok {
		return
	}
	applyLink(item, req)
	h.store.SaveLink(*item, h.now())

	h.respondLinkSave(w, r, item)
}

// RetrieveIyziLink handles GET /v2/iyzilink/products/{token}
func (h *Handler) RetrieveIyziLink(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.Link(mux.Vars(r)["token"])
	if err != nil {
		h.respondStoreError(w, queryRequest(r), err)
		return
	}

	respondJSON(w, http.StatusOK, iyzipay.IyziLinkResource{
		Resource: h.resource(queryRequest(r)),
		Data:     item,
	})
}

// DeleteIyziLink handles DELETE /v2/iyzilink/products/{token}
func (h *Handler) DeleteIyziLink(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.DeleteLink(mux.Vars(r)["token"])
	if err != nil {
		h.respondStoreError(w, queryRequest(r), err)
		return
	}

	h.logger.Info("iyzilink deleted", "token", item.Token)
	respondJSON(w, http.StatusOK, iyzipay.IyziLinkResource{
		Resource: h.resource(queryRequest(r)),
		Data:     item,
	})
}

// RetrieveAllIyziLinks handles GET /v2/iyzilink/products
func (h *Handler) RetrieveAllIyziLinks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("productType") != "IYZILINK" {
		h.respondError(w, http.StatusOK, queryRequest(r), CodeUnsupportedProduct, "productType must be IYZILINK")
		return
	}

	page, count := 1, defaultPageCount
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.respondError(w, http.StatusOK, queryRequest(r), CodeInvalidRequest, "page must be a positive number")
			return
		}
		page = n
	}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.respondError(w, http.StatusOK, queryRequest(r), CodeInvalidRequest, "count must be a positive number")
			return
		}
		count = min(n, maxPageCount)
	}

	paging := h.store.Links(page, count)
	respondJSON(w, http.StatusOK, iyzipay.IyziLinkPagingResource{
		Resource: h.resource(queryRequest(r)),
		Data:     &paging,
	})
}
