// Package sandbox implements an in-process stand-in for the iyzico API.
//
// Every signed endpoint verifies the request the way iyzico does: IYZWS
// requests are decoded into their typed form and re-canonicalized, IYZWSv2
// requests are checked against the request URI and raw body. State lives in
// memory and is lost on restart.
package sandbox

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexbotov/iyzipay-go/internal/auth"
	"github.com/alexbotov/iyzipay-go/internal/canonical"
	"github.com/alexbotov/iyzipay-go/internal/rng"
	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

// Error codes returned in failure resources
const (
	CodeInvalidRequest     = "11"
	CodeInvalidSignature   = "1000"
	CodeUnknownAPIKey      = "1001"
	CodeNotFound           = "5000"
	CodeBasketMismatch     = "5152"
	CodeAlreadyCancelled   = "5093"
	CodeRefundExceedsPaid  = "5140"
	CodeSubMerchantExists  = "2001"
	CodeUnknownBin         = "5066"
	CodeInsufficientFunds  = "10051"
	CodeDoNotHonour        = "10005"
	CodeUnsupportedProduct = "5400"
)

// Handler contains all HTTP handlers
type Handler struct {
	keys   auth.KeyStore
	store  *Store
	rng    *rng.Service
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new sandbox handler accepting the given credentials
func New(keys auth.KeyStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		keys:   keys,
		store:  NewStore(),
		rng:    rng.New(),
		logger: logger.With("component", "sandbox"),
		now:    time.Now,
	}
}

// Store exposes the handler's state, mainly for tests.
func (h *Handler) Store() *Store {
	return h.store
}

// resource builds a success envelope echoing the request's locale and
// conversation id.
func (h *Handler) resource(req iyzipay.Request) iyzipay.Resource {
	return iyzipay.Resource{
		Status:         iyzipay.StatusSuccess,
		Locale:         string(req.Locale),
		SystemTime:     h.now().UnixMilli(),
		ConversationID: req.ConversationID,
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, req iyzipay.Request, code, message string) {
	res := h.resource(req)
	res.Status = iyzipay.StatusFailure
	res.ErrorCode = code
	res.ErrorMessage = message
	respondJSON(w, status, res)
}

func (h *Handler) respondAuthError(w http.ResponseWriter, err error) {
	h.logger.Warn("authentication failed", "error", err)
	switch {
	case errors.Is(err, auth.ErrUnknownAPIKey):
		h.respondError(w, http.StatusUnauthorized, iyzipay.Request{}, CodeUnknownAPIKey, "api bilgileri bulunamadı")
	default:
		h.respondError(w, http.StatusUnauthorized, iyzipay.Request{}, CodeInvalidSignature, "Geçersiz imza")
	}
}

// respondStoreError maps store errors to failure resources.
func (h *Handler) respondStoreError(w http.ResponseWriter, req iyzipay.Request, err error) {
	switch {
	case errors.Is(err, ErrAlreadyCancelled):
		h.respondError(w, http.StatusOK, req, CodeAlreadyCancelled, err.Error())
	case errors.Is(err, ErrRefundExceedsPaid):
		h.respondError(w, http.StatusOK, req, CodeRefundExceedsPaid, err.Error())
	case errors.Is(err, ErrSubMerchantExists):
		h.respondError(w, http.StatusOK, req, CodeSubMerchantExists, err.Error())
	default:
		h.respondError(w, http.StatusNotFound, req, CodeNotFound, err.Error())
	}
}

// decodeSigned reads an IYZWS request into v and verifies its signature
// against the canonical form of v. It writes the failure response itself.
func (h *Handler) decodeSigned(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil || json.Unmarshal(body, v) != nil {
		h.respondError(w, http.StatusBadRequest, iyzipay.Request{}, CodeInvalidRequest, "Invalid request body")
		return false
	}

	pki, err := canonical.Marshal(v)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, iyzipay.Request{}, CodeInvalidRequest, "Invalid request body")
		return false
	}

	if _, err := auth.VerifyV1(h.keys, r.Header.Get(auth.AuthorizationHeader), r.Header.Get(auth.RandomHeader), pki); err != nil {
		h.logger.Debug("rejected canonical form", "pki", pki)
		h.respondAuthError(w, err)
		return false
	}
	return true
}

// APITest handles GET /payment/test
func (h *Handler) APITest(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.resource(iyzipay.Request{Locale: iyzipay.LocaleTR}))
}
