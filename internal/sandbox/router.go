package sandbox

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

// SetupRouter creates and configures the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	r.Use(h.RecoveryMiddleware)
	r.Use(h.LoggingMiddleware)
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)

	// Public
	r.HandleFunc("/payment/test", h.APITest).Methods("GET")

	// IYZWS
	r.HandleFunc("/payment/auth", h.CreatePayment).Methods("POST")
	r.HandleFunc("/payment/detail", h.RetrievePayment).Methods("POST")
	r.HandleFunc("/payment/3dsecure/initialize", h.InitializeThreeds).Methods("POST")
	r.HandleFunc("/payment/3dsecure/auth", h.CreateThreedsPayment).Methods("POST")
	r.HandleFunc("/payment/cancel", h.CreateCancel).Methods("POST")
	r.HandleFunc("/payment/refund", h.CreateRefund).Methods("POST")
	r.HandleFunc("/payment/item", h.UpdatePaymentItem).Methods("PUT")
	r.HandleFunc("/payment/bin/check", h.RetrieveBinNumber).Methods("POST")
	r.HandleFunc("/payment/iyzipos/installment", h.RetrieveInstallmentInfo).Methods("POST")
	r.HandleFunc("/payment/iyzipos/checkoutform/initialize/auth/ecom", h.InitializeCheckoutForm).Methods("POST")
	r.HandleFunc("/payment/iyzipos/checkoutform/auth/ecom/detail", h.RetrieveCheckoutForm).Methods("POST")
	r.HandleFunc("/payment/iyzipos/item/approve", h.CreateApproval).Methods("POST")
	r.HandleFunc("/payment/iyzipos/item/disapprove", h.CreateDisapproval).Methods("POST")

	r.HandleFunc("/cardstorage/card", h.CreateCard).Methods("POST")
	r.HandleFunc("/cardstorage/card", h.DeleteCard).Methods("DELETE")
	r.HandleFunc("/cardstorage/cards", h.RetrieveCardList).Methods("POST")

	r.HandleFunc("/onboarding/submerchant", h.CreateSubMerchant).Methods("POST")
	r.HandleFunc("/onboarding/submerchant", h.UpdateSubMerchant).Methods("PUT")
	r.HandleFunc("/onboarding/submerchant/detail", h.RetrieveSubMerchant).Methods("POST")

	// IYZWSv2
	v2 := r.PathPrefix("/v2").Subrouter()
	v2.Use(h.V2AuthMiddleware)
	v2.HandleFunc("/iyzilink/products", h.CreateIyziLink).Methods("POST")
	v2.HandleFunc("/iyzilink/products", h.RetrieveAllIyziLinks).Methods("GET")
	v2.HandleFunc("/iyzilink/products/{token}", h.RetrieveIyziLink).Methods("GET")
	v2.HandleFunc("/iyzilink/products/{token}", h.UpdateIyziLink).Methods("PUT")
	v2.HandleFunc("/iyzilink/products/{token}", h.DeleteIyziLink).Methods("DELETE")

	return r
}

// NotFound handles unknown routes
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, http.StatusNotFound, iyzipay.Request{}, CodeNotFound, "Resource not found")
}
