package sandbox

import (
	"net/http"

	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

type requiredField struct{ name, value string }

// missingSubMerchantField names the first field a seller of the given type
// must provide but did not.
func missingSubMerchantField(req *iyzipay.CreateSubMerchantRequest) string {
	required := []requiredField{
		{"subMerchantExternalId", req.SubMerchantExternalID},
		{"subMerchantType", string(req.SubMerchantType)},
		{"email", req.Email},
		{"address", req.Address},
		{"iban", req.IBAN},
	}
	switch req.SubMerchantType {
	case iyzipay.SubMerchantTypePersonal:
		required = append(required,
			requiredField{"contactName", req.ContactName},
			requiredField{"identityNumber", req.IdentityNumber})
	case iyzipay.SubMerchantTypePrivateCompany:
		required = append(required,
			requiredField{"taxOffice", req.TaxOffice},
			requiredField{"identityNumber", req.IdentityNumber},
			requiredField{"legalCompanyTitle", req.LegalCompanyTitle})
	case iyzipay.SubMerchantTypeLimitedOrJointStock:
		required = append(required,
			requiredField{"taxOffice", req.TaxOffice},
			requiredField{"taxNumber", req.TaxNumber},
			requiredField{"legalCompanyTitle", req.LegalCompanyTitle})
	case "":
	default:
		return "subMerchantType"
	}
	for _, f := range required {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}

// CreateSubMerchant handles POST /onboarding/submerchant
func (h *Handler) CreateSubMerchant(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.CreateSubMerchantRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if field := missingSubMerchantField(&req); field != "" {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, field+" is required")
		return
	}

	sm := &iyzipay.SubMerchant{
		Name:                  req.Name,
		Email:                 req.Email,
		GsmNumber:             req.GsmNumber,
		Address:               req.Address,
		IBAN:                  req.IBAN,
		TaxOffice:             req.TaxOffice,
		ContactName:           req.ContactName,
		ContactSurname:        req.ContactSurname,
		LegalCompanyTitle:     req.LegalCompanyTitle,
		SwiftCode:             req.SwiftCode,
		Currency:              string(req.Currency),
		SubMerchantExternalID: req.SubMerchantExternalID,
		IdentityNumber:        req.IdentityNumber,
		TaxNumber:             req.TaxNumber,
		SubMerchantType:       string(req.SubMerchantType),
	}
	if err := h.store.SaveSubMerchant(sm); err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	h.logger.Info("sub merchant created", "sub_merchant_key", sm.SubMerchantKey, "type", sm.SubMerchantType)
	respondJSON(w, http.StatusOK, iyzipay.SubMerchant{
		Resource:       h.resource(req.Request),
		SubMerchantKey: sm.SubMerchantKey,
	})
}

// UpdateSubMerchant handles PUT /onboarding/submerchant
func (h *Handler) UpdateSubMerchant(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.UpdateSubMerchantRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	if req.SubMerchantKey == "" {
		h.respondError(w, http.StatusOK, req.Request, CodeInvalidRequest, "subMerchantKey is required")
		return
	}

	sm, err := h.store.UpdateSubMerchant(req.SubMerchantKey, func(sm *iyzipay.SubMerchant) {
		set := func(dst *string, v string) {
			if v != "" {
				*dst = v
			}
		}
		set(&sm.Name, req.Name)
		set(&sm.Email, req.Email)
		set(&sm.GsmNumber, req.GsmNumber)
		set(&sm.Address, req.Address)
		set(&sm.IBAN, req.IBAN)
		set(&sm.TaxOffice, req.TaxOffice)
		set(&sm.ContactName, req.ContactName)
		set(&sm.ContactSurname, req.ContactSurname)
		set(&sm.LegalCompanyTitle, req.LegalCompanyTitle)
		set(&sm.SwiftCode, req.SwiftCode)
		set(&sm.Currency, string(req.Currency))
		set(&sm.IdentityNumber, req.IdentityNumber)
		set(&sm.TaxNumber, req.TaxNumber)
	})
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	sm.Resource = h.resource(req.Request)
	respondJSON(w, http.StatusOK, sm)
}

// RetrieveSubMerchant handles POST /onboarding/submerchant/detail
func (h *Handler) RetrieveSubMerchant(w http.ResponseWriter, r *http.Request) {
	var req iyzipay.RetrieveSubMerchantRequest
	if !h.decodeSigned(w, r, &req) {
		return
	}

	sm, err := h.store.SubMerchant(req.SubMerchantExternalID)
	if err != nil {
		h.respondStoreError(w, req.Request, err)
		return
	}

	sm.Resource = h.resource(req.Request)
	respondJSON(w, http.StatusOK, sm)
}
