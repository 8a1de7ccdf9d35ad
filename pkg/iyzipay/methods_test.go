package iyzipay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/alexbotov/iyzipay-go/internal/canonical"
)

func assertCanonical(t *testing.T, req interface{}, want string) {
	t.Helper()
	got, err := canonical.Marshal(req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Canonical form mismatch:\nexpected %s\ngot      %s", want, got)
	}
}

func successResponse(fields map[string]interface{}) map[string]interface{} {
	resp := map[string]interface{}{
		"status":         "success",
		"locale":         "tr",
		"systemTime":     1700000000000,
		"conversationId": "123456789",
	}
	for k, v := range fields {
		resp[k] = v
	}
	return resp
}

func TestInitializeBkm(t *testing.T) {
	req := &CreateBkmInitializeRequest{
		Request:             testEnvelope(),
		Price:               Price("1"),
		BasketID:            "B67832",
		PaymentGroup:        PaymentGroupProduct,
		CallbackURL:         "https://www.merchant.com/callback",
		EnabledInstallments: []int{2, 3, 6},
		Currency:            CurrencyTRY,
	}
	const pki = "[locale=tr,conversationId=123456789,price=1.0,basketId=B67832,paymentGroup=PRODUCT," +
		"callbackUrl=https://www.merchant.com/callback,enabledInstallments=[2, 3, 6]]"
	assertCanonical(t, req, pki)

	server := mockServer(t, http.MethodPost, "/payment/bkm/initialize", func(r *http.Request, body []byte) {
		expectV1(t, pki)(r, body)

		var sent map[string]interface{}
		if err := json.Unmarshal(body, &sent); err != nil {
			t.Errorf("Failed to decode body: %v", err)
			return
		}
		if sent["currency"] != "TRY" {
			t.Errorf("Expected currency TRY in body, got %v", sent["currency"])
		}
	}, successResponse(map[string]interface{}{"htmlContent": "PGh0bWw+", "token": "bkm-token"}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.InitializeBkm(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Token != "bkm-token" || resp.HTMLContent != "PGh0bWw+" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestRetrieveBkm(t *testing.T) {
	req := &RetrieveBkmRequest{Request: testEnvelope(), Token: "bkm-token"}
	const pki = "[locale=tr,conversationId=123456789,token=bkm-token]"

	server := mockServer(t, http.MethodPost, "/payment/bkm/auth/detail", expectV1(t, pki),
		successResponse(map[string]interface{}{
			"paymentId":   "11845",
			"paidPrice":   1.2,
			"token":       "bkm-token",
			"callbackUrl": "https://www.merchant.com/callback",
		}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.RetrieveBkm(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.PaymentID != "11845" || resp.Token != "bkm-token" {
		t.Errorf("Unexpected response %+v", resp)
	}
	if !resp.PaidPrice.Equal(*Price("1.2")) {
		t.Errorf("Expected paidPrice 1.2, got %s", resp.PaidPrice)
	}
}

func TestInitializePecco(t *testing.T) {
	req := &CreatePeccoInitializeRequest{
		Request:      testEnvelope(),
		Price:        Price("100"),
		PaidPrice:    Price("100.50"),
		BasketID:     "B1",
		PaymentGroup: PaymentGroupProduct,
		CallbackURL:  "https://www.merchant.com/callback",
		Currency:     CurrencyIRR,
	}
	const pki = "[locale=tr,conversationId=123456789,price=100.0,basketId=B1,paymentGroup=PRODUCT," +
		"callbackUrl=https://www.merchant.com/callback,paidPrice=100.5]"
	assertCanonical(t, req, pki)

	server := mockServer(t, http.MethodPost, "/payment/pecco/initialize", expectV1(t, pki),
		successResponse(map[string]interface{}{
			"redirectUrl":     "https://pecco.example/pay",
			"token":           "pecco-token",
			"tokenExpireTime": 1800,
		}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.InitializePecco(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Token != "pecco-token" || resp.TokenExpireTime != 1800 {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestCreatePeccoPayment(t *testing.T) {
	req := &CreatePeccoPaymentRequest{Request: testEnvelope(), Token: "pecco-token"}
	const pki = "[locale=tr,conversationId=123456789,token=pecco-token]"

	server := mockServer(t, http.MethodPost, "/payment/pecco/auth", expectV1(t, pki),
		successResponse(map[string]interface{}{"paymentId": "5", "token": "pecco-token"}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.CreatePeccoPayment(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.PaymentID != "5" || resp.Token != "pecco-token" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestInitializeApm(t *testing.T) {
	req := &CreateApmInitializeRequest{
		Request:             testEnvelope(),
		Price:               Price("1"),
		PaidPrice:           Price("1.2"),
		PaymentChannel:      PaymentChannelWeb,
		PaymentGroup:        PaymentGroupProduct,
		Currency:            CurrencyEUR,
		MerchantOrderID:     "mo-1",
		CountryCode:         "DE",
		AccountHolderName:   "John Doe",
		MerchantCallbackURL: "https://www.merchant.com/callback",
		ApmType:             ApmTypeSofort,
		BasketID:            "B1",
		BasketItems: []BasketItem{
			{ID: "BI101", Price: Price("1"), Name: "Binocular", Category1: "Collectibles", ItemType: BasketItemTypePhysical},
		},
	}
	const pki = "[locale=tr,conversationId=123456789,price=1.0,paidPrice=1.2,paymentChannel=WEB,paymentGroup=PRODUCT," +
		"currency=EUR,merchantOrderId=mo-1,countryCode=DE,accountHolderName=John Doe," +
		"merchantCallbackUrl=https://www.merchant.com/callback,apmType=SOFORT,basketId=B1," +
		"basketItems=[[id=BI101,price=1.0,name=Binocular,category1=Collectibles,itemType=PHYSICAL]]]"
	assertCanonical(t, req, pki)

	server := mockServer(t, http.MethodPost, "/payment/apm/initialize", expectV1(t, pki),
		successResponse(map[string]interface{}{
			"redirectUrl":   "https://sofort.example/pay",
			"paymentId":     "77",
			"paymentStatus": "WAITING",
		}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.InitializeApm(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.RedirectURL != "https://sofort.example/pay" || resp.PaymentID != "77" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestRetrieveApm(t *testing.T) {
	req := &RetrieveApmRequest{Request: testEnvelope(), PaymentID: "77"}
	const pki = "[locale=tr,conversationId=123456789,paymentId=77]"

	server := mockServer(t, http.MethodPost, "/payment/apm/retrieve", expectV1(t, pki),
		successResponse(map[string]interface{}{
			"paymentId":     "77",
			"apm":           "SOFORT",
			"iban":          "DE89370400440532013000",
			"paymentStatus": "SUCCESS",
		}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.RetrieveApm(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Apm != "SOFORT" || resp.IBAN != "DE89370400440532013000" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestInitializeIyziupForm(t *testing.T) {
	req := &CreateIyziupFormInitializeRequest{
		Request:             testEnvelope(),
		MerchantOrderID:     "mo-1",
		PaymentGroup:        PaymentGroupProduct,
		ForceThreeDS:        Int(0),
		EnabledInstallments: []int{1, 2},
		Currency:            CurrencyTRY,
		Price:               Price("1"),
		PaidPrice:           Price("1.2"),
		ShippingPrice:       Price("0"),
		CallbackURL:         "https://www.merchant.com/callback",
		OrderItems: []OrderItem{
			{ID: "OI1", Price: Price("1"), Name: "Book", Category1: "Books", ItemType: BasketItemTypePhysical},
		},
		InitialConsumer: &InitialConsumer{
			Name:        "John",
			AddressList: []IyziupAddress{{Alias: "home", City: "Istanbul"}},
		},
	}
	const pki = "[locale=tr,conversationId=123456789,merchantOrderId=mo-1,paymentGroup=PRODUCT,forceThreeDS=0," +
		"enabledInstallments=[1, 2],currency=TRY,price=1.0,paidPrice=1.2,shippingPrice=0.0," +
		"callbackUrl=https://www.merchant.com/callback," +
		"orderItems=[[id=OI1,price=1.0,name=Book,category1=Books,itemType=PHYSICAL]]," +
		"initialConsumer=[name=John,addressList=[[alias=home,city=Istanbul]]]]"
	assertCanonical(t, req, pki)

	server := mockServer(t, http.MethodPost, "/v1/iyziup/form/initialize", expectV1(t, pki),
		successResponse(map[string]interface{}{"token": "up-token", "content": "<script>", "tokenExpireTime": 600}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.InitializeIyziupForm(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Token != "up-token" || resp.Content != "<script>" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestRetrieveIyziupForm(t *testing.T) {
	req := &RetrieveIyziupFormRequest{Request: testEnvelope(), Token: "up-token"}
	const pki = "[locale=tr,conversationId=123456789,token=up-token]"

	server := mockServer(t, http.MethodPost, "/v1/iyziup/form/order/retrieve", expectV1(t, pki),
		successResponse(map[string]interface{}{
			"orderResponseStatus": "SUCCESS",
			"token":               "up-token",
			"consumer":            map[string]interface{}{"name": "John", "email": "john@example.com"},
			"paymentDetail":       map[string]interface{}{"paymentId": "99", "paidPrice": 1.2},
		}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.RetrieveIyziupForm(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Consumer.Email != "john@example.com" || resp.PaymentDetail.PaymentID != "99" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestInitializeCardManagementPage(t *testing.T) {
	req := &CreateCardManagementPageInitializeRequest{
		Request:           testEnvelope(),
		AddNewCardEnabled: Bool(true),
		ValidateNewCard:   Bool(false),
		ExternalID:        "ext-1",
		Email:             "email@email.com",
		CallbackURL:       "https://www.merchant.com/callback",
		DebitCardAllowed:  Bool(false),
	}
	const pki = "[locale=tr,conversationId=123456789,addNewCardEnabled=true,validateNewCard=false,externalId=ext-1," +
		"email=email@email.com,callbackUrl=https://www.merchant.com/callback,debitCardAllowed=false]"
	assertCanonical(t, req, pki)

	server := mockServer(t, http.MethodPost, "/v1/card-management/pages", expectV1(t, pki),
		successResponse(map[string]interface{}{
			"externalId":  "ext-1",
			"token":       "page-token",
			"cardPageUrl": "https://cards.example/page-token",
		}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.InitializeCardManagementPage(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Token != "page-token" || resp.CardPageURL != "https://cards.example/page-token" {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestRetrieveCardManagementPageCards(t *testing.T) {
	req := &RetrieveCardManagementPageCardRequest{Request: testEnvelope(), PageToken: "page-token"}
	const pki = "[locale=tr,conversationId=123456789,token=page-token]"

	server := mockServer(t, http.MethodGet, "/v1/card-management/pages/page-token/cards", func(r *http.Request, body []byte) {
		expectV1(t, pki)(r, body)
		if len(body) != 0 {
			t.Errorf("Expected empty body, got %q", body)
		}
		if got := r.URL.RawQuery; got != "conversationId=123456789&locale=tr" {
			t.Errorf("Unexpected query %s", got)
		}
	}, successResponse(map[string]interface{}{
		"externalId":  "ext-1",
		"cardUserKey": "user-key",
		"cardDetails": []map[string]interface{}{{"cardToken": "ct-1", "lastFourDigits": "0008"}},
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.RetrieveCardManagementPageCards(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.CardUserKey != "user-key" || len(resp.CardDetails) != 1 || resp.CardDetails[0].CardToken != "ct-1" {
		t.Errorf("Unexpected response %+v", resp)
	}

	if _, err := client.RetrieveCardManagementPageCards(context.Background(), &RetrieveCardManagementPageCardRequest{}); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Expected ErrMissingToken, got %v", err)
	}
	if _, err := client.RetrieveCardManagementPageCards(context.Background(), nil); !errors.Is(err, ErrNilRequest) {
		t.Errorf("Expected ErrNilRequest, got %v", err)
	}
}

func TestSettlementReporting(t *testing.T) {
	req := &RetrieveTransactionsRequest{Request: testEnvelope(), Date: "2024-01-15"}
	const pki = "[locale=tr,conversationId=123456789,date=2024-01-15]"

	t.Run("payout completed", func(t *testing.T) {
		server := mockServer(t, http.MethodPost, "/reporting/settlement/payoutcompleted", expectV1(t, pki),
			successResponse(map[string]interface{}{
				"payoutCompletedTransactions": []map[string]interface{}{
					{"paymentTransactionId": "12101", "payoutAmount": 10.5, "payoutType": "SUB_MERCHANT", "currency": "TRY"},
				},
			}))
		defer server.Close()

		client := newTestClient(server.URL)
		resp, err := client.RetrievePayoutCompletedTransactions(context.Background(), req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(resp.PayoutCompletedTransactions) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(resp.PayoutCompletedTransactions))
		}
		if !resp.PayoutCompletedTransactions[0].PayoutAmount.Equal(*Price("10.5")) {
			t.Errorf("Expected payout 10.5, got %s", resp.PayoutCompletedTransactions[0].PayoutAmount)
		}
	})

	t.Run("bounced", func(t *testing.T) {
		server := mockServer(t, http.MethodPost, "/reporting/settlement/bounced", expectV1(t, pki),
			successResponse(map[string]interface{}{
				"bankTransfers": []map[string]interface{}{
					{"subMerchantKey": "sm-1", "iban": "TR180006200119000006672315", "marketplaceSubmerchantType": "PERSONAL"},
				},
			}))
		defer server.Close()

		client := newTestClient(server.URL)
		resp, err := client.RetrieveBouncedBankTransfers(context.Background(), req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(resp.BankTransfers) != 1 || resp.BankTransfers[0].SubMerchantType != "PERSONAL" {
			t.Errorf("Unexpected response %+v", resp)
		}
	})
}
