package canonical

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.0"},
		{"0.0", "0.0"},
		{"00000.0000", "0.0"},
		{"1", "1.0"},
		{"1.000", "1.0"},
		{"-00001.000", "-1.0"},
		{"0.3", "0.3"},
		{"-0.3", "-0.3"},
		{"22.35", "22.35"},
		{"00001100000.3000000", "1100000.3"},
		{"10000", "10000.0"},
		{"-10000", "-10000.0"},
		{"0033001.0004400", "33001.00044"},
		{"-0033001.0004400", "-33001.00044"},
		{"0099999999999999999999999999.9999999999999999999999900", "99999999999999999999999999.99999999999999999999999"},
		{"-0099999999999999999999999999.9999999999999999999999900", "-99999999999999999999999999.99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestValueRender(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		v := Object(
			NewField("locale", Scalar("tr")),
			NewField("conversationId", Scalar("123456789")),
		)
		assert.Equal(t, "[locale=tr,conversationId=123456789]", v.String())
		assert.Equal(t, "locale=tr,conversationId=123456789", v.Flat())
	})

	t.Run("AbsentFieldsOmitted", func(t *testing.T) {
		v := Object(
			NewField("a", Absent()),
			NewField("b", Scalar("1")),
			NewField("c", Absent()),
		)
		assert.Equal(t, "[b=1]", v.String())
	})

	t.Run("EmptyObject", func(t *testing.T) {
		assert.Equal(t, "[]", Object().String())
		assert.Equal(t, "", Object().Flat())
	})

	t.Run("NestedObject", func(t *testing.T) {
		v := Object(
			NewField("price", Price(decimal.RequireFromString("1"))),
			NewField("buyer", Object(
				NewField("id", Scalar("BY789")),
				NewField("name", Scalar("John")),
			)),
		)
		assert.Equal(t, "[price=1.0,buyer=[id=BY789,name=John]]", v.String())
	})

	t.Run("ListOfObjects", func(t *testing.T) {
		v := Object(NewField("basketItems", List(
			Object(NewField("id", Scalar("BI101")), NewField("price", Price(decimal.RequireFromString("0.3")))),
			Object(NewField("id", Scalar("BI102")), NewField("price", Price(decimal.RequireFromString("0.50")))),
		)))
		assert.Equal(t, "[basketItems=[[id=BI101,price=0.3], [id=BI102,price=0.5]]]", v.String())
	})

	t.Run("ListOfScalars", func(t *testing.T) {
		v := Object(NewField("enabledInstallments", List(Scalar("2"), Scalar("3"), Scalar("6"))))
		assert.Equal(t, "[enabledInstallments=[2, 3, 6]]", v.String())
	})

	t.Run("EmptyListOmitted", func(t *testing.T) {
		v := Object(
			NewField("a", Scalar("x")),
			NewField("items", List()),
			NewField("more", List(Absent(), Absent())),
		)
		assert.Equal(t, "[a=x]", v.String())
		assert.True(t, List().IsAbsent())
	})

	t.Run("OrderFollowsDeclaration", func(t *testing.T) {
		ab := Object(NewField("a", Scalar("1")), NewField("b", Scalar("2")))
		ba := Object(NewField("b", Scalar("2")), NewField("a", Scalar("1")))
		assert.NotEqual(t, ab.String(), ba.String())
	})
}

type envelope struct {
	Locale         string `pki:"locale"`
	ConversationID string `pki:"conversationId"`
}

type address struct {
	Address     string `pki:"address"`
	ZipCode     string `pki:"zipCode"`
	ContactName string `pki:"contactName"`
	City        string `pki:"city"`
	Country     string `pki:"country"`
}

type item struct {
	ID       string           `pki:"id"`
	Price    *decimal.Decimal `pki:"price"`
	Name     string           `pki:"name"`
	ItemType string           `pki:"itemType"`
}

type paymentLike struct {
	envelope
	Price           *decimal.Decimal `pki:"price"`
	PaidPrice       decimal.Decimal  `pki:"paidPrice"`
	Installment     int              `pki:"installment"`
	BillingAddress  *address         `pki:"billingAddress"`
	BasketItems     []item           `pki:"basketItems"`
	Enabled         []int            `pki:"enabledInstallments"`
	ForceThreeDS    *bool            `pki:"forceThreeDS"`
	Register        *int             `pki:"registerCard"`
	Internal        string           `json:"internal"`
	Skipped         string           `pki:"-"`
	unexported      string
	CallbackURL     string `pki:"callbackUrl"`
	DebitAllowed    bool   `pki:"debitCardAllowed"`
	TransactionID   int64  `pki:"paymentTransactionId"`
	PaymentSequence uint8  `pki:"sequence"`
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestEncode(t *testing.T) {
	t.Run("EnvelopeAlone", func(t *testing.T) {
		v, err := Encode(envelope{Locale: "tr", ConversationID: "123456789"})
		require.NoError(t, err)
		assert.Equal(t, "locale=tr,conversationId=123456789", v.Flat())
		assert.Equal(t, "[locale=tr,conversationId=123456789]", v.String())
	})

	t.Run("FullRequest", func(t *testing.T) {
		f := false
		zero := 0
		req := &paymentLike{
			envelope:    envelope{Locale: "tr", ConversationID: "123456789"},
			Price:       price("1.000"),
			PaidPrice:   decimal.RequireFromString("1.2"),
			Installment: 1,
			BillingAddress: &address{
				Address:     "Nidakule Göztepe",
				ContactName: "Jane Doe",
				City:        "Istanbul",
				Country:     "Turkey",
			},
			BasketItems: []item{
				{ID: "BI101", Price: price("0.3"), Name: "Binocular", ItemType: "PHYSICAL"},
				{ID: "BI102", Price: price("0.7"), Name: "Game code", ItemType: "VIRTUAL"},
			},
			Enabled:      []int{2, 3},
			ForceThreeDS: &f,
			Register:     &zero,
			Internal:     "not signed",
			Skipped:      "not signed",
			unexported:   "not signed",
			CallbackURL:  "https://www.merchant.com/callback",
		}

		got, err := Marshal(req)
		require.NoError(t, err)

		want := "[locale=tr,conversationId=123456789,price=1.0,paidPrice=1.2,installment=1," +
			"billingAddress=[address=Nidakule Göztepe,contactName=Jane Doe,city=Istanbul,country=Turkey]," +
			"basketItems=[[id=BI101,price=0.3,name=Binocular,itemType=PHYSICAL], [id=BI102,price=0.7,name=Game code,itemType=VIRTUAL]]," +
			"enabledInstallments=[2, 3],forceThreeDS=false,registerCard=0," +
			"callbackUrl=https://www.merchant.com/callback]"
		assert.Equal(t, want, got)
	})

	t.Run("OptionalFieldsAbsent", func(t *testing.T) {
		got, err := Marshal(&paymentLike{PaidPrice: decimal.Zero, BasketItems: []item{}})
		require.NoError(t, err)
		assert.Equal(t, "[paidPrice=0.0]", got)
	})

	t.Run("TrueBoolAndWideInts", func(t *testing.T) {
		got, err := Marshal(&paymentLike{
			PaidPrice:       decimal.RequireFromString("5"),
			DebitAllowed:    true,
			TransactionID:   11845,
			PaymentSequence: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, "[paidPrice=5.0,debitCardAllowed=true,paymentTransactionId=11845,sequence=7]", got)
	})

	t.Run("ListKeepsZeroElements", func(t *testing.T) {
		got, err := Marshal(&paymentLike{PaidPrice: decimal.RequireFromString("1"), Enabled: []int{0, 2, 3}})
		require.NoError(t, err)
		assert.Equal(t, "[paidPrice=1.0,enabledInstallments=[0, 2, 3]]", got)
	})

	t.Run("Deterministic", func(t *testing.T) {
		req := &paymentLike{Price: price("10"), Installment: 3}
		first, err := Marshal(req)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := Marshal(req)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		var req *paymentLike
		v, err := Encode(req)
		require.NoError(t, err)
		assert.Equal(t, KindAbsent, v.Kind())
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		type bad struct {
			Amount float64 `pki:"amount"`
		}
		_, err := Marshal(bad{Amount: 1.5})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}
