package cli

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alexbotov/iyzipay-go/internal/auth"
	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

func (a *app) apiTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "api-test",
		Short: "Check connectivity to the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), call{"api.test", http.MethodGet, "/payment/test", "", ""}, func() (interface{}, error) {
				return a.client().APITest(cmd.Context())
			})
		},
	}
}

func (a *app) binCmd() *cobra.Command {
	var conversationID string

	cmd := &cobra.Command{
		Use:   "bin <number>",
		Short: "Look up the card family of a BIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &iyzipay.RetrieveBinNumberRequest{
				Request:   a.request(conversationID),
				BinNumber: args[0],
			}
			c := call{"bin.check", http.MethodPost, "/payment/bin/check", auth.SchemeV1, conversationID}
			return a.run(cmd.Context(), c, func() (interface{}, error) {
				return a.client().RetrieveBinNumber(cmd.Context(), req)
			})
		},
	}

	cmd.Flags().StringVar(&conversationID, "conversation-id", "", "Conversation id echoed by the API")
	return cmd
}

func (a *app) installmentCmd() *cobra.Command {
	var bin, price, currency, conversationID string

	cmd := &cobra.Command{
		Use:   "installment",
		Short: "List installment options for a price",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", price, err)
			}
			req := &iyzipay.RetrieveInstallmentInfoRequest{
				Request:   a.request(conversationID),
				BinNumber: bin,
				Price:     &amount,
				Currency:  iyzipay.Currency(currency),
			}
			c := call{"installment.info", http.MethodPost, "/payment/iyzipos/installment", auth.SchemeV1, conversationID}
			return a.run(cmd.Context(), c, func() (interface{}, error) {
				return a.client().RetrieveInstallmentInfo(cmd.Context(), req)
			})
		},
	}

	cmd.Flags().StringVar(&bin, "bin", "", "Card BIN to narrow the options to")
	cmd.Flags().StringVar(&price, "price", "", "Price to spread over installments")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code")
	cmd.Flags().StringVar(&conversationID, "conversation-id", "", "Conversation id echoed by the API")
	cmd.MarkFlagRequired("price")
	return cmd
}

func (a *app) paymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Inspect and cancel payments",
	}
	cmd.AddCommand(a.paymentGetCmd(), a.paymentCancelCmd())
	return cmd
}

func (a *app) paymentGetCmd() *cobra.Command {
	var id, conversationID string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Retrieve a payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" && conversationID == "" {
				return fmt.Errorf("one of --id or --conversation-id is required")
			}
			req := &iyzipay.RetrievePaymentRequest{
				Request:               a.request(conversationID),
				PaymentID:             id,
				PaymentConversationID: conversationID,
			}
			c := call{"payment.retrieve", http.MethodPost, "/payment/detail", auth.SchemeV1, conversationID}
			return a.run(cmd.Context(), c, func() (interface{}, error) {
				return a.client().RetrievePayment(cmd.Context(), req)
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Payment id")
	cmd.Flags().StringVar(&conversationID, "conversation-id", "", "Conversation id the payment was created with")
	return cmd
}

func (a *app) paymentCancelCmd() *cobra.Command {
	var id, reason, description, ip string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &iyzipay.CreateCancelRequest{
				Request:     a.request(""),
				PaymentID:   id,
				IP:          ip,
				Reason:      iyzipay.RefundReason(reason),
				Description: description,
			}
			c := call{"payment.cancel", http.MethodPost, "/payment/cancel", auth.SchemeV1, ""}
			return a.run(cmd.Context(), c, func() (interface{}, error) {
				return a.client().CreateCancel(cmd.Context(), req)
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Payment id")
	cmd.Flags().StringVar(&reason, "reason", "", "DOUBLE_PAYMENT, BUYER_REQUEST, FRAUD or OTHER")
	cmd.Flags().StringVar(&description, "description", "", "Free text reason")
	cmd.Flags().StringVar(&ip, "ip", "", "IP address of the requester")
	cmd.MarkFlagRequired("id")
	return cmd
}
