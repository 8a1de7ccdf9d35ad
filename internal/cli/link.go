package cli

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alexbotov/iyzipay-go/internal/auth"
	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

const linkEndpoint = "/v2/iyzilink/products"

func (a *app) linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage iyzilink payment links",
	}
	cmd.AddCommand(a.linkListCmd(), a.linkGetCmd(), a.linkCreateCmd(), a.linkDeleteCmd())
	return cmd
}

func (a *app) linkListCmd() *cobra.Command {
	var page, count int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payment links",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &iyzipay.PagingRequest{Request: a.request(""), Page: page, Count: count}
			c := call{"link.list", http.MethodGet, linkEndpoint, auth.SchemeV2, ""}
			return a.run(cmd.Context(), c, func() (interface{}, error) {
				return a.client().RetrieveAllIyziLinks(cmd.Context(), req)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&count, "count", 10, "Links per page")
	return cmd
}

func (a *app) linkGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <token>",
		Short: "Show a payment link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := a.request("")
			c := call{"link.retrieve", http.MethodGet, linkEndpoint + "/" + args[0], auth.SchemeV2, ""}
			return a.run(cmd.Context(), c, func() (interface{}, error) {
				return a.client().RetrieveIyziLink(cmd.Context(), args[0], &req)
			})
		},
	}
}

func (a *app) linkCreateCmd() *cobra.Command {
	var name, description, price, currency string
	var soldLimit int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment link",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", price, err)
			}
			req := &iyzipay.IyziLinkSaveRequest{
				Request:     a.request(""),
				Name:        name,
				Description: description,
				Price:       &amount,
				Currency:    iyzipay.Currency(currency),
			}
			if soldLimit > 0 {
				req.SoldLimit = iyzipay.Int(soldLimit)
			}
			c := call{"link.create", http.MethodPost, linkEndpoint, auth.SchemeV2, ""}
			return a.run(cmd.Context(), c, func() (interface{}, error) {
				return a.client().CreateIyziLink(cmd.Context(), req)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&description, "description", "", "Product description")
	cmd.Flags().StringVar(&price, "price", "", "Product price")
	cmd.Flags().StringVar(&currency, "currency", string(iyzipay.CurrencyTRY), "Currency code")
	cmd.Flags().IntVar(&soldLimit, "sold-limit", 0, "Maximum number of sales, 0 for unlimited")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	return cmd
}

func (a *app) linkDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <token>",
		Short: "Delete a payment link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := a.request("")
			c := call{"link.delete", http.MethodDelete, linkEndpoint + "/" + args[0], auth.SchemeV2, ""}
			return a.run(cmd.Context(), c, func() (interface{}, error) {
				return a.client().DeleteIyziLink(cmd.Context(), args[0], &req)
			})
		},
	}
}
