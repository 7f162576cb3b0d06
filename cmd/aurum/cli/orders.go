package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aurumkit/aurum"
)

// OrderCmd places an order for one item.
func OrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, _ := cmd.Flags().GetInt64("item")
			quantity, _ := cmd.Flags().GetFloat64("quantity")
			street, _ := cmd.Flags().GetString("street")
			zip, _ := cmd.Flags().GetString("zip")
			detail, _ := cmd.Flags().GetString("detail")

			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			order, err := client.CreateOrder(cmd.Context(), aurum.CreateOrderInput{
				Items: []aurum.OrderLine{{ID: itemID, Quantity: quantity}},
				ShippingAddress: aurum.ShippingAddress{
					StreetAddress: street,
					ZipCode:       zip,
					AddressDetail: detail,
				},
			})
			if errors.Is(err, aurum.ErrInvalidQuantity) {
				return fmt.Errorf("quantity must be a multiple of 0.5 grams, got %v", quantity)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed, total %.2f\n", order.OrderNumber, order.TotalPrice)
			return nil
		},
	}

	cmd.Flags().Int64("item", 0, "item id")
	cmd.Flags().Float64("quantity", 0, "quantity in grams (0.5 steps)")
	cmd.Flags().String("street", "", "shipping street address")
	cmd.Flags().String("zip", "", "shipping zip code")
	cmd.Flags().String("detail", "", "shipping address detail")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("street")
	_ = cmd.MarkFlagRequired("zip")

	return cmd
}

// OrdersCmd shows one page of order history.
func OrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Show order history",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")

			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			orders, total, err := client.Orders(cmd.Context(), page, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tORDER\tDATE\tTOTAL\tSTATUS")
			for _, o := range orders {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\n", o.ID, o.OrderNumber, o.OrderDate, o.TotalPrice, o.Status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d order(s) total, page %d\n", total, page)
			return nil
		},
	}

	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("limit", 5, "orders per page")
	return cmd
}

// CancelCmd cancels a placed order.
func CancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel a placed order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("order id must be a number: %q", args[0])
			}

			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := client.CancelOrder(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %d cancelled\n", id)
			return nil
		},
	}
}
