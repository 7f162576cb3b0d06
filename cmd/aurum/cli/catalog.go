package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aurumkit/aurum"
)

// PricesCmd prints the public per-gram price board.
func PricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Show current gold prices per gram",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			prices, err := client.GoldPrices(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "GOLD TYPE\tPRICE/G")
			for _, p := range prices {
				fmt.Fprintf(w, "%s\t%.2f\n", p.GoldType, p.Price)
			}
			return w.Flush()
		},
	}
}

// ItemsCmd lists items for sale; --mine narrows to the signed-in seller's
// own listings.
func ItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items for sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			mine, _ := cmd.Flags().GetBool("mine")

			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var items []aurum.Item
			if mine {
				items, err = client.SellerItems(cmd.Context())
			} else {
				items, err = client.Items(cmd.Context())
			}
			if err != nil {
				return err
			}

			return printItems(cmd, items)
		},
	}

	cmd.Flags().Bool("mine", false, "show only your own listings (sellers)")
	return cmd
}

// ItemCmd shows one item's detail.
func ItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("item id must be a number: %q", args[0])
			}

			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			item, err := client.Item(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printItems(cmd, []aurum.Item{*item})
		},
	}
}

// SellCmd lists a new item for sale.
func SellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "List an item for sale (sellers)",
		RunE: func(cmd *cobra.Command, args []string) error {
			itemType, _ := cmd.Flags().GetString("type")
			quantity, _ := cmd.Flags().GetFloat64("quantity")
			price, _ := cmd.Flags().GetFloat64("price")

			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			err = client.CreateItem(cmd.Context(), aurum.CreateItemInput{
				ItemType: itemType,
				Quantity: quantity,
				Price:    price,
			})
			if errors.Is(err, aurum.ErrInvalidQuantity) {
				return fmt.Errorf("quantity must be a multiple of 0.5 grams, got %v", quantity)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Listed %.1fg of %s at %.2f/g\n", quantity, itemType, price)
			return nil
		},
	}

	cmd.Flags().String("type", "", "gold type, e.g. 24K")
	cmd.Flags().Float64("quantity", 0, "quantity in grams (0.5 steps)")
	cmd.Flags().Float64("price", 0, "price per gram")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("quantity")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func printItems(cmd *cobra.Command, items []aurum.Item) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPRICE/G\tQUANTITY")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.1f\n", it.ID, it.ItemType, it.Price, it.Quantity)
	}
	return w.Flush()
}
