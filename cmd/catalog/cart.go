package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sngm3741/ugym-konect/api/internal/fixtures"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

const maxCartQuantity = 99

var errOutOfStock = errors.New("product is out of stock")

var cartCmd = &cobra.Command{
	Use:   "cart <action>...",
	Short: "Replay cart actions against catalog products and print the totals",
	Long: `Actions are applied in order:
  add:<productId>[:qty]      add a product (quantity defaults to 1)
  update:<productId>:<qty>   set a quantity, 0 removes the line
  remove:<productId>         remove a line
  clear                      empty the cart`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCart,
}

func init() {
	cartCmd.Flags().Float64("fee-rate", publicdomain.DefaultPlatformFeeRate, "Platform fee rate applied to the subtotal")
	rootCmd.AddCommand(cartCmd)
}

func runCart(cmd *cobra.Command, args []string) error {
	rate, _ := cmd.Flags().GetFloat64("fee-rate")
	if rate < 0 || rate > 1 {
		return fmt.Errorf("--fee-rate must be between 0 and 1, got %v", rate)
	}
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	products, err := productIndex(catalog)
	if err != nil {
		return err
	}

	actions := make([]publicdomain.CartAction, 0, len(args))
	for _, raw := range args {
		action, err := parseCartAction(raw, products)
		if err != nil {
			return err
		}
		actions = append(actions, action)
	}

	state := publicdomain.NewCart(rate)
	for i, action := range actions {
		if state, err = publicdomain.ReduceCart(state, action); err != nil {
			return err
		}
		for _, line := range state.Lines {
			if line.Quantity > maxCartQuantity {
				return fmt.Errorf("%q: %s would reach quantity %d, at most %d allowed", args[i], line.Name, line.Quantity, maxCartQuantity)
			}
		}
	}
	printCart(cmd.OutOrStdout(), state)
	return nil
}

func productIndex(catalog fixtures.Catalog) (map[string]publicdomain.Listing, error) {
	products, err := catalog.PublicListings(publicdomain.VariantProduct)
	if err != nil {
		return nil, err
	}
	index := make(map[string]publicdomain.Listing, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index, nil
}

// parseCartAction turns "verb:id[:qty]" into a cart action. Adds are priced from the catalog.
func parseCartAction(raw string, products map[string]publicdomain.Listing) (publicdomain.CartAction, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	verb := strings.ToLower(parts[0])

	switch verb {
	case "clear":
		if len(parts) != 1 {
			return nil, fmt.Errorf("clear takes no arguments: %q", raw)
		}
		return publicdomain.ClearCart{}, nil
	case "remove":
		if len(parts) != 2 || parts[1] == "" {
			return nil, fmt.Errorf("usage remove:<productId>: %q", raw)
		}
		return publicdomain.RemoveItem{ItemID: parts[1]}, nil
	case "update":
		if len(parts) != 3 || parts[1] == "" {
			return nil, fmt.Errorf("usage update:<productId>:<qty>: %q", raw)
		}
		qty, err := parseQuantity(parts[2], true)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", raw, err)
		}
		return publicdomain.UpdateQuantity{ItemID: parts[1], Quantity: qty}, nil
	case "add":
		if len(parts) < 2 || len(parts) > 3 || parts[1] == "" {
			return nil, fmt.Errorf("usage add:<productId>[:qty]: %q", raw)
		}
		qty := 1
		if len(parts) == 3 {
			var err error
			if qty, err = parseQuantity(parts[2], false); err != nil {
				return nil, fmt.Errorf("%q: %w", raw, err)
			}
		}
		product, ok := products[parts[1]]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", publicdomain.ErrNotFound, parts[1])
		}
		if !product.Details.InStock {
			return nil, fmt.Errorf("%w: %s", errOutOfStock, product.Name)
		}
		line := publicdomain.CartLine{
			ItemID:     product.ID,
			ProductID:  product.ID,
			BusinessID: product.BusinessID,
			Name:       product.Name,
			UnitPrice:  product.RepresentativePrice(),
		}
		return publicdomain.AddItem{Line: line, Quantity: qty}, nil
	}
	return nil, fmt.Errorf("unknown cart action %q", raw)
}

func parseQuantity(raw string, allowZero bool) (int, error) {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("quantity must be a whole number")
	}
	lo := 1
	if allowZero {
		lo = 0
	}
	if qty < lo || qty > maxCartQuantity {
		return 0, fmt.Errorf("quantity must be between %d and %d", lo, maxCartQuantity)
	}
	return qty, nil
}
