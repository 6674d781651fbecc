package main

import (
	"encoding/json"
	"math"

	"github.com/spf13/cobra"

	"github.com/sngm3741/ugym-konect/api/internal/fixtures"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search <gyms|services|products> [term]",
	Short: "Filter and sort the catalog offline",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringSlice("category", nil, "Category tags (any match)")
	searchCmd.Flags().StringSlice("service-type", nil, "Service type tags (services only)")
	searchCmd.Flags().Float64("min-price", math.NaN(), "Lower price bound")
	searchCmd.Flags().Float64("max-price", math.NaN(), "Upper price bound")
	searchCmd.Flags().String("province", "", "Province")
	searchCmd.Flags().String("city", "", "City")
	searchCmd.Flags().String("sort", "", "rating, price, price-low, price-high, name, experience, reviews")
	searchCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(searchCmd)
}

// searchOptions is what the search flags resolve to.
type searchOptions struct {
	Term         string
	Categories   []string
	ServiceTypes []string
	MinPrice     float64
	MaxPrice     float64
	Province     string
	City         string
	Sort         string
}

func runSearch(cmd *cobra.Command, args []string) error {
	variant, err := publicdomain.ParseVariant(args[0])
	if err != nil {
		return err
	}
	opts := searchOptions{}
	if len(args) == 2 {
		opts.Term = args[1]
	}
	opts.Categories, _ = cmd.Flags().GetStringSlice("category")
	opts.ServiceTypes, _ = cmd.Flags().GetStringSlice("service-type")
	opts.MinPrice, _ = cmd.Flags().GetFloat64("min-price")
	opts.MaxPrice, _ = cmd.Flags().GetFloat64("max-price")
	opts.Province, _ = cmd.Flags().GetString("province")
	opts.City, _ = cmd.Flags().GetString("city")
	opts.Sort, _ = cmd.Flags().GetString("sort")
	format, _ := cmd.Flags().GetString("format")

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	results, err := searchCatalog(catalog, variant, opts)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		printListingsTable(cmd.OutOrStdout(), results)
	}
	return nil
}

// criteriaFrom builds filter criteria the same way the browse page does.
// A NaN bound means the flag was not given; one given bound opens the other side.
func criteriaFrom(opts searchOptions) publicdomain.FilterCriteria {
	criteria := publicdomain.FilterCriteria{}.WithSearchTerm(opts.Term)
	for _, c := range opts.Categories {
		criteria = criteria.ToggleCategory(c, true)
	}
	for _, t := range opts.ServiceTypes {
		criteria = criteria.ToggleServiceType(t, true)
	}
	lo, hi := opts.MinPrice, opts.MaxPrice
	if !math.IsNaN(lo) || !math.IsNaN(hi) {
		if math.IsNaN(lo) {
			lo = 0
		}
		if math.IsNaN(hi) {
			hi = math.Inf(1)
		}
		criteria = criteria.WithPriceRange(lo, hi)
	}
	if opts.Province != "" {
		criteria = criteria.WithProvince(opts.Province)
	}
	if opts.City != "" {
		criteria = criteria.WithCity(opts.City)
	}
	return criteria
}

func searchCatalog(catalog fixtures.Catalog, variant publicdomain.Variant, opts searchOptions) ([]publicdomain.Listing, error) {
	key, err := publicdomain.ParseSortKey(opts.Sort)
	if err != nil {
		return nil, err
	}
	criteria := criteriaFrom(opts)
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	listings, err := catalog.PublicListings(variant)
	if err != nil {
		return nil, err
	}
	return publicdomain.SortListings(publicdomain.FilterListings(listings, criteria), key), nil
}
