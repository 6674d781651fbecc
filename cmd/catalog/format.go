package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// printListingsTable prints one listing per row.
func printListingsTable(w io.Writer, listings []publicdomain.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "no listings match")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tLOCATION\tPRICE\tRATING")
	for _, l := range listings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f (%d)\n",
			l.ID, l.Name, categoryLabel(l), l.Location.City+", "+l.Location.Province,
			priceLabel(l), l.Rating, l.ReviewCount)
	}
	_ = tw.Flush()
}

func categoryLabel(l publicdomain.Listing) string {
	if len(l.ServiceTypes) > 0 {
		return l.Category + " / " + strings.Join(l.ServiceTypes, ", ")
	}
	return l.Category
}

func priceLabel(l publicdomain.Listing) string {
	if l.PriceLabel != "" {
		return l.PriceLabel
	}
	return formatRand(l.RepresentativePrice())
}

// formatRand formats an amount as "R1 234" or "R1 234.50".
func formatRand(amount float64) string {
	whole := int64(amount)
	cents := int64((amount-float64(whole))*100 + 0.5)
	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	if cents > 0 {
		return fmt.Sprintf("R%s.%02d", b.String(), cents)
	}
	return "R" + b.String()
}

func printCart(w io.Writer, state publicdomain.CartState) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tQTY\tUNIT\tLINE")
	for _, line := range state.Lines {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", line.Name, line.Quantity, formatRand(line.UnitPrice), formatRand(line.LineTotal()))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\nitems     %d\n", state.ItemCount())
	fmt.Fprintf(w, "subtotal  %s\n", formatRand(state.Subtotal))
	fmt.Fprintf(w, "fee %.0f%%  %s\n", state.PlatformFeeRate*100, formatRand(state.Fee))
	fmt.Fprintf(w, "total     %s\n", formatRand(state.Total))
}
