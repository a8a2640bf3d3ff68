package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"potato/entities"
	"potato/pkg/catalog"
	"potato/pkg/intake/types"
	rectypes "potato/pkg/recommend/types"
)

func printResult(w io.Writer, res *rectypes.Result) {
	fmt.Fprintf(w, "Available capital: LKR %s\n", catalog.FormatLKR(res.AvailableCapitalLKR))
	if len(res.Strategies) == 0 {
		fmt.Fprintln(w, res.Message)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tSEED\tCOST\tYIELD (KG)\tREVENUE\tPROFIT\tROI")
	for _, s := range res.Strategies {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\t%s\t%s%%\n",
			s.Icon, s.Name, s.SeedAmount,
			catalog.FormatLKR(s.Cost), catalog.FormatLKR(s.Yield),
			catalog.FormatLKR(s.Revenue), catalog.FormatLKR(s.Profit), s.ROI)
	}
	_ = tw.Flush()

	for _, n := range res.Notes {
		fmt.Fprintf(w, "\n* %s\n  %s\n", n.Title, n.Excerpt)
		if n.SourceURL != "" {
			fmt.Fprintf(w, "  %s\n", n.SourceURL)
		}
	}
}

func printRecord(w io.Writer, r *entities.FarmInputRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Season\t%s\n", r.Season)
	fmt.Fprintf(tw, "District\t%s\n", r.District)
	fmt.Fprintf(tw, "Field size\t%s acres\n", r.FieldSizeAcres)
	fmt.Fprintf(tw, "Variety\t%s\n", r.PotatoVariety)
	fmt.Fprintf(tw, "Soil\t%s\n", r.SoilType)
	fmt.Fprintf(tw, "Fertilizer\t%s kg/acre\n", r.PlannedFertilizerKgPerAcre)
	fmt.Fprintf(tw, "Seed cost\tLKR %s\n", catalog.FormatLKR(r.SeedCostLKR))
	fmt.Fprintf(tw, "Fertilizer cost\tLKR %s\n", catalog.FormatLKR(r.FertilizerCostLKR))
	fmt.Fprintf(tw, "Labor cost\tLKR %s\n", catalog.FormatLKR(r.LaborCostLKR))
	fmt.Fprintf(tw, "Capital\tLKR %s\n", catalog.FormatLKR(r.AvailableCapitalLKR))
	_ = tw.Flush()
}

func printFieldErrors(w io.Writer, errs types.FieldErrors) {
	for _, name := range types.FieldNames {
		if msg, ok := errs[name]; ok {
			fmt.Fprintf(w, "%s: %s\n", name, msg)
		}
	}
}
