package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"potato/pkg/client"
	intakeImp "potato/pkg/intake/serviceImp"
	"potato/pkg/intake/types"
)

var (
	submitFields    = map[string]*string{}
	submitRecommend bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate and submit a farm form",
	Long: `Fill in the intake form from flags. The form is checked locally first;
nothing is sent until every field is valid.

  potatoctl submit --season Maha --district "Nuwara Eliya" --field-size 3 \
    --variety Granola --soil Sandy --fertilizer-kg 150 --seed-cost 45000 \
    --fertilizer-cost 30000 --labor-cost 75000 --capital 200000 --recommend`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

// flag name -> form field
var submitFlags = []struct{ flag, field, usage string }{
	{"season", types.FieldSeason, "Maha or Yala"},
	{"district", types.FieldDistrict, "Nuwara Eliya, Badulla or Jaffna"},
	{"field-size", types.FieldFieldSize, "field size in acres (max 5)"},
	{"variety", types.FieldVariety, "Granola, Local or Kufri"},
	{"soil", types.FieldSoilType, "Clay, Silty, Sandy or Loamy"},
	{"fertilizer-kg", types.FieldFertilizerKg, "planned fertilizer, kg per acre"},
	{"seed-cost", types.FieldSeedCost, "seed cost in LKR"},
	{"fertilizer-cost", types.FieldFertilizerCost, "fertilizer cost in LKR"},
	{"labor-cost", types.FieldLaborCost, "labor cost in LKR"},
	{"capital", types.FieldAvailableCapital, "hands-on money in LKR (min 150,000)"},
}

func init() {
	for _, f := range submitFlags {
		v := new(string)
		submitFields[f.field] = v
		submitCmd.Flags().StringVar(v, f.flag, "", f.usage)
	}
	submitCmd.Flags().BoolVar(&submitRecommend, "recommend", false, "also fetch recommendations for the form")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st := intakeImp.State{Errors: types.FieldErrors{}}
	for _, f := range submitFlags {
		st = intakeImp.Reduce(st, intakeImp.SetField{Name: f.field, Value: *submitFields[f.field]})
	}
	st = intakeImp.Reduce(st, intakeImp.Submit{})
	if !st.Submitted {
		printFieldErrors(out, st.Errors)
		return fmt.Errorf("form has %d invalid field(s)", len(st.Errors))
	}

	c := newClient()
	resp, err := c.Submit(cmd.Context(), st.Form)
	if ve, ok := client.IsValidation(err); ok {
		printFieldErrors(out, ve.Fields)
		return err
	}
	if err != nil {
		return err
	}
	logger.Debug("submitted", zap.Bool("ok", resp.Submitted))
	fmt.Fprintln(out, resp.Message)
	if resp.Record != nil {
		printRecord(out, resp.Record)
	}

	if !submitRecommend {
		return nil
	}
	res, err := c.Recommend(cmd.Context(), st.Form)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	printResult(out, res)
	return nil
}
