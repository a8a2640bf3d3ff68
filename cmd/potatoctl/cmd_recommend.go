package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	rectypes "potato/pkg/recommend/types"
)

var (
	recCapital string
	recSample  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "List affordable strategies with revenue, profit and ROI",
	Long: `Ask the server which catalog strategies fit a budget.

  potatoctl recommend --capital 200000
  potatoctl recommend --sample`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recCapital, "capital", "", "available capital in LKR")
	recommendCmd.Flags().BoolVar(&recSample, "sample", false, "use the demonstration farm record")
	recommendCmd.MarkFlagsMutuallyExclusive("capital", "sample")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	var (
		res *rectypes.Result
		err error
	)
	c := newClient()
	switch {
	case recSample:
		res, err = c.Sample(cmd.Context())
	case recCapital != "":
		capital, perr := decimal.NewFromString(recCapital)
		if perr != nil {
			return fmt.Errorf("--capital: %q is not a number", recCapital)
		}
		res, err = c.RecommendCapital(cmd.Context(), capital)
	default:
		return errors.New("one of --capital or --sample is required")
	}
	if err != nil {
		logger.Debug("recommend failed", zap.Error(err))
		return err
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}
