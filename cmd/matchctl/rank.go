package main

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/parlakisik/buildex-matching/internal/clients"
	"github.com/parlakisik/buildex-matching/internal/model"
)

type rankOptions struct {
	ResourceType string
	Location     string
	Budget       string
	PoolFile     string
	Seed         uint64
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank providers for a resource request",
	Long: `Rank scores a candidate pool against a resource request and prints the top
providers as JSON. Without --pool the built-in catalog is used. Estimated
prices are randomised within the variance band; pass --seed to reproduce a run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts rankOptions
		opts.ResourceType, _ = cmd.Flags().GetString("type")
		opts.Location, _ = cmd.Flags().GetString("location")
		opts.Budget, _ = cmd.Flags().GetString("budget")
		opts.PoolFile, _ = cmd.Flags().GetString("pool")
		opts.Seed, _ = cmd.Flags().GetUint64("seed")

		s, err := loadSettings()
		if err != nil {
			return err
		}
		return runRank(cmd.Context(), cmd.OutOrStdout(), s, opts)
	},
}

func init() {
	rankCmd.Flags().String("type", "", "resource type: labor, machinery, or materials")
	rankCmd.Flags().String("location", "", "job site location")
	rankCmd.Flags().String("budget", "", "requester budget")
	rankCmd.Flags().String("pool", "", "JSON file with candidate providers (default: built-in catalog)")
	rankCmd.Flags().Uint64("seed", 0, "seed for price estimates (0 draws from the global source)")
	_ = rankCmd.MarkFlagRequired("type")
	_ = rankCmd.MarkFlagRequired("budget")

	rootCmd.AddCommand(rankCmd)
}

func runRank(ctx context.Context, w io.Writer, s settings, opts rankOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	budget, err := decimal.NewFromString(opts.Budget)
	if err != nil {
		return fmt.Errorf("budget %q is not a decimal", opts.Budget)
	}
	req := model.ResourceRequest{
		ResourceType: model.ResourceType(opts.ResourceType),
		Location:     opts.Location,
		Budget:       budget,
	}

	var pool []model.CandidateProvider
	if opts.PoolFile != "" {
		if pool, err = readPool(opts.PoolFile); err != nil {
			return err
		}
	} else if pool, err = clients.NewDefaultCatalog().Candidates(ctx, req); err != nil {
		return err
	}

	svc, err := s.rankingService(opts.Seed)
	if err != nil {
		return err
	}
	ranking, err := svc.Rank(req, pool)
	if err != nil {
		return err
	}
	return writeJSON(w, ranking)
}
