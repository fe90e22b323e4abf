// Package main is the entry point for matchctl, an offline companion to the
// matching service. It ranks candidate pools and prices bookings locally with
// the same engine the HTTP API uses.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parlakisik/buildex-matching/internal/guarantee"
	"github.com/parlakisik/buildex-matching/internal/matching"
	"github.com/parlakisik/buildex-matching/internal/pricing"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "matchctl",
	Short: "Rank providers and price bookings from the command line",
	Long: `matchctl runs the provider matching and pricing engine without the HTTP
service. Pools are read from JSON files or the built-in catalog; rates and
ranking parameters come from flags, matchctl.yaml, or MATCHCTL_* variables.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./matchctl.yaml or ~/.config/matchctl/config.yaml)")
	rootCmd.PersistentFlags().String("commission-rate", pricing.DefaultCommissionRate.String(), "platform commission rate")
	rootCmd.PersistentFlags().String("guarantee-fee-percentage", guarantee.DefaultFeePercentage.String(), "guarantee fee as a percentage of price")
	rootCmd.PersistentFlags().String("guarantee-max-coverage", guarantee.DefaultMaxCoverageAmount.String(), "maximum payable per claim")
	rootCmd.PersistentFlags().Int("top-n", matching.DefaultTopN, "providers returned per ranking")
	rootCmd.PersistentFlags().Float64("variance-band", matching.DefaultVarianceBand, "price estimate variance band")

	_ = viper.BindPFlag("commission_rate", rootCmd.PersistentFlags().Lookup("commission-rate"))
	_ = viper.BindPFlag("guarantee.fee_percentage", rootCmd.PersistentFlags().Lookup("guarantee-fee-percentage"))
	_ = viper.BindPFlag("guarantee.max_coverage", rootCmd.PersistentFlags().Lookup("guarantee-max-coverage"))
	_ = viper.BindPFlag("ranking.top_n", rootCmd.PersistentFlags().Lookup("top-n"))
	_ = viper.BindPFlag("ranking.variance_band", rootCmd.PersistentFlags().Lookup("variance-band"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("matchctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "matchctl"))
		}
	}

	viper.SetEnvPrefix("MATCHCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
