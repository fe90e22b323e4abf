package main

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Assemble the booking price for a base price",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base-price")
		withGuarantee, _ := cmd.Flags().GetBool("guarantee")

		s, err := loadSettings()
		if err != nil {
			return err
		}
		return runQuote(cmd.OutOrStdout(), s, base, withGuarantee)
	},
}

var guaranteeFeeCmd = &cobra.Command{
	Use:   "guarantee-fee",
	Short: "Print the guarantee fee for a price",
	RunE: func(cmd *cobra.Command, args []string) error {
		price, _ := cmd.Flags().GetString("price")

		s, err := loadSettings()
		if err != nil {
			return err
		}
		return runGuaranteeFee(cmd.OutOrStdout(), s, price)
	},
}

func init() {
	quoteCmd.Flags().String("base-price", "", "provider base price")
	quoteCmd.Flags().Bool("guarantee", false, "add the guarantee fee")
	_ = quoteCmd.MarkFlagRequired("base-price")

	guaranteeFeeCmd.Flags().String("price", "", "price the fee is charged on")
	_ = guaranteeFeeCmd.MarkFlagRequired("price")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(guaranteeFeeCmd)
}

func runQuote(w io.Writer, s settings, rawBase string, withGuarantee bool) error {
	base, err := decimal.NewFromString(rawBase)
	if err != nil {
		return fmt.Errorf("base price %q is not a decimal", rawBase)
	}
	a, err := s.assembler()
	if err != nil {
		return err
	}
	price, err := a.Assemble(base, withGuarantee)
	if err != nil {
		return err
	}
	return writeJSON(w, price)
}

func runGuaranteeFee(w io.Writer, s settings, rawPrice string) error {
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return fmt.Errorf("price %q is not a decimal", rawPrice)
	}
	g, err := s.guaranteeCalculator()
	if err != nil {
		return err
	}
	fee, err := g.CalculateGuaranteeFee(price)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]decimal.Decimal{
		"price":          price,
		"fee_percentage": g.GetConfig().FeePercentage,
		"guarantee_fee":  fee,
	})
}
