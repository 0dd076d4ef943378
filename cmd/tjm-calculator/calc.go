package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/iwvelando/tjm-calculator/pkg/constants"
	"github.com/iwvelando/tjm-calculator/pkg/output"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
	"github.com/iwvelando/tjm-calculator/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagNet       string
	flagExpenses  string
	flagDays      string
	flagCurrent   string
	flagExample   bool
	flagOutputFmt string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute the minimum day rate from flags",
	Example: `  tjm-calculator calc --net 2500 --expenses 300 --days 15 --current 150
  tjm-calculator calc --example --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := ratecalc.RawInput{
			NetTarget:    flagNet,
			Expenses:     flagExpenses,
			BillableDays: flagDays,
			CurrentRate:  flagCurrent,
		}
		if flagExample {
			raw = ratecalc.ExampleInput().Raw()
		}

		outputFormat := conf.Output.Format
		if flagOutputFmt != "" {
			outputFormat = flagOutputFmt
		}
		if outputFormat == "" {
			outputFormat = constants.OutputFormatPretty
		}

		return runCalc(cmd.OutOrStdout(), cmd.ErrOrStderr(), raw, outputFormat)
	},
}

func init() {
	calcCmd.Flags().StringVar(&flagNet, "net", "", "target monthly net income in euros (required)")
	calcCmd.Flags().StringVar(&flagExpenses, "expenses", "", "monthly professional expenses in euros")
	calcCmd.Flags().StringVar(&flagDays, "days", "", "billable days per month (required)")
	calcCmd.Flags().StringVar(&flagCurrent, "current", "", "current day rate in euros")
	calcCmd.Flags().BoolVar(&flagExample, "example", false, "use the example figures (2500/300/15/150)")
	calcCmd.Flags().StringVarP(&flagOutputFmt, "output", "o", "", "output format override: pretty, json")
}

// errInvalidInput is returned after the validation messages were printed.
var errInvalidInput = errors.New("invalid input")

func runCalc(stdout, stderr io.Writer, raw ratecalc.RawInput, outputFormat string) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	result, err := ratecalc.Compute(ratecalc.ParseInput(raw))
	if err != nil {
		var verr *ratecalc.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, code := range verr.Codes {
			fmt.Fprintf(stderr, "%s (%s)\n", code.Message(), code)
		}
		return errInvalidInput
	}

	logger.Debug("calculation complete",
		zap.String("op", "main.runCalc"),
		zap.Float64("requiredDailyRate", result.RequiredDailyRate),
	)

	switch outputFormat {
	case constants.OutputFormatJSON:
		return output.JSONFormat(stdout, result)
	default:
		return output.PrettyFormat(stdout, result)
	}
}
