package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/iwvelando/tjm-calculator/internal/flow"
	"github.com/iwvelando/tjm-calculator/internal/notify"
	"github.com/iwvelando/tjm-calculator/internal/server"
	"github.com/iwvelando/tjm-calculator/pkg/format"
	"github.com/iwvelando/tjm-calculator/pkg/output"
	"github.com/iwvelando/tjm-calculator/pkg/ratecalc"
	"github.com/iwvelando/tjm-calculator/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	actionEmail       = "email"
	actionRecalculate = "recalculate"
	actionQuit        = "quit"
)

var flagInteractiveExample bool

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Fill the calculator form in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, err := newSender()
		if err != nil {
			return err
		}
		f := flow.New(logger, sender)
		if flagInteractiveExample {
			f.FillExample()
		}

		err = runInteractive(cmd.Context(), cmd.OutOrStdout(), f)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	},
}

func init() {
	interactiveCmd.Flags().BoolVar(&flagInteractiveExample, "example", false, "prefill the form with the example figures")
}

func runInteractive(ctx context.Context, out io.Writer, f *flow.Flow) error {
	for {
		switch f.State() {
		case flow.StateForm:
			if err := askInput(out, f); err != nil {
				return err
			}

		case flow.StateResults:
			result, _ := f.Result()
			if err := output.PrettyFormat(out, result); err != nil {
				return err
			}

			action, err := askAction()
			if err != nil {
				return err
			}
			switch action {
			case actionQuit:
				return nil
			case actionRecalculate:
				f.Recalculate()
				continue
			}

			if err := askEmail(ctx, out, f); err != nil {
				return err
			}

		case flow.StateThankYou:
			fmt.Fprintln(out, "Merci ! Votre récapitulatif arrive par email.")
			fmt.Fprintf(out, "Kit de tarification freelance (%s) : %s\n",
				format.Euro(conf.Upsell.Price), conf.Upsell.URL)
			return nil
		}
	}
}

// askInput shows the form until the values compute.
func askInput(out io.Writer, f *flow.Flow) error {
	raw := f.Input()
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Revenu net mensuel visé (€)").
				Placeholder("2500").
				Value(&raw.NetTarget),
			huh.NewInput().
				Title("Frais professionnels mensuels (€)").
				Placeholder("300").
				Value(&raw.Expenses),
			huh.NewInput().
				Title("Jours facturables par mois").
				Placeholder("15").
				Value(&raw.BillableDays),
			huh.NewInput().
				Title("TJM actuel (€, optionnel)").
				Placeholder("150").
				Value(&raw.CurrentRate),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := f.Submit(raw); err != nil {
		var verr *ratecalc.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, code := range verr.Codes {
			fmt.Fprintln(out, code.Message())
		}
		logger.Debug("form rejected",
			zap.String("op", "main.askInput"),
			zap.Error(err),
		)
	}
	return nil
}

func askAction() (string, error) {
	action := actionEmail
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Recevoir ce calcul par email ?").
				Options(
					huh.NewOption("Envoyer le récapitulatif", actionEmail),
					huh.NewOption("Recalculer", actionRecalculate),
					huh.NewOption("Quitter", actionQuit),
				).
				Value(&action),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return action, nil
}

// askEmail captures an address and sends the summary. A failed send leaves
// the flow on the results screen.
func askEmail(ctx context.Context, out io.Writer, f *flow.Flow) error {
	var email string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("vous@exemple.fr").
				Value(&email).
				Validate(func(s string) error {
					if _, err := validation.NormalizeEmail(s); err != nil {
						return errors.New(validation.EmailMessage(err))
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	err := f.SubmitEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, notify.ErrNotificationFailed):
		fmt.Fprintln(out, server.GenericFailureMessage)
		return nil
	default:
		if msg := f.Errors().Email; msg != "" {
			fmt.Fprintln(out, msg)
			return nil
		}
		return err
	}
}
