package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/spf13/cobra"
)

type storedSessionOutput struct {
	Scope              string                     `json:"scope"`
	TransactionID      string                     `json:"transactionId,omitempty"`
	Username           string                     `json:"username,omitempty"`
	CurrentStep        string                     `json:"currentStep,omitempty"`
	TransactionDetails *domain.TransactionDetails `json:"transactionDetails,omitempty"`
}

func newSessionCmd(provide appProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or discard stored confirmation sessions",
	}

	cmd.AddCommand(newSessionShowCmd(provide), newSessionClearCmd(provide))

	return cmd
}

func newSessionShowCmd(provide appProvider) *cobra.Command {
	var tab string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}

			scope := domain.Scope(tab)
			stored, err := a.repo.Load(cmd.Context(), scope)
			if err != nil {
				return fmt.Errorf("load session: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(storedSessionOutput{
					Scope:              string(scope),
					TransactionID:      stored.TransactionID.String(),
					Username:           stored.Username,
					CurrentStep:        string(stored.Step),
					TransactionDetails: stored.Details,
				})
			}

			return writeStoredSession(cmd.OutOrStdout(), scope, stored)
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(domain.DefaultScope), "Session scope")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newSessionClearCmd(provide appProvider) *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}

			if err := a.repo.Clear(cmd.Context(), domain.Scope(tab)); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared session %s\n", tab)
			return err
		},
	}

	cmd.Flags().StringVar(&tab, "tab", string(domain.DefaultScope), "Session scope")

	return cmd
}

func writeStoredSession(w io.Writer, scope domain.Scope, stored domain.StoredSession) error {
	if stored.IsZero() {
		_, err := fmt.Fprintf(w, "no stored session for %s\n", scope)
		return err
	}

	step := stored.Step
	if step == "" {
		step = domain.StepUsername
	}

	lines := []string{
		fmt.Sprintf("scope: %s", scope),
		fmt.Sprintf("transaction: %s", stored.TransactionID),
		fmt.Sprintf("step: %s", step),
	}
	if stored.Username != "" {
		lines = append(lines, fmt.Sprintf("username: %s", stored.Username))
	}
	if stored.Details != nil {
		lines = append(lines,
			fmt.Sprintf("amount: $%s", stored.Details.AmountLabel()),
			fmt.Sprintf("biller: %s", stored.Details.BillerLabel()),
			fmt.Sprintf("description: %s", stored.Details.DescriptionLabel()),
		)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
