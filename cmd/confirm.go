package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/badnails/TestProjectGateway/internal/adapters/render"
	"github.com/badnails/TestProjectGateway/internal/application"
	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

func newConfirmCmd(provide appProvider) *cobra.Command {
	var transactionID string
	var navigationURL string
	var tab string

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm a payment transaction in the terminal",
		Long:  "confirm resumes or starts the confirmation flow for a transaction. The transaction id comes from --transaction-id or from the transactionId query parameter of --url.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := provide(cmd)
			if err != nil {
				return err
			}

			id, err := resolveTransactionID(transactionID, navigationURL)
			if err != nil {
				return err
			}

			return runConfirm(cmd, a, domain.Scope(tab), id)
		},
	}

	cmd.Flags().StringVar(&transactionID, "transaction-id", "", "Transaction ID to confirm")
	cmd.Flags().StringVar(&navigationURL, "url", "", "Payment page URL carrying the transactionId query parameter")
	cmd.Flags().StringVar(&tab, "tab", string(domain.DefaultScope), "Session scope to resume")
	cmd.MarkFlagsMutuallyExclusive("transaction-id", "url")

	return cmd
}

func resolveTransactionID(transactionID, navigationURL string) (domain.TransactionID, error) {
	if navigationURL == "" {
		return domain.TransactionID(strings.TrimSpace(transactionID)), nil
	}

	return domain.TransactionIDFromURL(navigationURL)
}

type confirmPrompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newConfirmPrompter(cmd *cobra.Command) *confirmPrompter {
	in := cmd.InOrStdin()
	return &confirmPrompter{in: in, reader: bufio.NewReader(in), out: cmd.OutOrStdout()}
}

// readLine returns io.EOF once input is exhausted with nothing left to read.
func (p *confirmPrompter) readLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret hides typed input on a terminal.
func (p *confirmPrompter) readSecret(prompt string) (string, error) {
	file, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(file.Fd()) {
		return p.readLine(prompt)
	}

	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	secret, err := term.ReadPassword(file.Fd())
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}

	return string(secret), nil
}

func runConfirm(cmd *cobra.Command, a *app, scope domain.Scope, id domain.TransactionID) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	prompter := newConfirmPrompter(cmd)

	session, err := a.controller.Load(ctx, scope, id)
	if err != nil {
		return err
	}

	for {
		rendered, err := a.terminalRenderer(session)
		if err != nil {
			return fmt.Errorf("render session: %w", err)
		}
		if _, err := fmt.Fprintln(out, rendered); err != nil {
			return err
		}

		var actionErr error
		switch application.ActionFor(session.State) {
		case application.ActionSubmitUsername:
			username, err := prompter.readLine(render.UsernameLabel + ": ")
			if err != nil {
				return endOfInput(err)
			}
			actionErr = runRequestSpinner(ctx, out, render.BusyLabel, func(ctx context.Context) error {
				var err error
				session, err = a.controller.SubmitUsername(ctx, scope, id, username)
				return err
			})
		case application.ActionSubmitPIN:
			pin, err := prompter.readSecret(render.PINLabel + ": ")
			if err != nil {
				return endOfInput(err)
			}
			actionErr = runRequestSpinner(ctx, out, render.BusyLabel, func(ctx context.Context) error {
				var err error
				session, err = a.controller.SubmitPIN(ctx, scope, id, pin)
				return err
			})
		case application.ActionClose:
			if _, err := prompter.readLine("Press Enter to close. "); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			_, err := a.controller.Close(ctx, scope, id)
			return err
		case application.ActionRetry:
			answer, err := prompter.readLine("Press Enter to try again, or q to quit. ")
			if err != nil {
				return endOfInput(err)
			}
			if strings.EqualFold(strings.TrimSpace(answer), "q") {
				return nil
			}
			session, actionErr = a.controller.Retry(ctx, scope, id)
		}

		if actionErr != nil && !domain.IsRejection(actionErr) {
			return actionErr
		}
	}
}

// endOfInput ends the flow quietly when input runs out; the session stays
// stored so a later run resumes it.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
