package terminal

import (
	"fmt"

	"github.com/badnails/TestProjectGateway/internal/adapters/render"
	"github.com/badnails/TestProjectGateway/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderView(page render.Page, s styles) string {
	lines := []string{
		s.title.Render(render.Title),
		s.header.Render(fmt.Sprintf("Transaction ID: %s", page.TransactionLabel())),
	}

	if page.Banner != "" {
		lines = append(lines, s.section.Render(s.banner.Render("! "+page.Banner)))
	}

	lines = append(lines, s.section.Render(renderStep(page, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderStep(page render.Page, s styles) string {
	var parts []string

	switch page.Step {
	case domain.StepPIN:
		parts = append(parts, renderDetails(page.Details, s)...)
		parts = append(parts, "", s.detail.Render(render.PINLabel))
	case domain.StepSuccess:
		parts = append(parts,
			s.success.Render("✓ "+render.SuccessHeading),
			s.body.Render(render.SuccessBody),
		)
	case domain.StepError:
		parts = append(parts,
			s.failure.Render("✗ "+render.ErrorHeading),
			s.body.Render(page.ErrorMessage),
		)
	default:
		parts = append(parts, s.detail.Render(render.UsernameLabel))
	}

	parts = append(parts, s.action.Render(fmt.Sprintf("[ %s ]", page.ActionLabel)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderDetails(details *render.DetailsView, s styles) []string {
	if details == nil {
		return nil
	}

	return []string{
		s.heading.Render(render.DetailsHeading),
		s.detail.Render("Amount: " + details.Amount),
		s.detail.Render("Biller: " + details.Biller),
		s.detail.Render("Description: " + details.Description),
	}
}
