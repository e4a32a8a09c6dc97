package web

import (
	"fmt"
	"io"
	"net/url"

	"github.com/badnails/TestProjectGateway/internal/adapters/render"
	"github.com/badnails/TestProjectGateway/internal/domain"
)

const (
	pageTemplate   = "page.html"
	closedTemplate = "closed.html"
)

type pageData struct {
	render.Page
	Title          string
	Query          string
	DetailsHeading string
	SuccessHeading string
	SuccessBody    string
	ErrorHeading   string
	BusyLabel      string
	UsernameLabel  string
	PINLabel       string
	MaxPINLength   int
}

// RenderPage writes the full HTML document for the session's current step.
func RenderPage(w io.Writer, session domain.Session) error {
	page := render.NewPage(session)
	data := pageData{
		Page:           page,
		Title:          render.Title,
		Query:          Query(page.TransactionID),
		DetailsHeading: render.DetailsHeading,
		SuccessHeading: render.SuccessHeading,
		SuccessBody:    render.SuccessBody,
		ErrorHeading:   render.ErrorHeading,
		BusyLabel:      render.BusyLabel,
		UsernameLabel:  render.UsernameLabel,
		PINLabel:       render.PINLabel,
		MaxPINLength:   domain.MaxPINLength,
	}

	if err := templates.ExecuteTemplate(w, pageTemplate, data); err != nil {
		return fmt.Errorf("render %s: %w", pageTemplate, err)
	}

	return nil
}

// RenderClosed writes the page shown after the user closes a completed flow.
func RenderClosed(w io.Writer) error {
	if err := templates.ExecuteTemplate(w, closedTemplate, struct{ Title string }{render.Title}); err != nil {
		return fmt.Errorf("render %s: %w", closedTemplate, err)
	}

	return nil
}

// Query is the query string that keeps the transaction id on every form post.
func Query(id domain.TransactionID) string {
	if !id.Present() {
		return ""
	}

	return "?" + url.Values{domain.TransactionIDParam: {id.String()}}.Encode()
}
