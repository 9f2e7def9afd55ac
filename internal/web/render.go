// Package web renders the server's HTML pages. The original template
// inheritance is expressed as explicit composition: every page defines a
// "content" template that is executed inside the shared layout.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates
var templateFS embed.FS

var pageFiles = []string{
	"login.html",
	"dashboard.html",
	"view_greenhouses.html",
	"create_greenhouse.html",
	"input_form.html",
	"all_issues.html",
	"historical_data.html",
	"view_employees.html",
	"create_employee.html",
	"edit_employee.html",
}

// Renderer holds one parsed template set per page, each composed with the
// shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout together with every page template.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		page, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		pages[name] = page
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the page inside the layout. The document is buffered so a
// template error never leaves a partial page on the wire.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Frame is the data every page hands to the layout: the title, the signed-in
// viewer for the navigation bar, and the flash messages to display.
type Frame struct {
	Title   string
	Viewer  *Viewer
	Flashes []Flash
}

// Viewer identifies the signed-in employee to the layout.
type Viewer struct {
	ID      int64
	Name    string
	IsAdmin bool
}

// NewFrame collects the layout data for a page render, consuming any flash
// messages queued by a previous request.
func NewFrame(w http.ResponseWriter, r *http.Request, title string) Frame {
	return Frame{
		Title:   title,
		Flashes: PopFlashes(w, r),
	}
}

// Flash appends a message shown on this render only, for handlers that
// re-render a page instead of redirecting.
func (f *Frame) Flash(category, message string) {
	f.Flashes = append(f.Flashes, Flash{Category: category, Message: message})
}

// Pagination describes one page of a longer listing.
type Pagination struct {
	Page    int
	PerPage int
	Total   int64
}

// Pages returns the number of pages the listing spans.
func (p Pagination) Pages() int {
	if p.PerPage <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p Pagination) HasPrev() bool { return p.Page > 1 }

func (p Pagination) HasNext() bool { return p.Page < p.Pages() }

func (p Pagination) PrevNum() int { return p.Page - 1 }

func (p Pagination) NextNum() int { return p.Page + 1 }

// RedirectBack sends the browser to the page it came from, or to the
// fallback when the referrer is unknown.
func RedirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
