// Package render produces the small-format HTML view of an assembled
// edition, sized for a networked receipt printer.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"editionapi/internal/platform/eventbrite"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed samples/*.json
var samplesFS embed.FS

// PublicationData is everything the publication template needs.
type PublicationData struct {
	User    eventbrite.User
	Events  []eventbrite.Event
	Tickets []eventbrite.Order
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"pluralize":  Pluralize,
		"timePeriod": FormatTimePeriod,
		"address":    FormatAddress,
		"shortURL":   FormatURL,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %v", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Publication writes the edition view.
func (r *Renderer) Publication(w io.Writer, data PublicationData) error {
	return r.tmpl.ExecuteTemplate(w, "publication.html", data)
}

// Sample returns the embedded fixture data used by the /sample/ route so
// the print layout can be previewed without an Eventbrite account.
func Sample() (PublicationData, error) {
	data := PublicationData{
		User: eventbrite.User{
			ID:        999999,
			FirstName: "Francis",
			LastName:  "Overton",
			Email:     "francis@example.com",
		},
	}

	if err := loadFixture("samples/events.json", &data.Events); err != nil {
		return PublicationData{}, err
	}
	if err := loadFixture("samples/tickets.json", &data.Tickets); err != nil {
		return PublicationData{}, err
	}
	return data, nil
}

func loadFixture(name string, target any) error {
	raw, err := samplesFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading fixture %s: %v", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decoding fixture %s: %v", name, err)
	}
	return nil
}
