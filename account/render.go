package account

import (
	"html/template"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// viewTemplate mirrors the markup of a Bootstrap dropdown button, the ids are used to address elements in UI tests.
var viewTemplate = template.Must(template.New("account").Parse(`<div id="active-account">{{.Text}}` +
	`<div class="btn-group dropdown">` +
	`<button id="accounts" type="button" class="btn btn-primary dropdown-toggle" data-toggle="dropdown" aria-haspopup="true" aria-expanded="false">{{.Title}} <span class="caret"></span></button>` +
	`<ul class="dropdown-menu" role="menu" aria-labelledby="accounts">` +
	`{{range .Items}}<li role="presentation" data-key="{{.Key}}"><a id="{{.ID}}" role="menuitem" tabindex="-1" href="#" data-event-key="{{.Value}}">{{.Label}}</a></li>{{end}}` +
	`</ul></div></div>`))

// WriteHTML writes the view as HTML to w.
func (v View) WriteHTML(w io.Writer) error {
	return viewTemplate.Execute(w, v)
}

var (
	activeStyle      = lipgloss.NewStyle().Bold(true)
	placeholderStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#7f849c"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	itemStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de"))
	currentItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
)

// Terminal returns the view styled for a terminal, the item of the active account is marked.
func (v View) Terminal() string {
	sb := strings.Builder{}
	if v.Active {
		sb.WriteString(activeStyle.Render(v.Text))
	} else {
		sb.WriteString(placeholderStyle.Render(v.Text))
	}
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render(v.Title))
	for _, item := range v.Items {
		sb.WriteString("\n")
		if v.Active && item.Value == v.Text {
			sb.WriteString(currentItemStyle.Render("> " + item.Label))
		} else {
			sb.WriteString(itemStyle.Render("  " + item.Label))
		}
	}
	return sb.String()
}
