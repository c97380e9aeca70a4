// Package render produces the HTML fragment listing guestbook entries.
// The fragment's root carries hx-swap-oob so a POST response can replace
// the list in place.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/dmitrijs2005/guestbook/internal/server/guestbook"
	"github.com/dmitrijs2005/guestbook/internal/server/models"
)

const fragment = `<div id="entries" hx-swap-oob="true">
{{- range . }}
<div class="entry">
<div class="entry_name">
<p style="color: {{ .Color | css }};">{{ .Name }}</p>
{{- if .Host }}
<a href="{{ .Domain }}" target="_blank" style="color: lightgray;"><span style="font-size: 0.7em; margin: 0px;">@</span>{{ .Host }}</a>
{{- end }}
<p class="time">{{ .Time }}</p>
</div>
<p class="entry_message">{{ .Message }}</p>
</div>
{{- end }}
</div>`

var tmpl = template.Must(template.New("entries").Funcs(template.FuncMap{
	"css": func(s string) template.CSS {
		// Only "#rrggbb" reaches the style attribute.
		if !models.IsHexColor(s) {
			s = models.DefaultColor
		}
		return template.CSS(s)
	},
}).Parse(fragment))

type row struct {
	models.Entry
	Host string
}

// Entries renders list in the order given. All user fields are escaped.
func Entries(list []models.Entry) (string, error) {
	rows := make([]row, 0, len(list))
	for _, e := range list {
		rows = append(rows, row{Entry: e, Host: guestbook.DomainHost(e.Domain)})
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, rows); err != nil {
		return "", fmt.Errorf("render entries: %w", err)
	}
	return b.String(), nil
}
