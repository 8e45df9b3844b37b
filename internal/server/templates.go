package server

import (
	"embed"
	"html/template"
	"math"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"formatNumber": func(f float64) string {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return humanize.Comma(int64(f))
		}
		return humanize.CommafWithDigits(f, 2)
	},
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
		"templates/layout.html", "templates/node.html", "templates/"+name))
}

var dashboardTemplate = parsePage("dashboard.html")
var editorTemplate = parsePage("editor.html")
