package web

import (
	"embed"
	"html/template"
	"unicode"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// parseTemplates builds the page template set. html/template escapes all
// interpolated catalog and user text contextually, which is what keeps
// hostile product titles from injecting markup.
func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string {
			return "$" + decimal.NewFromFloat(v).StringFixed(2)
		},
		"moneyDec": func(d decimal.Decimal) string {
			return "$" + d.StringFixed(2)
		},
		"capitalize": capitalize,
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")
}

// capitalize upcases the first rune, display only. The underlying category
// value used for filtering is never changed.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
