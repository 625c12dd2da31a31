package view

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// exec renders the named template to a string.
func exec(name string, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// mustExec is exec for templates whose data cannot make them fail.
func mustExec(name string, data any) string {
	s, err := exec(name, data)
	if err != nil {
		panic(err)
	}
	return s
}
