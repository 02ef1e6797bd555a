package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// SummaryRenderOptions holds configuration for rendering a summary report.
type SummaryRenderOptions struct {
	SkipCategories bool // Do not render the spending breakdown.
}

// RenderSummary renders the Dashboard to a markdown string.
func RenderSummary(d *Dashboard, opts SummaryRenderOptions) string {
	partials := map[string]string{
		"summary_balances": "summary_balances.md",
		"summary_debts":    "summary_debts.md",
	}
	// An empty file name results in an empty template.
	if !opts.SkipCategories {
		partials["summary_categories"] = "summary_categories.md"
	} else {
		partials["summary_categories"] = ""
	}
	return renderTemplate("summary", "summary.md", partials, d)
}

// RenderList renders a List to a markdown string.
func RenderList(l *List) string {
	partials := map[string]string{
		"list_table": "list_table.md",
	}
	return renderTemplate("list", "list.md", partials, l)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
