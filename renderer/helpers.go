package renderer

import (
	"strings"
	"text/template"
)

// funcs are the functions available to every template.
var funcs = template.FuncMap{
	"esc":  cell,
	"row":  row,
	"rule": rule,
}

// cell escapes s so that it fits in a single markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// row renders cells as a markdown table row.
func row(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = cell(c)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

// rule renders the separator row below a table header. Columns listed in
// right are right aligned.
func rule(header []string, right []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i := range header {
		align := ":---|"
		for _, r := range right {
			if r == i {
				align = "---:|"
			}
		}
		b.WriteString(align)
	}
	return b.String()
}
