// Package render turns display records into markup. All renderers are pure
// functions over their input lists.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/naka-gawa/readme-activity/internal/domain"
)

//go:embed templates/prtable.html.tmpl
var prTableTemplate string

//go:embed templates/committable.html.tmpl
var commitTableTemplate string

var tableFuncs = template.FuncMap{
	"date":   func(t time.Time) string { return t.Format("2006-01-02") },
	"escape": template.HTMLEscapeString,
}

var (
	prTableTmpl     = template.Must(template.New("prtable").Funcs(tableFuncs).Parse(prTableTemplate))
	commitTableTmpl = template.Must(template.New("committable").Funcs(tableFuncs).Parse(commitTableTemplate))
)

// PRTable renders the recent pull requests table, or a placeholder comment
// when there are no rows.
func PRTable(rows []domain.PullRequestRow) (string, error) {
	return renderTable(prTableTmpl, struct{ Rows []domain.PullRequestRow }{rows})
}

// CommitTable renders the recent commits table, or a placeholder comment
// when there are no rows.
func CommitTable(rows []domain.CommitRow) (string, error) {
	return renderTable(commitTableTmpl, struct{ Rows []domain.CommitRow }{rows})
}

func renderTable(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
