package renderer

import (
	"bytes"
	"fmt"
	"io/fs"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// CoverageHTML renders the coverage report as the published index page: a
// redirect to the latest artifact, with the coverage summary and attribution
// for readers who stay. The markdown body is converted with goldmark and
// inlined into the page shell.
func CoverageHTML(r *CoverageReport) (string, error) {
	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert([]byte(CoverageMarkdown(r)), &body); err != nil {
		return "", fmt.Errorf("cannot convert report to html: %w", err)
	}

	pageContent, err := fs.ReadFile(templates, "templates/index.html")
	if err != nil {
		return "", fmt.Errorf("cannot read page template: %w", err)
	}
	page, err := template.New("index").Parse(string(pageContent))
	if err != nil {
		return "", fmt.Errorf("cannot parse page template: %w", err)
	}

	var out bytes.Buffer
	data := struct {
		LatestFile string
		Body       string
	}{r.LatestFile, body.String()}
	if err := page.Execute(&out, data); err != nil {
		return "", fmt.Errorf("cannot execute page template: %w", err)
	}
	return out.String(), nil
}
