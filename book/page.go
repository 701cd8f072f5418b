package book

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"io"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/chrisuehlinger/lightdom/dom"
)

//go:embed page.tmpl
var pageTemplate string

var page = template.Must(template.New("page").Funcs(sprig.FuncMap()).Parse(pageTemplate))

type pageValues struct {
	Title string
	Body  string
}

// WritePage writes a standalone HTML page with root rendered inside body.
func WritePage(w io.Writer, title string, root *dom.Node) error {
	var buf bytes.Buffer
	err := page.Execute(&buf, pageValues{
		Title: html.EscapeString(title),
		Body:  root.Render(2),
	})
	if err != nil {
		return fmt.Errorf("unable to expand page template: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}
