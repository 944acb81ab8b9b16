package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

var tpls = htmpl.Must(htmpl.ParseFS(FS, "*.tmpl"))

// Render renders the named template with data and returns subject and HTML
// body. Each template file defines a "<name>_subject" block; the rest of the
// file is the body.
func Render(name string, data map[string]any) (subject, html string, err error) {
	t := tpls.Lookup(name + ".tmpl")
	if t == nil {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", "", err
	}
	var subj bytes.Buffer
	if s := tpls.Lookup(name + "_subject"); s != nil {
		if err := s.Execute(&subj, data); err != nil {
			return "", "", err
		}
	}
	return subj.String(), body.String(), nil
}
