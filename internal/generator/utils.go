package generator

import (
	"fmt"
	"io"
	"text/template"

	"github.com/xll-gen/blob2c/internal/templates"
)

// executeTemplate loads a template, parses it and executes it into w.
func executeTemplate(tmplName string, w io.Writer, data interface{}) error {
	tmplContent, err := templates.Get(tmplName)
	if err != nil {
		return err
	}

	t, err := template.New(tmplName).Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", tmplName, err)
	}

	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", tmplName, err)
	}
	return nil
}
