package templates

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	content, err := Get("blob.c.tmpl")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if !strings.Contains(content, "{{.Basename}}_data[] = {") {
		t.Errorf("blob.c.tmpl missing array declaration, got:\n%s", content)
	}
	if !strings.HasSuffix(content, "_size = {{.Size}};\n") {
		t.Errorf("blob.c.tmpl must end with the size declaration and one newline")
	}
}

func TestGet_Missing(t *testing.T) {
	_, err := Get("nope.tmpl")
	if err == nil || !strings.Contains(err.Error(), "template nope.tmpl not found") {
		t.Errorf("Get() error = %v, want not found", err)
	}
}
