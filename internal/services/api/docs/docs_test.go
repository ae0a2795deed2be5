package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestRegisteredDoc(t *testing.T) {
	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatal(err)
	}
	var d struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("doc is not json: %v", err)
	}
	if d.OpenAPI != "3.0.3" {
		t.Fatalf("openapi = %q", d.OpenAPI)
	}
	want := map[string]string{
		"/predict":       "post",
		"/predict/batch": "post",
		"/meta/health":   "get",
		"/meta/ready":    "get",
		"/meta/version":  "get",
		"/meta/service":  "get",
		"/meta/model":    "get",
	}
	for path, method := range want {
		if _, ok := d.Paths[path][method]; !ok {
			t.Errorf("missing %s %s", method, path)
		}
	}
}
