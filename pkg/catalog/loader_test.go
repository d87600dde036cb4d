package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

const catalogYAML = `
metadata:
  generated_at: "2025-01-15T10:00:00Z"
services:
  - name: gateway
    domain: access
    maturity: stable
    dependencies:
      internal:
        - auth-service
      external:
        - redis
  - name: auth-service
    domain: access
    maturity: stable
`

const catalogJSON = `{
  "services": [
    {
      "name": "gateway",
      "domain": "access",
      "dependencies": {"internal": ["auth-service"], "external": ["redis"]}
    },
    {"name": "auth-service", "domain": "access"}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.yaml", catalogYAML)

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cat.Services) != 2 {
		t.Fatalf("Expected 2 services, got %d", len(cat.Services))
	}
	if cat.Metadata.GeneratedAt != "2025-01-15T10:00:00Z" {
		t.Errorf("Unexpected generated_at: %s", cat.Metadata.GeneratedAt)
	}

	gateway := cat.Services[0]
	if gateway.Name != "gateway" || gateway.Domain != "access" || gateway.Maturity != "stable" {
		t.Errorf("Unexpected service: %+v", gateway)
	}
	if len(gateway.Dependencies.Internal) != 1 || gateway.Dependencies.Internal[0] != "auth-service" {
		t.Errorf("Unexpected internal deps: %v", gateway.Dependencies.Internal)
	}
	if len(gateway.Dependencies.External) != 1 || gateway.Dependencies.External[0] != "redis" {
		t.Errorf("Unexpected external deps: %v", gateway.Dependencies.External)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.json", catalogJSON)

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cat.Services) != 2 {
		t.Errorf("Expected 2 services, got %d", len(cat.Services))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "no-such-catalog.yaml")); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

func TestLoadUnparsable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.yaml", "services: [unterminated")
	if _, err := Load(path); err == nil {
		t.Error("Expected error for unparsable catalog")
	}
}

func TestLoadRejectsMissingName(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.yaml", `
services:
  - domain: access
`)
	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for service without a name")
	}
}

func TestFindExplicitPath(t *testing.T) {
	path, err := Find("some/explicit/path.yaml")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if path != "some/explicit/path.yaml" {
		t.Errorf("Explicit path should win, got %s", path)
	}
}

func TestFindProbesDefaultLocations(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := Find(""); err == nil {
		t.Error("Expected error when no catalog file exists")
	}

	if err := os.MkdirAll(filepath.Join(dir, "catalog"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "catalog"), "service-index.json", catalogJSON)

	path, err := Find("")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if filepath.Base(path) != "service-index.json" {
		t.Errorf("Expected service-index.json, got %s", path)
	}

	// YAML wins over JSON when both are present
	writeFile(t, filepath.Join(dir, "catalog"), "service-index.yaml", catalogYAML)
	path, err = Find("")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if filepath.Base(path) != "service-index.yaml" {
		t.Errorf("Expected service-index.yaml to win, got %s", path)
	}
}

func TestDomainIndex(t *testing.T) {
	cat := &Catalog{
		Services: []Service{
			{Name: "gateway", Domain: "access"},
			{Name: "orphan"},
		},
	}

	domains := cat.DomainIndex()
	if domains["gateway"] != "access" {
		t.Errorf("Expected access, got %s", domains["gateway"])
	}
	if domains["orphan"] != "" {
		t.Errorf("Expected empty domain, got %s", domains["orphan"])
	}
}
