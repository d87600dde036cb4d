package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/254carbon/graph-validator/pkg/logging"
)

var validate = validator.New()

// Find locates the catalog file. An explicit path wins; otherwise the
// standard locations under catalog/ are probed in order.
func Find(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	candidates := []string{
		filepath.Join("catalog", "service-index.yaml"),
		filepath.Join("catalog", "service-index.json"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no catalog file found in catalog/ (run the catalog build first)")
}

// Load reads and parses a catalog file, YAML or JSON by extension, and
// validates required fields once up front.
func Load(path string) (*Catalog, error) {
	logging.Info("loading catalog", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var cat Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parsing catalog YAML %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("parsing catalog JSON %s: %w", path, err)
		}
	}

	if err := validate.Struct(&cat); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	logging.Debug("catalog loaded", "services", len(cat.Services))
	return &cat, nil
}
