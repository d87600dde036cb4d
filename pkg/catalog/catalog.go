package catalog

// Metadata describes how and when the catalog document was produced
type Metadata struct {
	GeneratedAt string `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Dependencies holds the declared dependencies of a single service
type Dependencies struct {
	Internal []string `json:"internal,omitempty" yaml:"internal,omitempty"` // names of other catalog services
	External []string `json:"external,omitempty" yaml:"external,omitempty"` // infrastructure components (redis, kafka, ...)
}

// Service is one entry in the service catalog
type Service struct {
	Name         string       `json:"name" yaml:"name" validate:"required"`
	Domain       string       `json:"domain,omitempty" yaml:"domain,omitempty"`
	Maturity     string       `json:"maturity,omitempty" yaml:"maturity,omitempty"`
	Dependencies Dependencies `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Catalog is the parsed service catalog document
type Catalog struct {
	Metadata Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Services []Service `json:"services" yaml:"services" validate:"dive"`
}

// DomainIndex maps service names to their domains.
// Services without a domain map to the empty string.
func (c *Catalog) DomainIndex() map[string]string {
	domains := make(map[string]string, len(c.Services))
	for _, svc := range c.Services {
		domains[svc.Name] = svc.Domain
	}
	return domains
}
