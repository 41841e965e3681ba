// Package directory holds the registry of vetted initiatives the
// discovery stage offers to users. The default dataset is embedded; a
// deployment may substitute its own YAML file.
package directory

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed initiatives.yaml
var defaultDataset []byte

// Initiative is one vetted organization.
type Initiative struct {
	Name               string  `yaml:"name" json:"name"`
	HQ                 string  `yaml:"hq" json:"hq"`
	Mission            string  `yaml:"mission" json:"mission"`
	ImpactMetrics      string  `yaml:"impact_metrics" json:"impact_metrics"`
	Rating             float64 `yaml:"rating" json:"rating"`
	Efficiency         float64 `yaml:"efficiency" json:"efficiency"`
	VerificationSource string  `yaml:"verification_source" json:"verification_source"`
	Website            string  `yaml:"website" json:"website"`
}

// Directory is a region-keyed registry of initiatives.
type Directory struct {
	regions map[string][]Initiative
}

type dataset struct {
	Regions map[string][]Initiative `yaml:"regions"`
}

// Default returns the embedded registry.
func Default() *Directory {
	d, err := parse(defaultDataset)
	if err != nil {
		panic(fmt.Sprintf("directory: embedded dataset invalid: %v", err))
	}
	return d
}

// LoadFile reads a registry from a YAML file.
func LoadFile(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("directory: load %q: %w", path, err)
	}
	d, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("directory: parse %q: %w", path, err)
	}
	return d, nil
}

func parse(data []byte) (*Directory, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	if len(ds.Regions) == 0 {
		return nil, fmt.Errorf("no regions defined")
	}
	return &Directory{regions: ds.Regions}, nil
}

// Regions lists the registry's region keys, sorted.
func (d *Directory) Regions() []string {
	keys := make([]string, 0, len(d.regions))
	for k := range d.regions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ByRegion returns the vetted initiatives for a region. The special
// region "africa" returns every initiative across all regions.
func (d *Directory) ByRegion(region string) []Initiative {
	region = strings.ToLower(strings.TrimSpace(region))
	if region == "africa" {
		var all []Initiative
		for _, k := range d.Regions() {
			all = append(all, d.regions[k]...)
		}
		return all
	}
	out := make([]Initiative, len(d.regions[region]))
	copy(out, d.regions[region])
	return out
}

// Find looks an initiative up by exact name, case-insensitively.
func (d *Directory) Find(name string) (Initiative, bool) {
	for _, region := range d.regions {
		for _, ini := range region {
			if strings.EqualFold(ini.Name, name) {
				return ini, true
			}
		}
	}
	return Initiative{}, false
}
