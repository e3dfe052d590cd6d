// Package dea contributes the DEA (droplet execution agent) worker tier to
// a core deployment manifest.
//
// With no dedicated DEA VMs the agent is co-located on the core job. With a
// positive count it gets its own resource pool and job. Either way the agent's
// memory limit is derived from the flavor it runs on.
package dea

import (
	"errors"
	"fmt"

	"github.com/cameronsjo/boshcf/internal/config"
	"github.com/cameronsjo/boshcf/internal/manifest"
)

// Name is the job, resource pool and template name of the DEA tier.
const Name = "dea"

const (
	// reservedMemoryMB is left to the OS and co-located services.
	reservedMemoryMB = 1024

	// minMaxMemoryMB is the smallest max_memory ever emitted.
	minMaxMemoryMB = 512
)

// ErrUnknownFlavor indicates a server flavor with no known RAM size.
var ErrUnknownFlavor = errors.New("unknown server flavor")

// flavorMemoryMB is the RAM of each AWS instance type, in MB.
var flavorMemoryMB = map[string]int{
	"t1.micro":   613,
	"m1.small":   1740,
	"m1.medium":  3840,
	"m1.large":   7680,
	"m1.xlarge":  15360,
	"m2.xlarge":  17510,
	"m2.2xlarge": 35020,
	"m2.4xlarge": 70041,
	"c1.medium":  1740,
	"c1.xlarge":  7168,
}

// Contributor adds the DEA tier. Build it with FromSystemConfig.
type Contributor struct {
	count           int
	flavor          string
	cloudProperties manifest.CloudProperties
	maxMemory       int
}

var _ manifest.Contributor = (*Contributor)(nil)

// FromSystemConfig resolves the DEA tier of sys. The DEA flavor defaults to
// the core flavor. Flavors without a known RAM size and unsupported
// providers are rejected here, before any manifest is touched.
func FromSystemConfig(sys *config.SystemConfig) (*Contributor, error) {
	if sys == nil {
		return nil, errors.New("dea: nil system config")
	}
	if sys.Dea.Count < 0 {
		return nil, fmt.Errorf("dea: count must not be negative, got %d", sys.Dea.Count)
	}

	flavor := sys.Dea.ServerFlavor
	if sys.Dea.Count == 0 || flavor == "" {
		flavor = sys.CoreServerFlavor
	}

	maxMemory, err := MaxMemory(flavor)
	if err != nil {
		return nil, fmt.Errorf("dea: %w", err)
	}

	c := &Contributor{
		count:     sys.Dea.Count,
		flavor:    flavor,
		maxMemory: maxMemory,
	}

	if c.count > 0 {
		c.cloudProperties, err = manifest.CloudPropertiesForServerFlavor(flavor, sys.BoshProvider)
		if err != nil {
			return nil, fmt.Errorf("dea: %w", err)
		}
	}

	return c, nil
}

// Factory is FromSystemConfig as a manifest.ContributorFactory.
func Factory(sys *config.SystemConfig) (manifest.Contributor, error) {
	c, err := FromSystemConfig(sys)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// MaxMemory returns the DEA max_memory in MB for a server flavor: the
// flavor's RAM less a fixed reservation, never below 512.
func MaxMemory(flavor string) (int, error) {
	ram, ok := flavorMemoryMB[flavor]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownFlavor, flavor)
	}
	return max(ram-reservedMemoryMB, minMaxMemoryMB), nil
}

// Colocated reports whether the DEA runs on the core job.
func (c *Contributor) Colocated() bool {
	return c.count == 0
}

// Flavor is the server flavor the DEA runs on.
func (c *Contributor) Flavor() string {
	return c.flavor
}

// Count is the number of dedicated DEA VMs.
func (c *Contributor) Count() int {
	return c.count
}

// AddCoreJobsToManifest appends the dea template to the core job when co-located.
func (c *Contributor) AddCoreJobsToManifest(doc *manifest.Document) error {
	if !c.Colocated() {
		return nil
	}

	core := doc.Job(manifest.CoreName)
	if core == nil {
		return fmt.Errorf("dea: job %q not found", manifest.CoreName)
	}
	for _, tmpl := range core.Template {
		if tmpl == Name {
			return nil
		}
	}
	core.Template = append(core.Template, Name)
	return nil
}

// AddResourcePoolsToManifest appends the dea pool, on the core stemcell.
func (c *Contributor) AddResourcePoolsToManifest(doc *manifest.Document) error {
	if c.Colocated() {
		return nil
	}

	corePool := doc.ResourcePool(manifest.CoreName)
	if corePool == nil {
		return fmt.Errorf("dea: resource pool %q not found", manifest.CoreName)
	}

	cloudProperties := make(manifest.CloudProperties, len(c.cloudProperties))
	for k, v := range c.cloudProperties {
		cloudProperties[k] = v
	}

	doc.ResourcePools = append(doc.ResourcePools, manifest.ResourcePool{
		Name:            Name,
		Network:         manifest.DefaultNetwork,
		Size:            c.count,
		Stemcell:        corePool.Stemcell,
		CloudProperties: cloudProperties,
	})
	return nil
}

// AddJobsToManifest appends the dea job.
func (c *Contributor) AddJobsToManifest(doc *manifest.Document) error {
	if c.Colocated() {
		return nil
	}

	doc.Jobs = append(doc.Jobs, manifest.Job{
		Name:         Name,
		Template:     []string{Name},
		Instances:    c.count,
		ResourcePool: Name,
		Networks: []manifest.JobNetwork{
			{Name: manifest.DefaultNetwork, Default: []string{"dns", "gateway"}},
		},
	})
	return nil
}

// MergePropertiesIntoManifest sets dea.max_memory.
func (c *Contributor) MergePropertiesIntoManifest(doc *manifest.Document) error {
	manifest.MergeProperties(doc, map[string]any{
		"dea": map[string]any{"max_memory": c.maxMemory},
	})
	return nil
}
