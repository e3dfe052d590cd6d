package manifest

import "strings"

// Well-known names in the core deployment topology.
const (
	// CoreName names both the core job and the core resource pool.
	CoreName = "core"

	// DefaultNetwork is the dynamic network every VM joins.
	DefaultNetwork = "default"

	// VIPNetwork carries externally routable static IPs.
	VIPNetwork = "vip_network"
)

// Document is a BOSH deployment manifest. Field order is the emitted key order.
type Document struct {
	Name         string  `yaml:"name"`
	DirectorUUID string  `yaml:"director_uuid"`
	Release      Release `yaml:"release"`

	Compilation Compilation `yaml:"compilation"`
	Update      Update      `yaml:"update"`

	// Networks, ResourcePools and Jobs are ordered; BOSH reads them in order.
	Networks      []Network      `yaml:"networks"`
	ResourcePools []ResourcePool `yaml:"resource_pools"`
	Jobs          []Job          `yaml:"jobs"`

	Properties Properties `yaml:"properties"`
}

// Release pins the BOSH release to deploy.
type Release struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Compilation configures the package compilation workers.
type Compilation struct {
	Workers             int             `yaml:"workers"`
	Network             string          `yaml:"network"`
	ReuseCompilationVMs bool            `yaml:"reuse_compilation_vms"`
	CloudProperties     CloudProperties `yaml:"cloud_properties"`
}

// Update is the canary and rollout policy.
type Update struct {
	Canaries        int    `yaml:"canaries"`
	CanaryWatchTime string `yaml:"canary_watch_time"`
	UpdateWatchTime string `yaml:"update_watch_time"`
	MaxInFlight     int    `yaml:"max_in_flight"`
	MaxErrors       int    `yaml:"max_errors"`
}

// Network is a named BOSH network.
type Network struct {
	Name            string          `yaml:"name"`
	Type            string          `yaml:"type"`
	CloudProperties CloudProperties `yaml:"cloud_properties"`
}

// Stemcell pins the base VM image of a resource pool.
type Stemcell struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ResourcePool is a group of identically sized VMs.
type ResourcePool struct {
	Name            string          `yaml:"name"`
	Network         string          `yaml:"network"`
	Size            int             `yaml:"size"`
	Stemcell        Stemcell        `yaml:"stemcell"`
	CloudProperties CloudProperties `yaml:"cloud_properties"`
	PersistentDisk  int             `yaml:"persistent_disk,omitempty"`
}

// Job binds job templates to a resource pool. Template order is the start
// order hint given to BOSH.
type Job struct {
	Name           string       `yaml:"name"`
	Template       []string     `yaml:"template"`
	Instances      int          `yaml:"instances"`
	ResourcePool   string       `yaml:"resource_pool"`
	Networks       []JobNetwork `yaml:"networks"`
	PersistentDisk int          `yaml:"persistent_disk,omitempty"`
}

// JobNetwork attaches a job to a network.
type JobNetwork struct {
	Name      string   `yaml:"name"`
	Default   []string `yaml:"default,omitempty"`
	StaticIPs []string `yaml:"static_ips,omitempty"`
}

// CloudProperties holds the provider-specific settings of a VM or network.
type CloudProperties map[string]any

// Properties is the per-service job configuration tree.
type Properties map[string]any

// Lookup resolves a dotted path such as "router.local_route".
func (p Properties) Lookup(path string) (any, bool) {
	var current any = map[string]any(p)
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Job returns the named job, or nil.
func (d *Document) Job(name string) *Job {
	for i := range d.Jobs {
		if d.Jobs[i].Name == name {
			return &d.Jobs[i]
		}
	}
	return nil
}

// ResourcePool returns the named resource pool, or nil.
func (d *Document) ResourcePool(name string) *ResourcePool {
	for i := range d.ResourcePools {
		if d.ResourcePools[i].Name == name {
			return &d.ResourcePools[i]
		}
	}
	return nil
}

// DeploymentName derives the core deployment name for a system.
func DeploymentName(systemName string) string {
	return systemName + "-" + CoreName
}
