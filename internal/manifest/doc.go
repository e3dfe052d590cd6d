// Package manifest renders BOSH deployment manifests for Cloud Foundry systems.
//
// A manifest is composed in a fixed pipeline:
//
//   - ValidateSystemConfig checks every required field up front
//   - CloudPropertiesForServerFlavor maps the core flavor to provider cloud_properties
//   - BaseManifest builds the single-node "core" deployment
//   - a Contributor adds its tier's jobs, resource pools, and properties
//   - CheckInvariants confirms the core job and pool survived
//
// # Core Topology
//
// Every bundled service runs on one job and one resource pool, both named
// "core":
//
//	resource_pools:
//	  - name: core
//	    network: default
//	    size: 1
//	jobs:
//	  - name: core
//	    template: [postgres, nats, router, ...]
//	    resource_pool: core
//
// # Contributors
//
// Scaling out is a contributor's job. The DEA contributor, for example,
// appends a "dea" pool and job and raises properties.dea.max_memory:
//
//	doc, err := manifest.NewComposer(
//		manifest.WithContributorFactory(dea.Factory),
//	).Compose(sys, common, bosh)
//
// # Output
//
// WriteDeployment writes deployments/<system>-core.yml under the system's
// render lock. A changed manifest is snapshotted before it is replaced.
package manifest
