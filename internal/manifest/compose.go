package manifest

import (
	"github.com/hashicorp/go-hclog"

	"github.com/cameronsjo/boshcf/internal/config"
)

// Contributor extends a core manifest with a service tier's jobs, resource
// pools, and properties. Each method is called once per composition, in
// declaration order, and must keep the core job and pool intact.
type Contributor interface {
	AddCoreJobsToManifest(doc *Document) error
	AddResourcePoolsToManifest(doc *Document) error
	AddJobsToManifest(doc *Document) error
	MergePropertiesIntoManifest(doc *Document) error
}

// ContributorFactory builds the contributor for one system. It is called on
// every Compose so contributors need not be reentrant.
type ContributorFactory func(sys *config.SystemConfig) (Contributor, error)

// NopContributor leaves the manifest unchanged.
type NopContributor struct{}

func (NopContributor) AddCoreJobsToManifest(*Document) error       { return nil }
func (NopContributor) AddResourcePoolsToManifest(*Document) error  { return nil }
func (NopContributor) AddJobsToManifest(*Document) error           { return nil }
func (NopContributor) MergePropertiesIntoManifest(*Document) error { return nil }

var _ Contributor = NopContributor{}

// Composer renders a system's core deployment manifest.
type Composer struct {
	newContributor  ContributorFactory
	logger          hclog.Logger
	checkInvariants bool
}

// Option configures a Composer.
type Option func(*Composer)

// WithContributorFactory sets the factory for the tier contributor.
func WithContributorFactory(f ContributorFactory) Option {
	return func(c *Composer) { c.newContributor = f }
}

// WithContributor uses a fixed contributor for every composition.
func WithContributor(contributor Contributor) Option {
	return WithContributorFactory(func(*config.SystemConfig) (Contributor, error) {
		return contributor, nil
	})
}

// WithLogger sets the trace logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Composer) { c.logger = logger }
}

// WithoutInvariantCheck trusts the contributor and skips CheckInvariants.
func WithoutInvariantCheck() Option {
	return func(c *Composer) { c.checkInvariants = false }
}

// NewComposer creates a Composer. Without options it uses NopContributor,
// a null logger, and checks invariants after the contributor runs.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		newContributor: func(*config.SystemConfig) (Contributor, error) {
			return NopContributor{}, nil
		},
		logger:          hclog.NewNullLogger(),
		checkInvariants: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("compose")
	return c
}

// Compose validates sys, builds the base manifest, and runs the contributor
// over it. Failures are returned as *CompositionError and no document is
// returned with them.
func (c *Composer) Compose(sys *config.SystemConfig, common *config.CommonConfig, bosh *config.BoshConfig) (*Document, error) {
	if err := ValidateSystemConfig(sys); err != nil {
		return nil, &CompositionError{Step: "validate", Err: err}
	}

	deploymentName := DeploymentName(sys.SystemName)
	logger := c.logger.With("deployment", deploymentName)

	// An unknown director is left blank; the BOSH CLI fills it on deploy.
	directorUUID, err := bosh.DirectorIdentity(common)
	if err != nil {
		logger.Debug("no director UUID", "error", err)
	}

	coreCloudProperties, err := CloudPropertiesForServerFlavor(sys.CoreServerFlavor, sys.BoshProvider)
	if err != nil {
		return nil, &CompositionError{Step: "cloud_properties", Err: err}
	}

	doc := BaseManifest(BaseParams{
		DeploymentName:       deploymentName,
		DirectorUUID:         directorUUID,
		BoshProvider:         sys.BoshProvider,
		SystemName:           sys.SystemName,
		ReleaseName:          sys.ReleaseName,
		ReleaseVersion:       sys.ReleaseVersion,
		StemcellName:         sys.StemcellName,
		StemcellVersion:      sys.StemcellVersion,
		CoreCloudProperties:  coreCloudProperties,
		CoreIP:               sys.CoreIP,
		RootDNS:              sys.RootDNS,
		AdminEmails:          sys.AdminEmails,
		CommonPassword:       sys.CommonPassword,
		CommonPersistentDisk: sys.CommonPersistentDisk,
		SecurityGroup:        sys.AWSSecurityGroup,
	})
	logger.Debug("built base manifest", "jobs", len(doc.Jobs), "resource_pools", len(doc.ResourcePools))

	contributor, err := c.newContributor(sys)
	if err != nil {
		return nil, &CompositionError{Step: "contributor", Err: err}
	}

	steps := []struct {
		name string
		fn   func(*Document) error
	}{
		{"add_core_jobs", contributor.AddCoreJobsToManifest},
		{"add_resource_pools", contributor.AddResourcePoolsToManifest},
		{"add_jobs", contributor.AddJobsToManifest},
		{"merge_properties", contributor.MergePropertiesIntoManifest},
	}
	for _, step := range steps {
		if err := step.fn(doc); err != nil {
			return nil, &CompositionError{Step: step.name, Err: err}
		}
		logger.Debug("contributor step done", "step", step.name, "jobs", len(doc.Jobs), "resource_pools", len(doc.ResourcePools))
	}

	if c.checkInvariants {
		if err := CheckInvariants(doc); err != nil {
			return nil, &CompositionError{Step: "invariants", Err: err}
		}
	}

	return doc, nil
}
