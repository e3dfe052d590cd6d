package manifest

import (
	"github.com/cameronsjo/boshcf/internal/config"
)

// requiredField is a system config attribute that must be set before rendering.
type requiredField struct {
	name    string
	present func(c *config.SystemConfig) bool
}

// requiredFields is checked in order; missing fields are reported in this order.
var requiredFields = []requiredField{
	{"system_dir", func(c *config.SystemConfig) bool { return c.SystemDir != "" }},
	{"bosh_provider", func(c *config.SystemConfig) bool { return c.BoshProvider != "" }},
	{"release_name", func(c *config.SystemConfig) bool { return c.ReleaseName != "" }},
	{"release_version", func(c *config.SystemConfig) bool { return c.ReleaseVersion != "" }},
	{"stemcell_name", func(c *config.SystemConfig) bool { return c.StemcellName != "" }},
	{"stemcell_version", func(c *config.SystemConfig) bool { return c.StemcellVersion != "" }},
	{"core_server_flavor", func(c *config.SystemConfig) bool { return c.CoreServerFlavor != "" }},
	{"core_ip", func(c *config.SystemConfig) bool { return c.CoreIP != "" }},
	{"root_dns", func(c *config.SystemConfig) bool { return c.RootDNS != "" }},
	{"admin_emails", func(c *config.SystemConfig) bool { return len(c.AdminEmails) > 0 }},
	{"common_password", func(c *config.SystemConfig) bool { return c.CommonPassword != "" }},
	{"common_persistent_disk", func(c *config.SystemConfig) bool { return c.CommonPersistentDisk != 0 }},
	{"aws_security_group", func(c *config.SystemConfig) bool { return c.AWSSecurityGroup != "" }},
}

// RequiredFields returns the names of the fields ValidateSystemConfig checks.
func RequiredFields() []string {
	names := make([]string, len(requiredFields))
	for i, f := range requiredFields {
		names[i] = f.name
	}
	return names
}

// ValidateSystemConfig checks every required field and returns a
// *MissingFieldsError naming all of the unset ones. A nil config is missing
// everything.
func ValidateSystemConfig(cfg *config.SystemConfig) error {
	if cfg == nil {
		return &MissingFieldsError{Fields: RequiredFields()}
	}

	var missing []string
	for _, f := range requiredFields {
		if !f.present(cfg) {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
