package config

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

// Lint returns advisory format warnings for a system config. It does not
// check presence; that is the manifest validator's job. Empty values are skipped.
func Lint(cfg *SystemConfig, directorUUID string) []string {
	var warnings []string

	if cfg.CoreIP != "" && !govalidator.IsIPv4(cfg.CoreIP) {
		warnings = append(warnings, fmt.Sprintf("core_ip %q is not an IPv4 address", cfg.CoreIP))
	}

	if cfg.RootDNS != "" && !govalidator.IsDNSName(cfg.RootDNS) {
		warnings = append(warnings, fmt.Sprintf("root_dns %q is not a valid DNS name", cfg.RootDNS))
	}

	for _, email := range cfg.AdminEmails {
		if !govalidator.IsEmail(email) {
			warnings = append(warnings, fmt.Sprintf("admin_emails: %q is not an email address", email))
		}
	}

	if cfg.CommonPersistentDisk < 0 {
		warnings = append(warnings, fmt.Sprintf("common_persistent_disk %d is negative", cfg.CommonPersistentDisk))
	}

	if cfg.Dea.Count < 0 {
		warnings = append(warnings, fmt.Sprintf("dea.count %d is negative", cfg.Dea.Count))
	}

	if directorUUID != "" {
		if _, err := uuid.Parse(directorUUID); err != nil {
			warnings = append(warnings, fmt.Sprintf("director UUID %q is not a UUID: %v", directorUUID, err))
		}
	}

	return warnings
}
