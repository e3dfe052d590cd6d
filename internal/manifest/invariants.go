package manifest

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CheckInvariants verifies the core topology survived contributor changes:
// exactly one core job bound to exactly one core pool, the default network
// first, unique names, and every job pointing at a declared pool.
// All violations are reported together.
func CheckInvariants(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrInvariantViolation)
	}

	var mErr *multierror.Error

	if len(doc.Networks) == 0 || doc.Networks[0].Name != DefaultNetwork {
		mErr = multierror.Append(mErr,
			fmt.Errorf("first network must be %q", DefaultNetwork))
	}

	pools := make(map[string]int, len(doc.ResourcePools))
	for _, pool := range doc.ResourcePools {
		pools[pool.Name]++
		if pools[pool.Name] == 2 {
			mErr = multierror.Append(mErr,
				fmt.Errorf("resource pool %q is declared more than once", pool.Name))
		}
	}
	if pools[CoreName] == 0 {
		mErr = multierror.Append(mErr,
			fmt.Errorf("resource pool %q is missing", CoreName))
	}

	jobs := make(map[string]int, len(doc.Jobs))
	for _, job := range doc.Jobs {
		jobs[job.Name]++
		if jobs[job.Name] == 2 {
			mErr = multierror.Append(mErr,
				fmt.Errorf("job %q is declared more than once", job.Name))
		}
		if pools[job.ResourcePool] == 0 {
			mErr = multierror.Append(mErr,
				fmt.Errorf("job %q references unknown resource pool %q", job.Name, job.ResourcePool))
		}
	}
	if jobs[CoreName] == 0 {
		mErr = multierror.Append(mErr,
			fmt.Errorf("job %q is missing", CoreName))
	}

	if core := doc.Job(CoreName); core != nil && core.ResourcePool != CoreName {
		mErr = multierror.Append(mErr,
			fmt.Errorf("job %q must use resource pool %q, not %q", CoreName, CoreName, core.ResourcePool))
	}

	if err := mErr.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvariantViolation, err)
	}
	return nil
}
