// boshcf renders BOSH deployment manifests for Cloud Foundry systems.
//
// Usage:
//
//	boshcf render [--dry-run] [--secrets file] [--director-uuid uuid]
//	boshcf validate
//	boshcf providers
package main

import "github.com/cameronsjo/boshcf/internal/cmd"

func main() {
	cmd.Execute()
}
