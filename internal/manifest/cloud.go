package manifest

import (
	"sort"
)

// cloudPropertiesFunc converts a server flavor into provider cloud properties.
type cloudPropertiesFunc func(serverFlavor string) CloudProperties

// cloudProviders maps provider names, matched exactly, to their cloud properties shape.
// Supporting a new provider means adding an entry here.
var cloudProviders = map[string]cloudPropertiesFunc{
	"aws": awsCloudProperties,
}

// For AWS and m1.large this is {instance_type: m1.large}.
func awsCloudProperties(serverFlavor string) CloudProperties {
	return CloudProperties{"instance_type": serverFlavor}
}

// CloudPropertiesForServerFlavor converts a server flavor (such as "m1.large"
// on AWS) into the cloud_properties of a resource pool.
func CloudPropertiesForServerFlavor(serverFlavor, provider string) (CloudProperties, error) {
	fn, ok := cloudProviders[provider]
	if !ok {
		return nil, &UnsupportedProviderError{Provider: provider}
	}
	return fn(serverFlavor), nil
}

// SupportedProviders returns the providers with a cloud properties mapping, sorted.
func SupportedProviders() []string {
	names := make([]string, 0, len(cloudProviders))
	for name := range cloudProviders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupportedProvider reports whether provider has a cloud properties mapping.
func IsSupportedProvider(provider string) bool {
	_, ok := cloudProviders[provider]
	return ok
}
