package catalog

import "fmt"

// ConfigurationError indicates the collection root is unset or unreadable.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network collection not configured: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("network collection not configured: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// MetadataFormatError indicates the metadata file is malformed or is
// missing a required column.
type MetadataFormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MetadataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed metadata file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed metadata file %s: %s", e.Path, e.Reason)
}

func (e *MetadataFormatError) Unwrap() error { return e.Err }

// UnknownNetworkError indicates a network name with no directory in the
// collection.
type UnknownNetworkError struct {
	Name string
}

func (e *UnknownNetworkError) Error() string {
	return fmt.Sprintf("unknown network %q: no such directory in the collection (see LoadMetadata for available networks)", e.Name)
}

// UnknownSubnetworkError indicates a file that is not a subnetwork of the
// named network.
type UnknownSubnetworkError struct {
	Network string
	File    string
}

func (e *UnknownSubnetworkError) Error() string {
	return fmt.Sprintf("unknown subnetwork %q in network %q (see ListSubnetworks for available files)", e.File, e.Network)
}
