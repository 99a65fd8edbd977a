package store

import "slices"

// BackendCapability represents a capability that a backend can provide
type BackendCapability string

const (
	// CapabilityList is the prefix/delimiter listing with continuation tokens.
	CapabilityList BackendCapability = "list"
	// CapabilityServerCopy means Copy runs on the store without downloading the object.
	CapabilityServerCopy BackendCapability = "server_copy"
	// CapabilityContentType means objects keep a content type, used for directory markers.
	CapabilityContentType BackendCapability = "content_type"
	// CapabilityModifyTime means listings report a real last-modified time.
	CapabilityModifyTime BackendCapability = "modify_time"
)

// BackendCapabilities describes what a backend supports
type BackendCapabilities struct {
	Capabilities  []BackendCapability `json:"capabilities"`
	MaxObjectSize int64               `json:"max_object_size"`
	MaxKeys       int                 `json:"max_keys"`
}

// Contains checks if a capability is supported
func (bc *BackendCapabilities) Contains(capability BackendCapability) bool {
	if bc == nil {
		return false
	}
	return slices.Contains(bc.Capabilities, capability)
}
