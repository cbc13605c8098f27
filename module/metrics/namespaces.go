package metrics

// Prometheus metric namespaces
const (
	namespaceStorage = "storage"
	namespaceAccess  = "access"
)

// Storage subsystems
const (
	subsystemCache = "cache"
)

// Access subsystems
const (
	subsystemRotationInfo = "quorum_rotation_info"
)
