package version

// Overridden at build time via -ldflags "-X stature/internal/version.VERSION=..."
var (
	VERSION = "dev"
	COMMIT  = "unknown"
)
