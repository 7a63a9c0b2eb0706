// Package version exposes the build version, set at link time with
// -ldflags "-X github.com/ndewijer/Campaign-Finance-Explorer-Backend/internal/version.Version=v1.2.3".
package version

// Version is the application version.
var Version = "dev"
