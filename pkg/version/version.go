// Package version exposes the module's build version.
package version

// version is set at build time via -ldflags "-X ...".
//
//nolint:gochecknoglobals // build-time injection target
var version = "dev"

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}
