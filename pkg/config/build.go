// Package build has the information set at link time on the cozy-barcode
// binary, with -ldflags "-X github.com/cozy/cozy-barcode/pkg/config.Version=...".
package build

import (
	"fmt"
	"runtime"
)

const (
	// ModeDev is for the binaries built from a work tree: the errors are
	// logged with their details and the panics are not recovered.
	ModeDev = "development"
	// ModeProd is for the released binaries.
	ModeProd = "production"
)

var (
	// Version is the git tag or commit of the build.
	Version = "dev"
	// BuildTime is the UTC time of the build, in ISO-8601.
	BuildTime string
	// BuildMode is ModeDev or ModeProd.
	BuildMode = ModeDev
)

// Info describes the running binary.
type Info struct {
	Version        string `json:"version"`
	BuildMode      string `json:"build_mode"`
	BuildTime      string `json:"build_time"`
	RuntimeVersion string `json:"runtime_version"`
}

// Current returns the information of the running binary.
func Current() Info {
	return Info{
		Version:        Version,
		BuildMode:      BuildMode,
		BuildTime:      BuildTime,
		RuntimeVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	s := fmt.Sprintf("cozy-barcode %s (%s, %s)", i.Version, i.BuildMode, i.RuntimeVersion)
	if i.BuildTime != "" {
		s += " built at " + i.BuildTime
	}
	return s
}

// IsDevRelease returns true for the development binaries.
func IsDevRelease() bool {
	return BuildMode == ModeDev
}
