// Package buildinfo holds build-time metadata injected through -ldflags:
//
//	go build -ldflags "-X github.com/tphakala/pokereview/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "runtime/debug"

// Set at link time.
var (
	Version   = ""
	BuildDate = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// Get returns the build metadata. Without an injected version the module
// version recorded by the Go toolchain is used, or "dev".
func Get() Info {
	info := Info{Version: Version, BuildDate: BuildDate}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}

// String returns the one-line form printed by --version.
func (i Info) String() string {
	return i.Version + " (built " + i.BuildDate + ", " + i.GoVersion + ")"
}
