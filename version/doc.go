// Package version provides build version information embedding.
//
// Version, git commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/skillsenselab/yumlsvg/version.Version=1.0.0"
//
// When no ldflags are present the package falls back to the VCS metadata
// stamped by the Go toolchain.
package version
