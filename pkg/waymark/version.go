// Package waymark holds project-wide metadata.
package waymark

// Version is the current release version, overridable at build time via
// -ldflags "-X github.com/sagewell/waymark/pkg/waymark.Version=...".
var Version = "0.3.0"
