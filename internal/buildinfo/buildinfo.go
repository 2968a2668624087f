// Package buildinfo holds version information injected at build time via ldflags.
package buildinfo

import "runtime"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Field is one labelled line of version output.
type Field struct {
	Label string
	Value string
}

// Fields lists the build details printed by both binaries' version command.
func Fields() []Field {
	return []Field{
		{"Commit", CommitHash},
		{"Built", BuildDate},
		{"OS/Arch", runtime.GOOS + "/" + runtime.GOARCH},
		{"Go", runtime.Version()},
	}
}
