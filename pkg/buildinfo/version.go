// Package buildinfo holds version metadata injected at link time:
//
//	go build -ldflags "-X github.com/matzehuels/includeviz/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/includeviz/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/includeviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/includeviz
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns the version with an abbreviated commit, e.g. "v0.3.0 (1a2b3c4)".
// Development builds without a commit return just the version.
func Short() string {
	if Commit == "none" || Commit == "" {
		return Version
	}
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, c)
}

// String returns the multi-line build description.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
