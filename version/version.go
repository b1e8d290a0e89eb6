package version

import "fmt"

// Set at link time with -ldflags "-X rconv/version.GitTag=...".
var GitCommit string
var GitTag string
var UserAgent string

func init() {
	UserAgent = fmt.Sprintf("rconv/%s+%s", GitTag, GitCommit)
}

func String() string {
	tag := GitTag
	if tag == "" {
		tag = "dev"
	}
	if GitCommit == "" {
		return tag
	}
	return fmt.Sprintf("%s (%s)", tag, GitCommit)
}
