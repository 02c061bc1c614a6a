package manifesttools

import "fmt"

// version is stamped at release time via -ldflags. Source builds report "dev".
var version = "dev"

// Version reports the manifesttools release version.
func Version() string {
	return version
}

// UserAgent identifies this manifesttools build to remote services, as
// "manifesttools/<version>".
func UserAgent() string {
	return fmt.Sprintf("manifesttools/%s", version)
}
