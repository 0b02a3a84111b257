package lockkit

import "github.com/kolkov/lockkit/internal/lock"

// Version information for lockkit.
const (
	// Version is the current version of the library.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides build-time information about the library.
type Info struct {
	// Version is the library version string.
	Version string

	// DeadlockDetection reports whether the deadlock-detecting mutex
	// variant was compiled in (build tag "lockdebug").
	DeadlockDetection bool
}

// GetInfo returns information about the lockkit build.
//
// Example:
//
//	info := lockkit.GetInfo()
//	fmt.Printf("lockkit %s (deadlock detection: %v)\n",
//		info.Version, info.DeadlockDetection)
func GetInfo() Info {
	return Info{
		Version:           Version,
		DeadlockDetection: lock.Debug,
	}
}
