package hsdb

// Version and Build are set by the build pipeline via ldflags.
var (
	Version = "v0.1.0+"
	Build   = "n/a"
)
