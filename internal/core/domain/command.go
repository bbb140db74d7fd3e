package domain

// ResolvedCommand is a fully-substituted command line ready to execute.
type ResolvedCommand struct {
	// Args is the argument vector; Args[0] is the executable.
	Args []string

	// Dir is the working directory for the child process.
	Dir string

	// Env is the environment overlay applied on top of the host environment.
	Env map[string]string

	// BuildDir is the build directory the command operates on. The host
	// needs it to seed the File API query before a configure run.
	BuildDir string
}
