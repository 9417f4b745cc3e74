package types

import (
	"strconv"
	"strings"
)

// Command is one external process invocation.
type Command struct {
	Name string
	Path string
	Args []string
	Dir  string
	Env  []string
}

type CommandResult struct {
	ExitCode int
	Output   []byte
}

// GeneratedFile is a build-system input written into the build directory
// before the configure command runs.
type GeneratedFile struct {
	Name    string
	Content []byte
}

type BuildPlan struct {
	SourceDir string
	BuildDir  string
	Files     []GeneratedFile
	Commands  []Command
}

// String renders the command line for logs, quoting arguments with spaces.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteArg(c.Path))
	for _, arg := range c.Args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\"") {
		return strconv.Quote(arg)
	}
	return arg
}
