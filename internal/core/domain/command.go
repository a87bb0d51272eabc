package domain

import "strings"

// Command is one external program invocation made by the toolchain.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds KEY=VALUE pairs. Empty means the inherited environment.
	Env []string
	// Component labels the output lines of the invocation. Empty means unlabeled.
	Component ComponentID
}

// String renders the command line for logs and error messages.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
