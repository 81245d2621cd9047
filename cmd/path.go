package cmd

import "strings"

// parsePath turns command arguments into a tree path. Each argument is one
// name; a single argument containing "/" is split on it, so both
// `ptree star p src lib` and `ptree star p src/lib` address the same node.
func parsePath(args []string) []string {
	if len(args) == 1 && strings.Contains(args[0], "/") {
		var path []string
		for _, part := range strings.Split(strings.Trim(args[0], "/"), "/") {
			if part != "" {
				path = append(path, part)
			}
		}
		return path
	}
	return args
}
