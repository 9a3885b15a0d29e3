package source

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// maxLineSize bounds a single log line; longer lines fail the read.
const maxLineSize = 1024 * 1024

// Expand resolves command-line arguments to file paths, keeping their order.
// Arguments without glob metacharacters are returned as given, so a missing
// file is reported when it is opened. Patterns support ** and must match at
// least one file.
func Expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !isPattern(arg) {
			paths = append(paths, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("expanding pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files matched pattern %q", arg)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// isPattern reports whether arg holds glob metacharacters.
func isPattern(arg string) bool {
	for _, r := range arg {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// Lines calls fn for every line of r in order, without the line terminator.
func Lines(r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	for scanner.Scan() {
		fn(scanner.Text())
	}
	return scanner.Err()
}
