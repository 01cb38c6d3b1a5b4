package utils

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ReadDirectives reads one directive path per line, skipping blank lines
// and # comments
func ReadDirectives(r io.Reader) ([]string, error) {
	var directives []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		directives = append(directives, line)
	}

	return directives, scanner.Err()
}

// ReadDirectiveFile reads a directive list from a file path
func ReadDirectiveFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadDirectives(f)
}
