// Package lessons loads custom lesson files.
package lessons

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads one lesson per line from the provided file path. Blank lines
// and lines starting with '#' are skipped.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only lesson file.
			_ = cerr
		}
	}()

	var lessons []string
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !Typeable(text) {
			return nil, fmt.Errorf("line %d: lesson contains control characters", line)
		}
		lessons = append(lessons, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, fmt.Errorf("lesson file is empty")
	}
	return lessons, nil
}
