package transcript

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Header holds the "# key: value" comment lines of a transcript file.
type Header map[string]string

// Load reads a transcript file. Lines starting with '#' are comments; those
// of the form "# key: value" are returned as the header. The remaining lines
// are joined and parsed.
func Load(path string) (Header, *Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open transcript %s: %w", path, err)
	}
	defer f.Close()

	header := Header{}
	var body strings.Builder
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, "#"); ok {
			if k, v, ok := strings.Cut(rest, ":"); ok {
				header[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
			}
			continue
		}
		body.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	t, err := Parse(body.String())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return header, t, nil
}
