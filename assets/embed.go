// assets/embed.go
//
// Embedded game data. The vocabulary ships inside the binary so both the
// HTTP host and the terminal client run without any files on disk.

package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// Vocabulary returns the embedded word list (uppercased, in file order).
func Vocabulary() ([]string, error) {
	return readLines("words.txt")
}
