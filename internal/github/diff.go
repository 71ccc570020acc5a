package github

import (
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// FileStat summarises the changes to one file in a diff.
type FileStat struct {
	Name    string
	Added   int
	Deleted int
}

// Diff is a unified diff plus per-file statistics. Files is empty when the
// text could not be parsed; Text is always kept.
type Diff struct {
	Text  string
	Files []FileStat
}

// Totals returns the number of added and deleted lines across all files.
func (d Diff) Totals() (added, deleted int) {
	for _, f := range d.Files {
		added += f.Added
		deleted += f.Deleted
	}
	return added, deleted
}

// ParseDiff extracts file statistics from a unified diff.
func ParseDiff(text string) Diff {
	d := Diff{Text: text}
	if strings.TrimSpace(text) == "" {
		return d
	}
	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(text))
	if err != nil {
		return d
	}
	for _, fd := range fileDiffs {
		name := strings.TrimPrefix(fd.NewName, "b/")
		if name == "" || name == "/dev/null" {
			name = strings.TrimPrefix(fd.OrigName, "a/")
		}
		stat := fd.Stat()
		d.Files = append(d.Files, FileStat{
			Name:    name,
			Added:   int(stat.Added + stat.Changed),
			Deleted: int(stat.Deleted + stat.Changed),
		})
	}
	return d
}
