package remote

import (
	gopath "path"
	"sort"
	"strconv"
	"strings"
)

// FileInfo is one entry from a directory listing. Entries are rebuilt on
// every call so views always reflect current on-disk state.
type FileInfo struct {
	Name          string
	Path          string // absolute, volume-relative
	IsDir         bool
	SizeBytes     uint64
	Permissions   string // octal mode string, e.g. "755"
	ModifiedEpoch string
}

// ParseListing parses the pipe-delimited stat output produced by the
// listing pipeline, one entry per line. Malformed lines are skipped.
func ParseListing(out string) []FileInfo {
	var entries []FileInfo
	for _, line := range strings.Split(out, "\n") {
		if info, ok := ParseStatLine(line); ok {
			entries = append(entries, info)
		}
	}
	return entries
}

// ParseStatLine parses a single `%F|%s|%a|%Y|%n` stat line. Everything
// after the fourth delimiter is the path, so pipe characters inside
// filenames survive. Only the literal type word "directory" classifies as
// a directory; symlinks and every other type count as files.
func ParseStatLine(line string) (FileInfo, bool) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return FileInfo{}, false
	}

	parts := strings.SplitN(line, "|", 5)
	if len(parts) != 5 {
		return FileInfo{}, false
	}

	size, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return FileInfo{}, false
	}

	path := parts[4]
	return FileInfo{
		Name:          gopath.Base(path),
		Path:          path,
		IsDir:         parts[0] == "directory",
		SizeBytes:     size,
		Permissions:   parts[2],
		ModifiedEpoch: parts[3],
	}, true
}

// SortEntries orders a listing directories-first, then by case-aware
// lexicographic name: case-insensitive primary order with the raw name as
// tiebreaker so "A" and "a" sort deterministically.
func SortEntries(entries []FileInfo) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		li, lj := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if li != lj {
			return li < lj
		}
		return entries[i].Name < entries[j].Name
	})
}
