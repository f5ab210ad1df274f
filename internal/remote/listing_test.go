package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatLine(t *testing.T) {
	info, ok := ParseStatLine("directory|4096|755|1700000000|/opt/_avocado/target/sdk")
	require.True(t, ok)
	assert.Equal(t, FileInfo{
		Name:          "sdk",
		Path:          "/opt/_avocado/target/sdk",
		IsDir:         true,
		SizeBytes:     4096,
		Permissions:   "755",
		ModifiedEpoch: "1700000000",
	}, info)
}

func TestParseStatLinePipeInFilename(t *testing.T) {
	info, ok := ParseStatLine("regular file|10|644|1700000001|/opt/_avocado/a|b.txt")
	require.True(t, ok)
	assert.Equal(t, "a|b.txt", info.Name)
	assert.Equal(t, "/opt/_avocado/a|b.txt", info.Path)
	assert.False(t, info.IsDir)
}

func TestParseStatLineSymlinkIsFile(t *testing.T) {
	info, ok := ParseStatLine("symbolic link|20|777|1700000002|/opt/_avocado/current")
	require.True(t, ok)
	assert.False(t, info.IsDir)
}

func TestParseStatLineMalformed(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"directory|4096|755",
		"directory|big|755|1700000000|/opt/x",
	}
	for _, line := range tests {
		_, ok := ParseStatLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestParseListingSkipsBadLines(t *testing.T) {
	out := "directory|4096|755|1700000000|/a\ngarbage\nregular file|1|644|1700000001|/b\n"
	entries := ParseListing(out)
	assert.Len(t, entries, 2)
}

func TestSortEntriesStable(t *testing.T) {
	entries := []FileInfo{
		{Name: "b.txt"},
		{Name: "a", IsDir: true},
		{Name: "A", IsDir: true},
		{Name: "B.txt"},
		{Name: "c", IsDir: true},
	}
	SortEntries(entries)

	var order []string
	for _, e := range entries {
		order = append(order, e.Name)
	}
	assert.Equal(t, []string{"A", "a", "c", "B.txt", "b.txt"}, order)
}
