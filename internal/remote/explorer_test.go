package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocadotools/avx/internal/container"
)

// fakeSession serves canned output keyed by the first argv word and records
// what was executed.
type fakeSession struct {
	execOut   string
	execErr   error
	shellOut  string
	shellErr  error
	argvCalls [][]string
	scripts   []string
}

func (f *fakeSession) Exec(ctx context.Context, folder string, argv ...string) (string, error) {
	f.argvCalls = append(f.argvCalls, argv)
	return f.execOut, f.execErr
}

func (f *fakeSession) ExecShell(ctx context.Context, folder, script string) (string, error) {
	f.scripts = append(f.scripts, script)
	return f.shellOut, f.shellErr
}

func TestListDirectoryParsesAndSorts(t *testing.T) {
	session := &fakeSession{shellOut: strings.Join([]string{
		"regular file|120|644|1700000002|/opt/_avocado/target/sdk/readme.txt",
		"directory|4096|755|1700000000|/opt/_avocado/target/sdk/zeta",
		"regular file|10|600|1700000003|/opt/_avocado/target/sdk/Apple",
		"directory|4096|755|1700000001|/opt/_avocado/target/sdk/alpha",
	}, "\n")}
	e := NewExplorer(session)

	entries := e.ListDirectory(context.Background(), "/proj", "/opt/_avocado/target/sdk")
	require.Len(t, entries, 4)

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	// Directories first, then case-aware lexicographic names.
	assert.Equal(t, []string{"alpha", "zeta", "Apple", "readme.txt"}, names)
	assert.True(t, entries[0].IsDir)
	assert.False(t, entries[2].IsDir)
}

func TestListDirectoryScript(t *testing.T) {
	session := &fakeSession{}
	e := NewExplorer(session)

	e.ListDirectory(context.Background(), "/proj", "/opt/_avocado/o'brien")
	require.Len(t, session.scripts, 1)
	script := session.scripts[0]
	assert.Contains(t, script, `find '/opt/_avocado/o'\''brien' -maxdepth 1 -mindepth 1`)
	assert.Contains(t, script, `stat -c '%F|%s|%a|%Y|%n'`)
	assert.Contains(t, script, fmt.Sprintf("head -%d", MaxEntries))
}

func TestListDirectoryCapped(t *testing.T) {
	var lines []string
	for i := 0; i < MaxEntries+30; i++ {
		lines = append(lines, fmt.Sprintf("regular file|1|644|1700000000|/d/f%04d", i))
	}
	session := &fakeSession{shellOut: strings.Join(lines, "\n")}
	e := NewExplorer(session)

	entries := e.ListDirectory(context.Background(), "/proj", "/d")
	assert.Len(t, entries, MaxEntries)
}

func TestListDirectoryFailureIsEmpty(t *testing.T) {
	session := &fakeSession{shellErr: errors.New("exec failed: exit status 1")}
	e := NewExplorer(session)

	entries := e.ListDirectory(context.Background(), "/proj", "/nope")
	assert.Empty(t, entries)

	_, outcome := e.ListDirectoryEx(context.Background(), "/proj", "/nope")
	assert.Equal(t, OutcomeExecFailed, outcome)
}

func TestOutcomeClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		out  string
		want Outcome
	}{
		{"unavailable", fmt.Errorf("ensure: %w", container.ErrUnavailable), "", OutcomeNoContainer},
		{"not found", errors.New("exit status 1"), "cat: /x: No such file or directory", OutcomeNotFound},
		{"exec failed", errors.New("exit status 126"), "permission denied", OutcomeExecFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeSession{execErr: tt.err, execOut: tt.out}
			e := NewExplorer(session)
			_, outcome := e.ReadFileEx(context.Background(), "/proj", "/x")
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestReadFile(t *testing.T) {
	session := &fakeSession{execOut: "contents here"}
	e := NewExplorer(session)

	content, ok := e.ReadFile(context.Background(), "/proj", "/opt/_avocado/f")
	assert.True(t, ok)
	assert.Equal(t, "contents here", content)
	assert.Equal(t, []string{"cat", "/opt/_avocado/f"}, session.argvCalls[0])
}

func TestReadFileAbsentOnFailure(t *testing.T) {
	session := &fakeSession{execErr: errors.New("boom")}
	e := NewExplorer(session)

	_, ok := e.ReadFile(context.Background(), "/proj", "/opt/_avocado/f")
	assert.False(t, ok)
}

func TestPathExists(t *testing.T) {
	session := &fakeSession{}
	e := NewExplorer(session)
	assert.True(t, e.PathExists(context.Background(), "/proj", "/opt/_avocado"))
	assert.Equal(t, []string{"test", "-e", "/opt/_avocado"}, session.argvCalls[0])

	session.execErr = errors.New("exit status 1")
	assert.False(t, e.PathExists(context.Background(), "/proj", "/opt/_avocado/missing"))
}

func TestListTargets(t *testing.T) {
	session := &fakeSession{execOut: "sdk\n.hidden\nqemux86-64\n\nraspberrypi4\n"}
	e := NewExplorer(session)

	targets := e.ListTargets(context.Background(), "/proj")
	assert.Equal(t, []string{"sdk", "qemux86-64", "raspberrypi4"}, targets)
	assert.Equal(t, []string{"ls", "-1", TargetRoot}, session.argvCalls[0])
}

func TestListTargetsCapped(t *testing.T) {
	var lines []string
	for i := 0; i < MaxTargets+10; i++ {
		lines = append(lines, fmt.Sprintf("target-%02d", i))
	}
	session := &fakeSession{execOut: strings.Join(lines, "\n")}
	e := NewExplorer(session)

	assert.Len(t, e.ListTargets(context.Background(), "/proj"), MaxTargets)
}

func TestListTargetsEmptyOnFailure(t *testing.T) {
	session := &fakeSession{execErr: fmt.Errorf("ensure: %w", container.ErrUnavailable)}
	e := NewExplorer(session)

	assert.Empty(t, e.ListTargets(context.Background(), "/proj"))
	_, outcome := e.ListTargetsEx(context.Background(), "/proj")
	assert.Equal(t, OutcomeNoContainer, outcome)
}

func TestExecuteMapsUnavailable(t *testing.T) {
	session := &fakeSession{execErr: fmt.Errorf("ensure: %w", container.ErrUnavailable)}
	e := NewExplorer(session)

	_, err := e.Execute(context.Background(), "/proj", "true")
	assert.True(t, errors.Is(err, ErrNoContainer))
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"with space", "'with space'"},
		{"o'brien", `'o'\''brien'`},
		{"$HOME;rm -rf /", `'$HOME;rm -rf /'`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShellQuote(tt.in), "input %q", tt.in)
	}
}
