package target

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetOverwrite(t *testing.T) {
	s := NewStore()

	_, ok := s.Get("/proj")
	assert.False(t, ok)

	s.Set("/proj", "t1")
	got, ok := s.Get("/proj")
	require.True(t, ok)
	assert.Equal(t, "t1", got)

	s.Set("/proj", "t2")
	got, _ = s.Get("/proj")
	assert.Equal(t, "t2", got)
}

func TestSubscribe(t *testing.T) {
	s := NewStore()

	var gotFolder, gotTarget string
	calls := 0
	s.Subscribe(func(folder, target string) {
		gotFolder, gotTarget = folder, target
		calls++
	})

	s.Set("/proj", "sdk")
	assert.Equal(t, 1, calls)
	assert.Equal(t, "/proj", gotFolder)
	assert.Equal(t, "sdk", gotTarget)
}

func TestSummary(t *testing.T) {
	s := NewStore()
	s.Set("/a", "sdk")

	assert.Equal(t, "no projects", s.Summary(nil))
	assert.Equal(t, "sdk", s.Summary([]string{"/a"}))
	assert.Equal(t, "no target", s.Summary([]string{"/b"}))
	assert.Equal(t, "1/2 targets", s.Summary([]string{"/a", "/b"}))

	s.Set("/b", "qemu")
	assert.Equal(t, "2/2 targets", s.Summary([]string{"/a", "/b"}))
}

type fakeLister struct {
	targets map[string][]string
}

func (f fakeLister) ListTargets(ctx context.Context, folder string) []string {
	return f.targets[folder]
}

type fakePicker struct {
	project    string
	target     string
	pickErr    error
	sawCurrent string
	sawFolders []string
}

func (f *fakePicker) PickProject(ctx context.Context, folders []string) (string, error) {
	f.sawFolders = folders
	return f.project, f.pickErr
}

func (f *fakePicker) PickTarget(ctx context.Context, folder string, candidates []string, current string) (string, error) {
	f.sawCurrent = current
	return f.target, f.pickErr
}

func TestSelectSingleProject(t *testing.T) {
	store := NewStore()
	picker := &fakePicker{target: "sdk"}
	sel := &Selector{
		Store:  store,
		Lister: fakeLister{targets: map[string][]string{"/a": {"sdk", "qemu"}}},
		Picker: picker,
	}

	chosen, err := sel.Select(context.Background(), "", []string{"/a"})
	require.NoError(t, err)
	assert.Equal(t, "sdk", chosen)

	got, ok := store.Get("/a")
	require.True(t, ok)
	assert.Equal(t, "sdk", got)
}

func TestSelectResolvesProjectFirst(t *testing.T) {
	store := NewStore()
	store.Set("/b", "old")
	picker := &fakePicker{project: "/b", target: "new"}
	sel := &Selector{
		Store:  store,
		Lister: fakeLister{targets: map[string][]string{"/b": {"old", "new"}}},
		Picker: picker,
	}

	chosen, err := sel.Select(context.Background(), "", []string{"/a", "/b"})
	require.NoError(t, err)
	assert.Equal(t, "new", chosen)
	assert.Equal(t, []string{"/a", "/b"}, picker.sawFolders)
	assert.Equal(t, "old", picker.sawCurrent, "current selection is surfaced to the picker")
}

func TestSelectNoTargets(t *testing.T) {
	store := NewStore()
	sel := &Selector{
		Store:  store,
		Lister: fakeLister{},
		Picker: &fakePicker{},
	}

	_, err := sel.Select(context.Background(), "/a", nil)
	assert.True(t, errors.Is(err, ErrNoTargets))
	_, ok := store.Get("/a")
	assert.False(t, ok, "aborted selection must not mutate state")
}

func TestSelectCancelled(t *testing.T) {
	store := NewStore()
	sel := &Selector{
		Store:  store,
		Lister: fakeLister{targets: map[string][]string{"/a": {"sdk"}}},
		Picker: &fakePicker{pickErr: errors.New("user pressed esc")},
	}

	_, err := sel.Select(context.Background(), "/a", nil)
	assert.True(t, errors.Is(err, ErrAborted))
	_, ok := store.Get("/a")
	assert.False(t, ok)
}

func TestSelectNoProjects(t *testing.T) {
	sel := &Selector{Store: NewStore(), Lister: fakeLister{}, Picker: &fakePicker{}}
	_, err := sel.Select(context.Background(), "", nil)
	assert.True(t, errors.Is(err, ErrAborted))
}
