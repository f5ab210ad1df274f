package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"

	"github.com/avocadotools/avx/internal/registry"
)

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("qemux86-64", "X86"))
	assert.True(t, containsFold("SDK", "sdk"))
	assert.False(t, containsFold("sdk", "qemu"))
}

func TestFilteredPickerItems(t *testing.T) {
	m := model{
		pickerItems: []string{"sdk", "qemux86-64", "raspberrypi4"},
		filter:      textinput.New(),
	}

	assert.Equal(t, m.pickerItems, m.filteredPickerItems())

	m.filter.SetValue("qemu")
	assert.Equal(t, []string{"qemux86-64"}, m.filteredPickerItems())

	m.filter.SetValue("zzz")
	assert.Empty(t, m.filteredPickerItems())
}

func TestFolderPaths(t *testing.T) {
	projects := []registry.Project{
		{Folder: "/a", Name: "a"},
		{Folder: "/b", Name: "b"},
	}
	assert.Equal(t, []string{"/a", "/b"}, folderPaths(projects))
}
