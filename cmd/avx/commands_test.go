package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIPickerExplicitName(t *testing.T) {
	p := &cliPicker{name: "qemux86-64"}
	chosen, err := p.PickTarget(context.Background(), "/proj", []string{"sdk", "qemux86-64"}, "")
	require.NoError(t, err)
	assert.Equal(t, "qemux86-64", chosen)
}

func TestCLIPickerUnknownName(t *testing.T) {
	p := &cliPicker{name: "nope"}
	_, err := p.PickTarget(context.Background(), "/proj", []string{"sdk"}, "")
	assert.Error(t, err)
}

func TestCLIPickerSingleCandidate(t *testing.T) {
	p := &cliPicker{}
	chosen, err := p.PickTarget(context.Background(), "/proj", []string{"sdk"}, "")
	require.NoError(t, err)
	assert.Equal(t, "sdk", chosen)
}

func TestCLIPickerAmbiguous(t *testing.T) {
	p := &cliPicker{}
	_, err := p.PickTarget(context.Background(), "/proj", []string{"sdk", "qemu"}, "")
	assert.Error(t, err)
}

func TestCLIPickerRefusesProjectChoice(t *testing.T) {
	p := &cliPicker{}
	_, err := p.PickProject(context.Background(), []string{"/a", "/b"})
	assert.Error(t, err)
}
