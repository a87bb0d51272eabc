package shell_test

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rockbuild/internal/adapters/shell"
)

func TestResolveEnvironment(t *testing.T) {
	sys := []string{"PATH=/usr/bin", "HOME=/home/dev", "AWS_SECRET=x", "INCLUDE=C:\\sdk"}
	got := shell.ResolveEnvironment(sys, []string{"PATH=/opt/llvm/bin", "CC=clang"})
	sort.Strings(got)

	assert.Equal(t, []string{
		"CC=clang",
		"HOME=/home/dev",
		"INCLUDE=C:\\sdk",
		"PATH=/opt/llvm/bin",
	}, got)
}

func TestLookPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit semantics")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "cc")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o700)) //nolint:gosec // test executable

	got, err := shell.LookPath("cc", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, bin, got)

	_, err = shell.LookPath("cc", nil)
	assert.Error(t, err)
}
