package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rockbuild/internal/core/domain"
)

func TestNewUnityUnit(t *testing.T) {
	paths := []domain.CanonicalPath{
		"/src/rocksdb/db/a/util.cc",
		"/src/rocksdb/db/b/util.cc",
		"/src/rocksdb/table/format.cc",
	}

	u, err := domain.NewUnityUnit(paths)
	require.NoError(t, err)
	assert.Equal(t, paths, u.Entries)
	assert.Equal(t,
		"#include \"/src/rocksdb/db/a/util.cc\"\n"+
			"#include \"/src/rocksdb/db/b/util.cc\"\n"+
			"#include \"/src/rocksdb/table/format.cc\"\n",
		string(u.Render()))
}

func TestNewUnityUnit_Duplicate(t *testing.T) {
	_, err := domain.NewUnityUnit([]domain.CanonicalPath{"/a.cc", "/b.cc", "/a.cc"})
	assert.ErrorContains(t, err, domain.ErrDuplicateSource.Error())
}

func TestNewUnityUnit_Empty(t *testing.T) {
	u, err := domain.NewUnityUnit(nil)
	require.NoError(t, err)
	assert.Empty(t, u.Render())
}

func TestLayoutPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("out", ".rockbuild", "store"), domain.StorePath("out"))
}
