package bundle_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rockbuild/internal/adapters/fs"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports/mocks"
	"go.trai.ch/rockbuild/internal/engine/bundle"
	"go.uber.org/mock/gomock"
)

const root = "/work/librocksdb-sys"

func newBuilder(t *testing.T) (*bundle.Builder, *mocks.MockSourceTree) {
	t.Helper()
	ctrl := gomock.NewController(t)
	canon := mocks.NewMockCanonicalizer(ctrl)
	canon.EXPECT().Canonicalize(gomock.Any()).DoAndReturn(func(p string) (domain.CanonicalPath, error) {
		return domain.CanonicalPath(filepath.Clean(p)), nil
	}).AnyTimes()
	tree := mocks.NewMockSourceTree(ctrl)
	return bundle.NewBuilder(canon, tree), tree
}

func input(triple domain.TargetTriple, features domain.Features) bundle.Input {
	return bundle.Input{
		Root:     root,
		OutDir:   "/out",
		Facts:    domain.Classify(triple),
		Features: features,
		Tools:    domain.Tools{CXX: "clang++"},
	}
}

func at(rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func TestBuilder_RocksDB_LinuxAllFeatures(t *testing.T) {
	b, _ := newBuilder(t)

	unit, err := b.RocksDB(input("x86_64-unknown-linux-gnu", domain.DefaultFeatures()), "/out/unity.cc", at("build_version.cc"))
	require.NoError(t, err)

	exports := []string{at("rocksdb/include"), at("rocksdb"), at("rocksdb/third-party/gtest-1.8.1/fused-src")}
	assert.Equal(t, exports, unit.ExportIncludes)
	assert.Equal(t, append(append([]string(nil), exports...),
		at("snappy"),
		at("lz4/lib"),
		at("zstd/lib"),
		at("zstd/lib/dictBuilder"),
		at("zlib"),
		at("bzip2"),
		root,
	), unit.Includes)

	assert.Equal(t, []domain.Define{
		domain.DefineValue("SNAPPY", "1"),
		domain.DefineValue("LZ4", "1"),
		domain.DefineValue("ZSTD", "1"),
		domain.DefineValue("ZLIB", "1"),
		domain.DefineValue("BZIP2", "1"),
		domain.DefineValue("NDEBUG", "1"),
		domain.DefineValue("HAVE_PCLMUL", "1"),
		domain.DefineValue("HAVE_SSE42", "1"),
		domain.DefineValue("OS_LINUX", "1"),
		domain.DefineValue("ROCKSDB_PLATFORM_POSIX", "1"),
		domain.DefineValue("ROCKSDB_LIB_IO_POSIX", "1"),
		domain.DefineValue("ROCKSDB_SUPPORT_THREAD_LOCAL", "1"),
	}, unit.Defines)

	assert.Equal(t, []string{"-msse2", "-msse4.1", "-msse4.2", "-mpclmul"}, unit.FlagsIfSupported)
	assert.Equal(t, []string{"-std=c++11", "-Wno-unused-parameter"}, unit.Flags)
	assert.Equal(t, []string{"/out/unity.cc", at("build_version.cc")}, unit.Sources)
	assert.True(t, unit.CXX)
	assert.Equal(t, "rocksdb", unit.Archive)
	assert.Equal(t, "/out", unit.OutDir)
	assert.Equal(t, "clang++", unit.Tools.CXX)
}

func TestBuilder_RocksDB_WindowsMSVCNoFeatures(t *testing.T) {
	b, _ := newBuilder(t)

	unit, err := b.RocksDB(input("aarch64-pc-windows-msvc", domain.Features{}), "/out/unity.cc", "/out/build_version.cc")
	require.NoError(t, err)

	assert.Equal(t, []domain.Define{
		domain.DefineValue("NDEBUG", "1"),
		domain.DefineValue("OS_WIN", "1"),
		domain.DefineValue("ROCKSDB_WINDOWS_UTF8_FILENAMES", "1"),
		domain.DefineValue("ROCKSDB_SUPPORT_THREAD_LOCAL", "1"),
	}, unit.Defines)
	assert.Equal(t, []string{"-EHsc"}, unit.Flags)
	assert.Empty(t, unit.FlagsIfSupported)
	assert.Len(t, unit.Includes, 4)
}

func TestBuilder_RocksDB_UnknownPlatform(t *testing.T) {
	b, _ := newBuilder(t)

	unit, err := b.RocksDB(input("wasm32", domain.Features{domain.ComponentLZ4: true}), "/out/unity.cc", "/out/build_version.cc")
	require.NoError(t, err)

	assert.Equal(t, []domain.Define{
		domain.DefineValue("LZ4", "1"),
		domain.DefineValue("NDEBUG", "1"),
		domain.DefineValue("ROCKSDB_SUPPORT_THREAD_LOCAL", "1"),
	}, unit.Defines)
}

func TestBuilder_RocksDB_CanonicalizeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	canon := mocks.NewMockCanonicalizer(ctrl)
	canon.EXPECT().Canonicalize(gomock.Any()).Return(domain.CanonicalPath(""), domain.ErrPathResolution)

	_, err := bundle.NewBuilder(canon, nil).RocksDB(input("x86_64-unknown-linux-gnu", nil), "/out/unity.cc", "/out/bv.cc")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPathResolution.Error())
}

func component(t *testing.T, id domain.ComponentID) domain.Component {
	t.Helper()
	c, err := domain.LookupComponent(id)
	require.NoError(t, err)
	return c
}

func TestBuilder_Snappy(t *testing.T) {
	b, _ := newBuilder(t)

	unit, err := b.Compression(component(t, domain.ComponentSnappy), input("x86_64-apple-darwin", nil))
	require.NoError(t, err)

	assert.Equal(t, []string{at("snappy"), root}, unit.Includes)
	assert.Equal(t, []domain.Define{domain.DefineValue("NDEBUG", "1")}, unit.Defines)
	assert.Equal(t, []string{"-std=c++11"}, unit.Flags)
	assert.Equal(t, []string{at("snappy/snappy.cc"), at("snappy/snappy-sinksource.cc"), at("snappy/snappy-c.cc")}, unit.Sources)
	assert.True(t, unit.CXX)
	assert.Equal(t, "snappy", unit.Archive)

	unit, err = b.Compression(component(t, domain.ComponentSnappy), input("x86_64-pc-windows-msvc", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"-EHsc"}, unit.Flags)
}

func TestBuilder_UnitsCarryJobs(t *testing.T) {
	b, _ := newBuilder(t)
	in := input("x86_64-unknown-linux-gnu", domain.DefaultFeatures())
	in.Jobs = 3

	unit, err := b.Compression(component(t, domain.ComponentSnappy), in)
	require.NoError(t, err)
	assert.Equal(t, 3, unit.Jobs)

	unit, err = b.RocksDB(in, "/out/unity.cc", at("build_version.cc"))
	require.NoError(t, err)
	assert.Equal(t, 3, unit.Jobs)
}

func TestBuilder_LZ4(t *testing.T) {
	b, _ := newBuilder(t)

	unit, err := b.Compression(component(t, domain.ComponentLZ4), input("x86_64-unknown-linux-gnu", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{at("lz4/lib/lz4.c"), at("lz4/lib/lz4frame.c"), at("lz4/lib/lz4hc.c"), at("lz4/lib/xxhash.c")}, unit.Sources)
	assert.Equal(t, "3", unit.OptLevel)
	assert.Empty(t, unit.Flags)
	assert.False(t, unit.CXX)

	unit, err = b.Compression(component(t, domain.ComponentLZ4), input("i686-pc-windows-gnu", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"-fno-tree-vectorize"}, unit.Flags)

	unit, err = b.Compression(component(t, domain.ComponentLZ4), input("i686-pc-windows-gnullvm", nil))
	require.NoError(t, err)
	assert.Empty(t, unit.Flags)
}

func TestBuilder_Zstd(t *testing.T) {
	b, tree := newBuilder(t)
	tree.EXPECT().Glob([]string{
		"zstd/lib/common/*.c",
		"zstd/lib/compress/*.c",
		"zstd/lib/decompress/*.c",
		"zstd/lib/dictBuilder/*.c",
		"zstd/lib/legacy/*.c",
	}, root).Return([]string{at("zstd/lib/common/entropy_common.c"), at("zstd/lib/compress/zstd_compress.c")}, nil)

	unit, err := b.Compression(component(t, domain.ComponentZstd), input("x86_64-unknown-linux-gnu", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{at("zstd/lib"), at("zstd/lib/common"), at("zstd/lib/legacy")}, unit.Includes)
	assert.Equal(t, []domain.Define{domain.DefineValue("ZSTD_LIB_DEPRECATED", "0")}, unit.Defines)
	assert.Equal(t, "3", unit.OptLevel)
	assert.Len(t, unit.Sources, 2)
}

func TestBuilder_Zlib(t *testing.T) {
	b, tree := newBuilder(t)
	tree.EXPECT().Glob([]string{"zlib/*.c"}, root).Return([]string{at("zlib/adler32.c")}, nil)

	unit, err := b.Compression(component(t, domain.ComponentZlib), input("x86_64-unknown-linux-gnu", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"-Wno-implicit-function-declaration"}, unit.FlagsIfSupported)
	assert.Equal(t, "3", unit.OptLevel)
	assert.Equal(t, "z", unit.Archive)
}

func TestBuilder_ZlibNoSources(t *testing.T) {
	b, tree := newBuilder(t)
	tree.EXPECT().Glob(gomock.Any(), root).Return(nil, nil)

	_, err := b.Compression(component(t, domain.ComponentZlib), input("x86_64-unknown-linux-gnu", nil))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrNoSources.Error())
}

func TestBuilder_ZstdGlobFails(t *testing.T) {
	b, tree := newBuilder(t)
	tree.EXPECT().Glob(gomock.Any(), root).Return(nil, domain.ErrGlobFailed)

	_, err := b.Compression(component(t, domain.ComponentZstd), input("x86_64-unknown-linux-gnu", nil))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrGlobFailed.Error())
}

func TestBuilder_Bzip2(t *testing.T) {
	b, _ := newBuilder(t)

	unit, err := b.Compression(component(t, domain.ComponentBzip2), input("x86_64-unknown-linux-gnu", nil))
	require.NoError(t, err)
	assert.Len(t, unit.Sources, 7)
	assert.Equal(t, at("bzip2/blocksort.c"), unit.Sources[0])
	assert.Equal(t, []domain.Define{
		domain.DefineValue("_FILE_OFFSET_BITS", "64"),
		domain.DefineFlag("BZ_NO_STDIO"),
	}, unit.Defines)
	assert.False(t, unit.ExtraWarnings)
	assert.Equal(t, "3", unit.OptLevel)
	assert.Equal(t, "bz2", unit.Archive)
}

func TestBuilder_CompressionRejectsPrimary(t *testing.T) {
	b, _ := newBuilder(t)

	_, err := b.Compression(component(t, domain.ComponentRocksDB), input("x86_64-unknown-linux-gnu", nil))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownComponent.Error())
}

func TestBuilder_BuildVersion(t *testing.T) {
	t.Run("local file wins", func(t *testing.T) {
		dir := t.TempDir()
		local := filepath.Join(dir, domain.BuildVersionFileName)
		require.NoError(t, os.WriteFile(local, []byte("// local"), domain.PrivateFilePerm))

		path, err := bundle.NewBuilder(nil, nil).BuildVersion(bundle.Input{Root: dir, OutDir: filepath.Join(dir, "out")})
		require.NoError(t, err)
		assert.Equal(t, local, path)
	})

	t.Run("rendered into out dir", func(t *testing.T) {
		dir := t.TempDir()
		outDir := filepath.Join(dir, "out")

		path, err := bundle.NewBuilder(nil, nil).BuildVersion(bundle.Input{
			Root:   dir,
			OutDir: outDir,
			Env:    domain.Env{"ROCKSDB_GIT_SHA": "abc123"},
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(outDir, domain.BuildVersionFileName), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, string(bundle.RenderBuildVersion("abc123", "unknown")), string(data))
		assert.Contains(t, string(data), "rocksdb_build_git_sha:abc123")
	})
}

func TestBuilder_IncludesResolveSymlinkedRoot(t *testing.T) {
	vendored := t.TempDir()
	for _, dir := range []string{
		"rocksdb/include",
		"rocksdb/third-party/gtest-1.8.1/fused-src",
		"snappy",
		"lz4/lib",
		"zstd/lib/common",
		"zstd/lib/legacy",
		"zstd/lib/dictBuilder",
		"zlib",
		"bzip2",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(vendored, filepath.FromSlash(dir)), domain.DirPerm))
	}
	resolved, err := filepath.EvalSymlinks(vendored)
	require.NoError(t, err)

	alias := filepath.Join(t.TempDir(), "alias")
	require.NoError(t, os.Symlink(vendored, alias))

	ctrl := gomock.NewController(t)
	tree := mocks.NewMockSourceTree(ctrl)
	tree.EXPECT().Glob(gomock.Any(), alias).Return([]string{filepath.Join(alias, "zstd", "lib", "common", "a.c")}, nil)
	b := bundle.NewBuilder(fs.NewCanonicalizer(), tree)

	in := bundle.Input{
		Root:     alias,
		OutDir:   t.TempDir(),
		Facts:    domain.Classify("x86_64-unknown-linux-gnu"),
		Features: domain.DefaultFeatures(),
	}

	rocks, err := b.RocksDB(in, "/out/unity.cc", "/out/build_version.cc")
	require.NoError(t, err)
	snappy, err := b.Compression(component(t, domain.ComponentSnappy), in)
	require.NoError(t, err)
	zstd, err := b.Compression(component(t, domain.ComponentZstd), in)
	require.NoError(t, err)

	for _, unit := range []*domain.CompileUnit{rocks, snappy, zstd} {
		require.NotEmpty(t, unit.Includes)
		for _, inc := range unit.Includes {
			assert.True(t, inc == resolved || strings.HasPrefix(inc, resolved+string(filepath.Separator)),
				"%s include %s is not under %s", unit.Component, inc, resolved)
		}
	}
	assert.Contains(t, rocks.Includes, filepath.Join(resolved, "zstd", "lib"))
	assert.Equal(t, []string{filepath.Join(resolved, "snappy"), resolved}, snappy.Includes)
}
