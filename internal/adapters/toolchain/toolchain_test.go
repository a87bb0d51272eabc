package toolchain_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rockbuild/internal/adapters/toolchain"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// recorder captures every command passed to the executor.
type recorder struct {
	mu   sync.Mutex
	cmds []*domain.Command
}

func (r *recorder) record(_ context.Context, cmd *domain.Command, _, _ io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) byName(name string) []*domain.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Command
	for _, c := range r.cmds {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func newToolchain(t *testing.T) (*toolchain.Toolchain, *mocks.MockExecutor, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockExecutor(ctrl)
	log := mocks.NewMockLogger(ctrl)
	return toolchain.New(exec, log), exec, log
}

func TestToolchain_Compile_GNU(t *testing.T) {
	tc, exec, _ := newToolchain(t)
	rec := &recorder{}
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(rec.record).AnyTimes()

	out := t.TempDir()
	unit := &domain.CompileUnit{
		Component:     domain.ComponentSnappy,
		Archive:       "snappy",
		Target:        domain.Classify("x86_64-unknown-linux-gnu"),
		Sources:       []string{"/src/snappy/snappy.cc", "/src/snappy/snappy-c.cc"},
		Includes:      []string{"/src/snappy", "/src"},
		Defines:       []domain.Define{domain.DefineValue("NDEBUG", "1")},
		Flags:         []string{"-std=c++11"},
		CXX:           true,
		ExtraWarnings: true,
		OutDir:        out,
	}

	artifact, err := tc.Compile(context.Background(), unit)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "libsnappy.a"), artifact.Path)
	assert.Equal(t, out, artifact.Dir)
	assert.Equal(t, "snappy", artifact.Name)
	assert.Len(t, artifact.Objects, 2)

	compiles := rec.byName("c++")
	require.Len(t, compiles, 2)
	args := compiles[0].Args
	assert.Equal(t, []string{"-O2", "-ffunction-sections", "-fdata-sections", "-fPIC", "-Wall", "-Wextra"}, args[:6])
	assert.Subset(t, args, []string{"-I", "/src/snappy", "-DNDEBUG=1", "-std=c++11", "-c"})

	archives := rec.byName("ar")
	require.Len(t, archives, 1)
	assert.Equal(t, []string{"crs", artifact.Path}, archives[0].Args[:2])
	assert.ElementsMatch(t, artifact.Objects, archives[0].Args[2:])
}

func TestToolchain_Compile_MSVC(t *testing.T) {
	tc, exec, _ := newToolchain(t)
	rec := &recorder{}
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(rec.record).AnyTimes()

	out := t.TempDir()
	unit := &domain.CompileUnit{
		Component: domain.ComponentZlib,
		Archive:   "z",
		Target:    domain.Classify("x86_64-pc-windows-msvc"),
		Sources:   []string{`C:\src\zlib\adler32.c`},
		OptLevel:  "3",
		OutDir:    out,
	}

	artifact, err := tc.Compile(context.Background(), unit)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "z.lib"), artifact.Path)

	compiles := rec.byName("cl.exe")
	require.Len(t, compiles, 1)
	assert.Contains(t, compiles[0].Args, "-O2")
	assert.Contains(t, compiles[0].Args, `-Tc`+`C:\src\zlib\adler32.c`)

	archives := rec.byName("lib.exe")
	require.Len(t, archives, 1)
	assert.Equal(t, "-OUT:"+filepath.Clean(artifact.Path), archives[0].Args[1])
}

func TestToolchain_Compile_CustomTools(t *testing.T) {
	tc, exec, _ := newToolchain(t)
	rec := &recorder{}
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(rec.record).AnyTimes()

	unit := &domain.CompileUnit{
		Component: domain.ComponentLZ4,
		Archive:   "lz4",
		Target:    domain.Classify("aarch64-unknown-linux-gnu"),
		Tools:     domain.Tools{CC: "clang", AR: "llvm-ar"},
		Sources:   []string{"/src/lz4/lib/lz4.c"},
		OptLevel:  "3",
		OutDir:    t.TempDir(),
	}

	_, err := tc.Compile(context.Background(), unit)
	require.NoError(t, err)

	compiles := rec.byName("clang")
	require.Len(t, compiles, 1)
	assert.Equal(t, "-O3", compiles[0].Args[0])
	assert.Len(t, rec.byName("llvm-ar"), 1)
}

func TestToolchain_Compile_FlagsIfSupported(t *testing.T) {
	tc, exec, log := newToolchain(t)

	var mu sync.Mutex
	checks := map[string]int{}
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command, stdout, _ io.Writer) error {
			if cmd.Name != "c++" || !slices.Contains(cmd.Args, "-c") || len(cmd.Args) != 5 {
				return nil
			}
			mu.Lock()
			checks[cmd.Args[0]]++
			mu.Unlock()
			if cmd.Args[0] == "-mpclmul" {
				_, _ = fmt.Fprintln(stdout, "c++: error: unrecognized command-line option '-mpclmul'")
				return errors.New("exit status 1")
			}
			return nil
		}).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Times(1)

	unit := &domain.CompileUnit{
		Component:        domain.ComponentRocksDB,
		Archive:          "rocksdb",
		Target:           domain.Classify("x86_64-unknown-linux-gnu"),
		Sources:          []string{"/out/unity.cc"},
		FlagsIfSupported: []string{"-msse4.2", "-mpclmul"},
		CXX:              true,
		OutDir:           t.TempDir(),
	}

	_, err := tc.Compile(context.Background(), unit)
	require.NoError(t, err)

	// A second unit reuses the cached flag checks.
	unit.OutDir = t.TempDir()
	log.EXPECT().Warn(gomock.Any()).Times(1)
	_, err = tc.Compile(context.Background(), unit)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"-msse4.2": 1, "-mpclmul": 1}, checks)
}

func TestToolchain_Compile_Failure(t *testing.T) {
	tc, exec, _ := newToolchain(t)
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command, stdout, _ io.Writer) error {
			if cmd.Name == "cc" {
				_, _ = fmt.Fprintln(stdout, "bzlib.c:12:1: error: expected ';'")
				return errors.New("exit status 1")
			}
			return nil
		}).AnyTimes()

	unit := &domain.CompileUnit{
		Component: domain.ComponentBzip2,
		Archive:   "bz2",
		Target:    domain.Classify("x86_64-unknown-linux-gnu"),
		Sources:   []string{"/src/bzip2/bzlib.c"},
		OutDir:    t.TempDir(),
	}

	_, err := tc.Compile(context.Background(), unit)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrToolchain.Error())
}

func TestToolchain_Compile_UnitJobsBoundConcurrency(t *testing.T) {
	tc, exec, _ := newToolchain(t)

	var mu sync.Mutex
	running, peak := 0, 0
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command, _, _ io.Writer) error {
			if cmd.Name != "cc" {
				return nil
			}
			mu.Lock()
			running++
			peak = max(peak, running)
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
			return nil
		}).AnyTimes()

	unit := &domain.CompileUnit{
		Component: domain.ComponentLZ4,
		Archive:   "lz4",
		Target:    domain.Classify("x86_64-unknown-linux-gnu"),
		Sources:   []string{"/src/lz4/lib/lz4.c", "/src/lz4/lib/lz4hc.c", "/src/lz4/lib/lz4frame.c", "/src/lz4/lib/xxhash.c"},
		OutDir:    t.TempDir(),
		Jobs:      1,
	}

	_, err := tc.Compile(context.Background(), unit)
	require.NoError(t, err)
	assert.Equal(t, 1, peak)
}

func TestToolchain_Compile_NoSources(t *testing.T) {
	tc, _, _ := newToolchain(t)
	_, err := tc.Compile(context.Background(), &domain.CompileUnit{Component: domain.ComponentZlib})
	assert.ErrorContains(t, err, domain.ErrNoSources.Error())
}

func TestObjectName_SameBaseName(t *testing.T) {
	a := toolchain.ObjectName("/src/rocksdb/table/format.cc", ".o")
	b := toolchain.ObjectName("/src/rocksdb/util/format.cc", ".o")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, toolchain.ObjectName("/src/rocksdb/table/format.cc", ".o"))
	assert.Contains(t, a, "-format.o")
}
