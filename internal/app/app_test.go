package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rockbuild/internal/app"
	"go.trai.ch/rockbuild/internal/core/domain"
	"go.trai.ch/rockbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeRunner captures the resolved request.
type fakeRunner struct {
	req  *domain.BuildRequest
	err  error
	meta *domain.BuildMetadata
}

func (f *fakeRunner) Run(_ context.Context, req *domain.BuildRequest) (*domain.BuildMetadata, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	if f.meta != nil {
		return f.meta, nil
	}
	return &domain.BuildMetadata{}, nil
}

func (f *fakeRunner) Plan(_ context.Context, req *domain.BuildRequest) (*domain.BuildPlan, error) {
	f.req = req
	return &domain.BuildPlan{Facts: domain.Classify(req.Target)}, f.err
}

type appTestMocks struct {
	loader *mocks.MockConfigLoader
	store  *mocks.MockRecordStore
	logger *mocks.MockLogger
	runner *fakeRunner
}

func setupAppTest(t *testing.T, environ ...string) (*app.App, appTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appTestMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		store:  mocks.NewMockRecordStore(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		runner: &fakeRunner{},
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	a := app.New(m.loader, m.runner, m.store, m.logger).WithEnviron(func() []string { return environ })
	return a, m
}

func TestApp_Build_Defaults(t *testing.T) {
	root := t.TempDir()
	a, m := setupAppTest(t)
	m.loader.EXPECT().Load(root).Return(&domain.Config{}, nil)

	require.NoError(t, a.Build(context.Background(), app.Options{Root: root}))

	req := m.runner.req
	require.NotNil(t, req)
	assert.Equal(t, root, req.Root)
	assert.Equal(t, domain.HostTriple(), req.Target)
	assert.Equal(t, filepath.Join(root, "target", "rockbuild"), req.OutDir)
	assert.Equal(t, domain.DefaultFeatures(), req.Features)
	assert.Equal(t, "cargo:", req.Prefix)
	assert.Equal(t, 0, req.Jobs)
	assert.Empty(t, req.ConfigPath)
}

func TestApp_Build_Precedence(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ConfigFileName), nil, domain.PrivateFilePerm))

	a, m := setupAppTest(t,
		"TARGET=aarch64-unknown-linux-gnu",
		"OUT_DIR="+filepath.Join(root, "env-out"),
		"CC=gcc-13",
		"ROCKSDB_LIB_DIR=/opt/rocksdb/lib",
	)
	m.loader.EXPECT().Load(root).Return(&domain.Config{
		Target:   "x86_64-unknown-freebsd",
		OutDir:   filepath.Join(root, "cfg-out"),
		Features: map[string]bool{"bzip2": false},
		Jobs:     3,
		Tools:    domain.Tools{CC: "clang", CXX: "clang++"},
		Prefix:   "rockbuild:",
	}, nil)

	require.NoError(t, a.Build(context.Background(), app.Options{Root: root, Target: "x86_64-pc-windows-msvc"}))

	req := m.runner.req
	assert.Equal(t, domain.TargetTriple("x86_64-pc-windows-msvc"), req.Target)
	assert.Equal(t, filepath.Join(root, "env-out"), req.OutDir)
	assert.Equal(t, domain.Tools{CC: "gcc-13", CXX: "clang++"}, req.Tools)
	assert.Equal(t, 3, req.Jobs)
	assert.Equal(t, "rockbuild:", req.Prefix)
	assert.False(t, req.Features[domain.ComponentBzip2])
	assert.True(t, req.Features[domain.ComponentSnappy])
	assert.Equal(t, "/opt/rocksdb/lib", req.Env["ROCKSDB_LIB_DIR"])
	assert.Equal(t, filepath.Join(root, domain.ConfigFileName), req.ConfigPath)
}

func TestApp_Build_FeatureFlags(t *testing.T) {
	tests := []struct {
		name string
		opts app.Options
		cfg  map[string]bool
		want domain.Features
	}{
		{
			name: "FlagReplacesDefaults",
			opts: app.Options{Features: []string{"lz4", "ZSTD"}},
			cfg:  map[string]bool{"snappy": true},
			want: domain.Features{domain.ComponentLZ4: true, domain.ComponentZstd: true},
		},
		{
			name: "NoDefaultFeatures",
			opts: app.Options{NoDefaultFeatures: true},
			want: domain.Features{},
		},
		{
			name: "NoDefaultFeaturesWithConfig",
			opts: app.Options{NoDefaultFeatures: true},
			cfg:  map[string]bool{"zlib": true},
			want: domain.Features{domain.ComponentZlib: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			a, m := setupAppTest(t)
			m.loader.EXPECT().Load(root).Return(&domain.Config{Features: tt.cfg}, nil)

			tt.opts.Root = root
			require.NoError(t, a.Build(context.Background(), tt.opts))
			assert.Equal(t, tt.want, m.runner.req.Features)
		})
	}
}

func TestApp_Build_Errors(t *testing.T) {
	t.Run("unknown feature", func(t *testing.T) {
		root := t.TempDir()
		a, m := setupAppTest(t)
		m.loader.EXPECT().Load(root).Return(&domain.Config{}, nil)

		err := a.Build(context.Background(), app.Options{Root: root, Features: []string{"lzma"}})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrUnknownFeature.Error())
		assert.Nil(t, m.runner.req)
	})

	t.Run("negative jobs", func(t *testing.T) {
		a, _ := setupAppTest(t)

		err := a.Build(context.Background(), app.Options{Jobs: -2})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrInvalidJobs.Error())
	})

	t.Run("config load fails", func(t *testing.T) {
		root := t.TempDir()
		a, m := setupAppTest(t)
		m.loader.EXPECT().Load(root).Return(nil, domain.ErrConfigParseFailed)

		err := a.Build(context.Background(), app.Options{Root: root})
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
	})

	t.Run("run fails", func(t *testing.T) {
		root := t.TempDir()
		a, m := setupAppTest(t)
		m.loader.EXPECT().Load(root).Return(&domain.Config{}, nil)
		m.runner.err = errors.Join(domain.ErrToolchain, errors.New("cc exited 1"))

		err := a.Build(context.Background(), app.Options{Root: root})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrBuildFailed)
		assert.ErrorContains(t, err, domain.ErrToolchain.Error())
	})
}

func TestApp_Plan(t *testing.T) {
	root := t.TempDir()
	a, m := setupAppTest(t)
	m.loader.EXPECT().Load(root).Return(&domain.Config{SourceDir: filepath.Join(root, "vendor")}, nil)

	plan, err := a.Plan(context.Background(), app.Options{Root: root, Target: "x86_64-apple-darwin"})
	require.NoError(t, err)
	assert.True(t, plan.Facts.IsDarwin)
	assert.Equal(t, filepath.Join(root, "vendor"), m.runner.req.Root)
}

func TestApp_Status(t *testing.T) {
	root := t.TempDir()
	a, m := setupAppTest(t)
	m.loader.EXPECT().Load(root).Return(&domain.Config{}, nil)

	records := []domain.BuildRecord{{Component: domain.ComponentRocksDB}}
	m.store.EXPECT().List(filepath.Join(root, "target", "rockbuild")).Return(records, nil)

	got, err := a.Status(context.Background(), app.Options{Root: root})
	require.NoError(t, err)
	assert.Equal(t, records, got)
}
