package bundle

import (
	"go.trai.ch/rockbuild/internal/core/domain"
)

// rocksdbExportIncludes are reported to downstream consumers of the primary library.
var rocksdbExportIncludes = []string{
	"rocksdb/include",
	"rocksdb",
	"rocksdb/third-party/gtest-1.8.1/fused-src/",
}

// featureIncludes are the canonical include directories added per enabled compression library.
var featureIncludes = map[domain.ComponentID][]string{
	domain.ComponentSnappy: {"snappy/"},
	domain.ComponentLZ4:    {"lz4/lib/"},
	domain.ComponentZstd:   {"zstd/lib/", "zstd/lib/dictBuilder/"},
	domain.ComponentZlib:   {"zlib/"},
	domain.ComponentBzip2:  {"bzip2/"},
}

var x86Flags = []string{"-msse2", "-msse4.1", "-msse4.2", "-mpclmul"}

// RocksDB returns the compile unit of the primary library: the unity unit plus the build version source.
func (b *Builder) RocksDB(in Input, unityPath, buildVersionPath string) (*domain.CompileUnit, error) {
	unit := newUnit(domain.ComponentRocksDB, in)
	unit.CXX = true
	unit.Sources = []string{unityPath, buildVersionPath}

	for _, rel := range rocksdbExportIncludes {
		inc, err := b.canonical(in, rel)
		if err != nil {
			return nil, err
		}
		unit.Includes = append(unit.Includes, inc)
		unit.ExportIncludes = append(unit.ExportIncludes, inc)
	}

	for _, c := range domain.Components() {
		if !c.Optional || !in.Features.Enabled(c) {
			continue
		}
		unit.Defines = append(unit.Defines, domain.DefineValue(c.EnvPrefix, "1"))
		for _, rel := range featureIncludes[c.ID] {
			inc, err := b.canonical(in, rel)
			if err != nil {
				return nil, err
			}
			unit.Includes = append(unit.Includes, inc)
		}
	}

	root, err := b.canonical(in, ".")
	if err != nil {
		return nil, err
	}
	unit.Includes = append(unit.Includes, root)
	unit.Defines = append(unit.Defines, domain.DefineValue("NDEBUG", "1"))

	if in.Facts.IsX86_64 {
		unit.Defines = append(unit.Defines,
			domain.DefineValue("HAVE_PCLMUL", "1"),
			domain.DefineValue("HAVE_SSE42", "1"),
		)
		unit.FlagsIfSupported = append(unit.FlagsIfSupported, x86Flags...)
	}

	unit.Defines = append(unit.Defines, domain.PlatformDefines(in.Facts.Platform)...)

	if in.Facts.MSVC {
		unit.Flags = append(unit.Flags, "-EHsc")
	} else {
		unit.Flags = append(unit.Flags, "-std=c++11", "-Wno-unused-parameter")
	}

	unit.Defines = append(unit.Defines, domain.DefineValue("ROCKSDB_SUPPORT_THREAD_LOCAL", "1"))
	return unit, nil
}
