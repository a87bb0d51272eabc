package bundle

import (
	"go.trai.ch/rockbuild/internal/core/domain"
)

const optLevelFast = "3"

func (b *Builder) snappy(in Input) (*domain.CompileUnit, error) {
	unit := newUnit(domain.ComponentSnappy, in)
	unit.CXX = true
	includes, err := b.canonicalAll(in, "snappy", ".")
	if err != nil {
		return nil, err
	}
	unit.Includes = includes
	unit.Defines = []domain.Define{domain.DefineValue("NDEBUG", "1")}
	unit.Flags = cxxStandardFlags(in.Facts)
	unit.Sources = files(in, "snappy/snappy.cc", "snappy/snappy-sinksource.cc", "snappy/snappy-c.cc")
	return unit, nil
}

func (b *Builder) lz4(in Input) (*domain.CompileUnit, error) {
	unit := newUnit(domain.ComponentLZ4, in)
	unit.Sources = files(in, "lz4/lib/lz4.c", "lz4/lib/lz4frame.c", "lz4/lib/lz4hc.c", "lz4/lib/xxhash.c")
	unit.OptLevel = optLevelFast
	if in.Facts.Triple == "i686-pc-windows-gnu" {
		unit.Flags = append(unit.Flags, "-fno-tree-vectorize")
	}
	return unit, nil
}

var zstdPatterns = []string{
	"zstd/lib/common/*.c",
	"zstd/lib/compress/*.c",
	"zstd/lib/decompress/*.c",
	"zstd/lib/dictBuilder/*.c",
	"zstd/lib/legacy/*.c",
}

func (b *Builder) zstd(in Input) (*domain.CompileUnit, error) {
	unit := newUnit(domain.ComponentZstd, in)
	includes, err := b.canonicalAll(in, "zstd/lib/", "zstd/lib/common", "zstd/lib/legacy")
	if err != nil {
		return nil, err
	}
	unit.Includes = includes

	sources, err := b.tree.Glob(zstdPatterns, in.Root)
	if err != nil {
		return nil, err
	}
	unit.Sources = sources
	unit.OptLevel = optLevelFast
	unit.Defines = []domain.Define{domain.DefineValue("ZSTD_LIB_DEPRECATED", "0")}
	return unit, nil
}

func (b *Builder) zlib(in Input) (*domain.CompileUnit, error) {
	unit := newUnit(domain.ComponentZlib, in)

	sources, err := b.tree.Glob([]string{"zlib/*.c"}, in.Root)
	if err != nil {
		return nil, err
	}
	unit.Sources = sources
	unit.FlagsIfSupported = []string{"-Wno-implicit-function-declaration"}
	unit.OptLevel = optLevelFast
	return unit, nil
}

func (b *Builder) bzip2(in Input) (*domain.CompileUnit, error) {
	unit := newUnit(domain.ComponentBzip2, in)
	unit.Sources = files(in,
		"bzip2/blocksort.c",
		"bzip2/bzlib.c",
		"bzip2/compress.c",
		"bzip2/crctable.c",
		"bzip2/decompress.c",
		"bzip2/huffman.c",
		"bzip2/randtable.c",
	)
	unit.Defines = []domain.Define{
		domain.DefineValue("_FILE_OFFSET_BITS", "64"),
		domain.DefineFlag("BZ_NO_STDIO"),
	}
	unit.ExtraWarnings = false
	unit.OptLevel = optLevelFast
	return unit, nil
}
