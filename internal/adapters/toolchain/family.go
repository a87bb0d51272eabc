package toolchain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/rockbuild/internal/core/domain"
)

// defaultOptLevel matches the release profile of the build systems rockbuild runs under.
const defaultOptLevel = "2"

// family renders command lines for one compiler family.
type family interface {
	Name() string
	DefaultCC() string
	DefaultCXX() string
	DefaultAR() string
	ArchiveFileName(name string) string
	ObjectExt() string
	// CommonArgs are shared by every object compiled for the unit.
	CommonArgs(unit *domain.CompileUnit, supported []string) []string
	// ObjectArgs compile a single source into obj.
	ObjectArgs(src, obj string, cxx bool) []string
	ArchiveArgs(archive string, objects []string) []string
	// CheckArgs compile src with flag to check whether the compiler accepts it.
	CheckArgs(flag, src, obj string) []string
	// Rejected reports whether flag check output signals an ignored flag despite a zero exit code.
	Rejected(output string) bool
}

func familyFor(facts domain.Facts) family {
	if facts.MSVC {
		return msvc{}
	}
	return gnu{facts: facts}
}

// gnu covers gcc, clang and compatible drivers.
type gnu struct {
	facts domain.Facts
}

func (gnu) Name() string       { return "gnu" }
func (gnu) DefaultCC() string  { return "cc" }
func (gnu) DefaultCXX() string { return "c++" }
func (gnu) DefaultAR() string  { return "ar" }
func (gnu) ObjectExt() string  { return ".o" }

func (gnu) ArchiveFileName(name string) string {
	return "lib" + name + ".a"
}

func (g gnu) CommonArgs(unit *domain.CompileUnit, supported []string) []string {
	opt := unit.OptLevel
	if opt == "" {
		opt = defaultOptLevel
	}

	args := []string{"-O" + opt, "-ffunction-sections", "-fdata-sections"}
	if !g.facts.IsWindows {
		args = append(args, "-fPIC")
	}
	args = append(args, "-Wall")
	if unit.ExtraWarnings {
		args = append(args, "-Wextra")
	}
	for _, inc := range unit.Includes {
		args = append(args, "-I", inc)
	}
	for _, d := range unit.Defines {
		args = append(args, "-D"+d.String())
	}
	args = append(args, unit.Flags...)
	return append(args, supported...)
}

func (gnu) ObjectArgs(src, obj string, _ bool) []string {
	return []string{"-o", obj, "-c", src}
}

func (gnu) ArchiveArgs(archive string, objects []string) []string {
	return append([]string{"crs", archive}, objects...)
}

func (gnu) CheckArgs(flag, src, obj string) []string {
	return []string{flag, "-o", obj, "-c", src}
}

func (gnu) Rejected(output string) bool {
	return strings.Contains(output, "unrecognized command") ||
		strings.Contains(output, "unknown argument") ||
		strings.Contains(output, "unknown warning option")
}

// msvc covers cl.exe and clang-cl.
type msvc struct{}

func (msvc) Name() string       { return "msvc" }
func (msvc) DefaultCC() string  { return "cl.exe" }
func (msvc) DefaultCXX() string { return "cl.exe" }
func (msvc) DefaultAR() string  { return "lib.exe" }
func (msvc) ObjectExt() string  { return ".obj" }

func (msvc) ArchiveFileName(name string) string {
	return name + ".lib"
}

func (msvc) CommonArgs(unit *domain.CompileUnit, supported []string) []string {
	args := []string{"-nologo", "-MD", "-Brepro"}
	switch unit.OptLevel {
	case "0":
		args = append(args, "-Od")
	default:
		args = append(args, "-O2")
	}
	if unit.ExtraWarnings {
		args = append(args, "-W4")
	}
	for _, inc := range unit.Includes {
		args = append(args, "-I", inc)
	}
	for _, d := range unit.Defines {
		args = append(args, "-D"+d.String())
	}
	args = append(args, unit.Flags...)
	return append(args, supported...)
}

func (msvc) ObjectArgs(src, obj string, cxx bool) []string {
	lang := "-Tc" + src
	if cxx {
		lang = "-Tp" + src
	}
	return []string{"-Fo" + obj, "-c", lang}
}

func (msvc) ArchiveArgs(archive string, objects []string) []string {
	return append([]string{"-nologo", "-OUT:" + filepath.Clean(archive)}, objects...)
}

func (msvc) CheckArgs(flag, src, obj string) []string {
	return []string{"-nologo", flag, "-Fo" + obj, "-c", src}
}

// Rejected matches warning D9002, "ignoring unknown option".
func (msvc) Rejected(output string) bool {
	return strings.Contains(output, "D9002")
}
