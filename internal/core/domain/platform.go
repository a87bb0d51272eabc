package domain

import (
	"runtime"
	"strings"
)

// Platform is the closed set of operating system families the build distinguishes.
type Platform int

const (
	// PlatformUnknown is any target the build has no special handling for.
	PlatformUnknown Platform = iota
	// PlatformLinux covers every *-linux-* target.
	PlatformLinux
	// PlatformDarwin covers macOS and other *-darwin targets.
	PlatformDarwin
	// PlatformFreeBSD covers *-freebsd targets.
	PlatformFreeBSD
	// PlatformWindows covers *-windows-* targets, both gnu and msvc.
	PlatformWindows
)

// Platforms lists every platform variant, including PlatformUnknown.
var Platforms = []Platform{
	PlatformUnknown,
	PlatformLinux,
	PlatformDarwin,
	PlatformFreeBSD,
	PlatformWindows,
}

// String returns the lowercase name of the platform.
func (p Platform) String() string {
	switch p {
	case PlatformLinux:
		return "linux"
	case PlatformDarwin:
		return "darwin"
	case PlatformFreeBSD:
		return "freebsd"
	case PlatformWindows:
		return "windows"
	default:
		return "unknown"
	}
}

// TargetTriple is a target platform triple such as "x86_64-unknown-linux-gnu".
type TargetTriple string

// Fields splits the triple into architecture, vendor, os and abi.
// Missing fields are returned empty.
func (t TargetTriple) Fields() (arch, vendor, os, abi string) {
	parts := strings.Split(string(t), "-")
	field := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return field(0), field(1), field(2), field(3)
}

// String returns the triple as given.
func (t TargetTriple) String() string {
	return string(t)
}

// Facts are the platform properties the build decisions depend on.
type Facts struct {
	Triple   TargetTriple `json:"triple"`
	Platform Platform     `json:"-"`

	IsWindows bool `json:"is_windows"`
	IsDarwin  bool `json:"is_darwin"`
	IsLinux   bool `json:"is_linux"`
	IsFreeBSD bool `json:"is_freebsd"`
	IsX86_64  bool `json:"is_x86_64"`
	ABIIsGnu  bool `json:"abi_is_gnu"`

	// MSVC selects the MSVC-style compiler family instead of a POSIX-style one.
	MSVC bool `json:"msvc"`
}

// Classify derives platform facts from a target triple.
// A triple without an os field classifies as PlatformUnknown with every fact false.
func Classify(triple TargetTriple) Facts {
	facts := Facts{Triple: triple}

	_, _, osField, abi := triple.Fields()
	if osField == "" {
		return facts
	}

	s := string(triple)
	switch {
	case strings.Contains(s, "windows"):
		facts.Platform = PlatformWindows
	case strings.Contains(s, "darwin"):
		facts.Platform = PlatformDarwin
	case strings.Contains(s, "freebsd"):
		facts.Platform = PlatformFreeBSD
	case strings.Contains(s, "linux"):
		facts.Platform = PlatformLinux
	}

	facts.IsWindows = facts.Platform == PlatformWindows
	facts.IsDarwin = facts.Platform == PlatformDarwin
	facts.IsLinux = facts.Platform == PlatformLinux
	facts.IsFreeBSD = facts.Platform == PlatformFreeBSD
	facts.IsX86_64 = strings.Contains(s, "x86_64")
	facts.ABIIsGnu = abi == "gnu"
	facts.MSVC = strings.Contains(s, "msvc")

	return facts
}

// platformRules is the per-variant source substitution and define set.
type platformRules struct {
	drop    []string
	add     []string
	defines []Define
}

var posixDefines = []Define{
	DefineValue("ROCKSDB_PLATFORM_POSIX", "1"),
	DefineValue("ROCKSDB_LIB_IO_POSIX", "1"),
}

// platformTable must hold an entry for every value in Platforms.
var platformTable = map[Platform]platformRules{
	PlatformUnknown: {},
	PlatformLinux: {
		defines: append([]Define{DefineValue("OS_LINUX", "1")}, posixDefines...),
	},
	PlatformDarwin: {
		defines: append([]Define{DefineValue("OS_MACOSX", "1")}, posixDefines...),
	},
	PlatformFreeBSD: {
		defines: append([]Define{DefineValue("OS_FREEBSD", "1")}, posixDefines...),
	},
	PlatformWindows: {
		drop: []string{
			"port/port_posix.cc",
			"env/env_posix.cc",
			"env/io_posix.cc",
		},
		add: []string{
			"port/win/port_win.cc",
			"port/win/env_win.cc",
			"port/win/env_default.cc",
			"port/win/win_logger.cc",
			"port/win/io_win.cc",
			"port/win/win_thread.cc",
		},
		defines: []Define{
			DefineValue("OS_WIN", "1"),
			DefineValue("ROCKSDB_WINDOWS_UTF8_FILENAMES", "1"),
		},
	},
}

func rulesFor(p Platform) platformRules {
	return platformTable[p]
}

// PlatformDefines returns the OS identification defines for the platform.
func PlatformDefines(p Platform) []Define {
	return append([]Define(nil), rulesFor(p).defines...)
}

// PlatformExcludedSources returns the manifest entries removed for the platform.
func PlatformExcludedSources(p Platform) []string {
	return append([]string(nil), rulesFor(p).drop...)
}

// PlatformReplacementSources returns the entries appended to the source set for the platform.
func PlatformReplacementSources(p Platform) []string {
	return append([]string(nil), rulesFor(p).add...)
}

// SystemLibraries returns the system libraries every target of the platform links against.
func SystemLibraries(p Platform) []LinkDirective {
	if p != PlatformWindows {
		return nil
	}
	return []LinkDirective{
		{Name: "rpcrt4", Mode: LinkDynamic},
		{Name: "shlwapi", Mode: LinkDynamic},
	}
}

// HostTriple returns a target triple describing the machine rockbuild runs on.
func HostTriple() TargetTriple {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i686"
	}

	switch runtime.GOOS {
	case "darwin":
		return TargetTriple(arch + "-apple-darwin")
	case "windows":
		return TargetTriple(arch + "-pc-windows-msvc")
	case "freebsd":
		return TargetTriple(arch + "-unknown-freebsd")
	case "linux":
		return TargetTriple(arch + "-unknown-linux-gnu")
	default:
		return TargetTriple(arch + "-unknown-" + runtime.GOOS)
	}
}
