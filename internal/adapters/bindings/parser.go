package bindings

import (
	"regexp"
	"strings"

	"go.trai.ch/rockbuild/internal/core/domain"
)

// blockedTypes are never emitted. max_align_t has a platform dependent layout
// that binding consumers cannot represent.
var blockedTypes = map[string]struct{}{
	"max_align_t": {},
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	whitespace   = regexp.MustCompile(`\s+`)

	opaqueType = regexp.MustCompile(`^typedef struct (\w+) (\w+)$`)
	function   = regexp.MustCompile(`^extern ROCKSDB_LIBRARY_API (.+?)\s*\b(\w+)\s*\((.*)\)$`)
)

// Parse extracts the opaque handle types and exported functions from C header text.
func Parse(header, src string) *domain.APISurface {
	surface := &domain.APISurface{
		Header:    header,
		Types:     []string{},
		Functions: []domain.APIFunction{},
	}

	for _, stmt := range statements(src) {
		if m := opaqueType.FindStringSubmatch(stmt); m != nil {
			if m[1] != m[2] {
				continue
			}
			if _, blocked := blockedTypes[m[1]]; blocked {
				continue
			}
			surface.Types = append(surface.Types, m[1])
			continue
		}

		if m := function.FindStringSubmatch(stmt); m != nil {
			surface.Functions = append(surface.Functions, domain.APIFunction{
				Name:    m[2],
				Returns: strings.ReplaceAll(strings.TrimSpace(m[1]), " *", "*"),
				Params:  strings.TrimSpace(m[3]),
			})
		}
	}

	return surface
}

// statements strips comments and preprocessor lines and splits the rest into
// single-line declarations.
func statements(src string) []string {
	src = blockComment.ReplaceAllString(src, " ")
	src = lineComment.ReplaceAllString(src, "")

	var b strings.Builder
	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	parts := strings.FieldsFunc(b.String(), func(r rune) bool {
		return r == ';' || r == '{' || r == '}'
	})

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(whitespace.ReplaceAllString(p, " "))
		p = strings.ReplaceAll(p, "( ", "(")
		p = strings.ReplaceAll(p, " )", ")")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
