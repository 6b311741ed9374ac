package scan

import (
	"path"
	"strings"
)

// candidateSuffixes are appended to a resolved path, in order, to find the
// file an extensionless specifier refers to.
var candidateSuffixes = []string{
	"",
	".tsx", ".ts", ".jsx", ".js",
	"/index.tsx", "/index.ts", "/index.jsx", "/index.js",
}

// resolver maps import specifiers to files of the project.
type resolver struct {
	files map[string]bool // relative paths of all scanned files
	rules []ModuleResolution
}

func newResolver(files []sourceFile, rules []ModuleResolution) *resolver {
	r := &resolver{files: make(map[string]bool, len(files)), rules: rules}
	for _, f := range files {
		r.files[f.rel] = true
	}
	return r
}

// resolve returns the relative path of the project file spec refers to when
// imported from the file at importer, or ok=false when spec is external.
func (r *resolver) resolve(importer, spec string) (target string, ok bool) {
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		if target, ok := r.lookup(joinRelative(path.Dir(importer), spec)); ok {
			return target, true
		}
	}
	for _, rule := range r.rules {
		if !strings.HasPrefix(spec, rule.Pattern) {
			continue
		}
		if target, ok := r.lookup(strings.ReplaceAll(spec, rule.Pattern, rule.Replacement)); ok {
			return target, true
		}
	}
	return "", false
}

func (r *resolver) lookup(p string) (string, bool) {
	for _, suffix := range candidateSuffixes {
		if c := p + suffix; r.files[c] {
			return c, true
		}
	}
	return "", false
}

// joinRelative applies the segments of spec to dir. ".." above the scan root
// stays at the root.
func joinRelative(dir, spec string) string {
	var parts []string
	if dir != "." && dir != "" {
		parts = strings.Split(dir, "/")
	}
	for _, seg := range strings.Split(spec, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}
