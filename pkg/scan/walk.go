package scan

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// SourceExtensions are the file extensions picked up by a scan.
var SourceExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// sourceFile is a file found by walk.
type sourceFile struct {
	abs string // absolute path
	rel string // slash-separated path relative to the scan root
}

// walk returns the source files below root in lexical order, skipping any
// directory whose name is in exclude. Declaration files (.d.ts) are source
// files too; they carry imports like any other module.
func walk(root string, exclude []string) ([]sourceFile, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []sourceFile
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != abs && slices.Contains(exclude, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSource(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		files = append(files, sourceFile{abs: path, rel: filepath.ToSlash(rel)})
		return nil
	})
	return files, err
}

func isSource(name string) bool {
	ext := filepath.Ext(name)
	return slices.Contains(SourceExtensions, strings.ToLower(ext))
}
