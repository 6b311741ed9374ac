package scan

import "path"

// Label returns the display label of a source file given its slash-separated
// path relative to the scan root: the file name, except for index files
// inside a directory, which are labelled "<dir>/<file>" so that the many
// index.ts files of a project stay distinguishable.
func Label(rel string) string {
	name := path.Base(rel)
	dir := path.Dir(rel)
	if stem(name) == "index" && dir != "." && dir != "/" {
		return path.Base(dir) + "/" + name
	}
	return name
}

// stem returns name without its last extension.
func stem(name string) string {
	return name[:len(name)-len(path.Ext(name))]
}
