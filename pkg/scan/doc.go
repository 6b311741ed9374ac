// Package scan generates a dependency graph document from a source tree.
//
// # Overview
//
// A scan walks the configured directory for JavaScript and TypeScript files,
// extracts the import specifiers of each file with tree-sitter, resolves every
// specifier to a file of the project or to an external package, and returns
// a [graph.Graph]:
//
//   - one INTERNAL node per source file, labelled by [Label];
//   - one EXTERNAL node per distinct unresolved specifier, labelled by it;
//   - one edge per (importer, imported) pair.
//
// # Configuration
//
// Scans are configured with a TOML file (see [LoadConfig]):
//
//	title = "My App"
//	path = "./src"
//	language = "typescript"
//	exclude = ["node_modules", "build", "dist", "__generated__"]
//
//	[[module_resolution]]
//	pattern = "~/"
//	replacement = "app/"
//
// # Resolution
//
// A specifier starting with "./" or "../" is resolved against the importing
// file's directory. Otherwise, or when that fails, the first module
// resolution rule whose pattern prefixes the specifier and yields an existing
// file wins. Everything else is external. Each resolved path is tried as-is,
// with the extensions .tsx .ts .jsx .js, and as a directory index.
//
// # Stable IDs
//
// Node and edge IDs are name-based UUIDs derived from relative paths and
// package names, so scanning the same tree twice yields the same IDs. The
// viewer relies on this to keep the user's layout when a document is
// regenerated while it is being viewed.
//
// # Caching
//
// Import extraction results are cached by file content through
// [cache.Cache]; unchanged files are not parsed again.
package scan
