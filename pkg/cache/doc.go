// Package cache provides the key-value cache used by the source scanner.
//
// Extracting imports with tree-sitter is the expensive part of a scan, and
// most files do not change between scans. The scanner therefore stores the
// import specifiers of each file under a key derived from the file content
// ([ImportsKey]) and skips parsing on a hit.
//
// # Backends
//
//   - [NullCache]: stores nothing (--no-cache)
//   - [FileCache]: one file per entry under [DefaultDir], for local use
//   - [RedisCache]: a shared redis, for teams and CI runners
//
// [ScopedCache] wraps any backend with a key prefix and reports hits and
// misses to [observability.Cache].
package cache
