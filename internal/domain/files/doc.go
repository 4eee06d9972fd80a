// Package files provides the desktop's read-only mock file system.
//
// Paths are slash separated and absolute ("/Users/Durgas/Documents").
// Files carry sample content; opening one produces a window payload with
// the file name, content and detected content type.
package files
