// Package mmap maps snapshot files into memory read-only.
//
//	m, err := mmap.Open("apps/fenix/catalog-3.json.zst")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// Unix platforms use mmap(2) through golang.org/x/sys/unix. Windows uses
// CreateFileMapping/MapViewOfFile.
//
// A Mapping is safe for concurrent reads. Callers must not touch the slice
// returned by Bytes after Close.
package mmap
