// Package hash provides the CRC32-Castagnoli checksum used to verify
// catalog snapshots against their CURRENT pointer.
//
//	checksum := hash.CRC32C(data)
//
// Go's crc32 package uses SSE4.2 or the ARM CRC extension when available.
package hash
