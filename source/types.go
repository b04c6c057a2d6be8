// Package source provides the byte sources a fastin.Reader pulls from.
//
// A Source exposes two operations:
//   - Fill: the currently buffered, unconsumed bytes, reading more only
//     when nothing is buffered
//   - Consume: mark a prefix of that view as consumed
//
// This is the capability set of a buffered reader. Buffered adapts a
// *bufio.Reader, Chunked serves an in-memory slice in fixed-size views,
// and Open turns a path (or stdin) into a reader with transparent
// gzip/zstd decompression.
package source

import (
	"fmt"
	"strings"
)

// Compression identifies how an input stream is encoded.
type Compression uint8

const (
	CompressionAuto Compression = 0 // Sniff magic bytes
	CompressionNone Compression = 1 // Raw bytes
	CompressionGzip Compression = 2 // RFC 1952
	CompressionZstd Compression = 3 // Zstandard frames
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionAuto:
		return "auto"
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name.
func ParseCompression(s string) (Compression, bool) {
	switch strings.ToLower(s) {
	case "auto", "":
		return CompressionAuto, true
	case "none", "raw":
		return CompressionNone, true
	case "gzip", "gz":
		return CompressionGzip, true
	case "zstd", "zst":
		return CompressionZstd, true
	default:
		return 0, false
	}
}

// Magic prefixes used by CompressionAuto.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)
