package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mozilla/glean-dictionary/codec"
	"github.com/mozilla/glean-dictionary/model"
)

// Snapshot is one persisted version of an application's items.
type Snapshot struct {
	App       string           `json:"app"`
	Version   uint64           `json:"version"`
	CreatedAt time.Time        `json:"created_at"`
	Items     model.Collection `json:"items"`
}

// Encode serializes s as JSON and compresses it.
func Encode(s *Snapshot, c codec.Compression) ([]byte, error) {
	data, err := codec.Default.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return codec.Compress(data, c)
}

// Decode reverses Encode.
func Decode(data []byte, c codec.Compression) (*Snapshot, error) {
	raw, err := codec.Decompress(data, c)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var s Snapshot
	if err := codec.Default.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// SnapshotName returns the blob name of version v of app whose encoded
// bytes have CRC32C sum. Writers racing on one version get distinct blobs.
func SnapshotName(app string, v uint64, sum uint32, c codec.Compression) string {
	return fmt.Sprintf("%s/catalog-%d-%08x.%s%s", appDir(app), v, sum, codec.Default.Name(), c.Extension())
}

// CurrentName returns the blob name of app's pointer.
func CurrentName(app string) string {
	return appDir(app) + "/CURRENT"
}

func appDir(app string) string {
	return appsPrefix + app
}

const appsPrefix = "apps/"

// Pointer is the parsed content of a CURRENT blob.
type Pointer struct {
	Path     string
	Checksum uint32
	// HasChecksum is false for pointers written by hand without one.
	HasChecksum bool
}

// String renders the pointer as stored.
func (p Pointer) String() string {
	if !p.HasChecksum {
		return p.Path + "\n"
	}
	return fmt.Sprintf("%s %08x\n", p.Path, p.Checksum)
}

// Version extracts the snapshot version from the pointer path.
func (p Pointer) Version() (uint64, bool) {
	base := p.Path[strings.LastIndexByte(p.Path, '/')+1:]
	rest, ok := strings.CutPrefix(base, "catalog-")
	if !ok {
		return 0, false
	}
	num, _, _ := strings.Cut(rest, ".")
	num, _, _ = strings.Cut(num, "-")
	v, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParsePointer parses "<path> [<crc32c hex>]".
func ParsePointer(data []byte) (Pointer, error) {
	fields := strings.Fields(string(data))
	switch len(fields) {
	case 1:
		return Pointer{Path: fields[0]}, nil
	case 2:
		sum, err := strconv.ParseUint(fields[1], 16, 32)
		if err != nil {
			return Pointer{}, fmt.Errorf("invalid pointer checksum %q: %w", fields[1], err)
		}
		return Pointer{Path: fields[0], Checksum: uint32(sum), HasChecksum: true}, nil
	default:
		return Pointer{}, fmt.Errorf("invalid pointer %q", strings.TrimSpace(string(data)))
	}
}
