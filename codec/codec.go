// Package codec centralizes catalog snapshot encoding.
//
// A snapshot is serialized with a Codec (JSON) and then compressed. The
// compression is recorded in the blob name suffix so persisted snapshots are
// self-describing: changing the default only affects newly written ones.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}
