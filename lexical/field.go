package lexical

import "github.com/mozilla/glean-dictionary/model"

// Kind selects how phrase clauses match a field.
type Kind uint8

const (
	// KindKeyword fields hold short labels. A phrase must equal a whole value.
	KindKeyword Kind = iota
	// KindText fields hold prose. A phrase may appear anywhere in a value.
	KindText
)

// Field describes one indexed attribute of an item.
type Field struct {
	Name   string
	Kind   Kind
	Weight float64
	Values func(*model.Item) []string
}

// Default field names.
const (
	FieldID          = "id"
	FieldType        = "type"
	FieldTags        = "tags"
	FieldOrigin      = "origin"
	FieldDescription = "description"
)

// DefaultFields indexes name (as id), type, tags, origin and description.
func DefaultFields() []Field {
	return []Field{
		{Name: FieldID, Kind: KindKeyword, Weight: 4, Values: one(func(it *model.Item) string { return it.Name })},
		{Name: FieldType, Kind: KindKeyword, Weight: 2, Values: one(func(it *model.Item) string { return it.Type })},
		{Name: FieldTags, Kind: KindKeyword, Weight: 3, Values: func(it *model.Item) []string { return it.Tags }},
		{Name: FieldOrigin, Kind: KindKeyword, Weight: 2, Values: one(func(it *model.Item) string { return it.Origin })},
		{Name: FieldDescription, Kind: KindText, Weight: 1, Values: one(func(it *model.Item) string { return it.Description })},
	}
}

func one(get func(*model.Item) string) func(*model.Item) []string {
	return func(it *model.Item) []string {
		if v := get(it); v != "" {
			return []string{v}
		}
		return nil
	}
}
