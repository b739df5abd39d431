// Package typemap maps JSON sample values to Kotlin types backed by Realm.
package typemap

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/beangen/internal/models"
)

// Import lines used by generated classes.
const (
	RealmObjectImport = "import io.realm.RealmObject"
	RealmListImport   = "import io.realm.RealmList"
)

// Kotlin type names and default literals.
const (
	StringType  = "String"
	IntType     = "Int"
	LongType    = "Long"
	DoubleType  = "Double"
	BooleanType = "Boolean"
	AnyType     = "Any?"
	AnyListType = "List<Any>"

	EmptyListLiteral = "RealmList()"
)

// Mapper maps sample values to types.
type Mapper struct {
	// DetectLong maps integers outside the 32-bit range to Long.
	DetectLong bool
}

// Primitive maps a non-container value. Anything it does not recognize,
// including null, becomes AnyType.
func (m Mapper) Primitive(value models.JSONValue) models.TypeInfo {
	switch v := value.(type) {
	case string:
		return models.TypeInfo{Kind: models.String, Name: StringType, Default: `""`}
	case bool:
		return models.TypeInfo{Kind: models.Bool, Name: BooleanType, Default: "false"}
	case json.Number:
		return m.number(string(v))
	default:
		return Any()
	}
}

func (m Mapper) number(raw string) models.TypeInfo {
	if strings.ContainsAny(raw, ".eE") {
		return models.TypeInfo{Kind: models.Float, Name: DoubleType, Default: "0.0"}
	}
	if m.DetectLong {
		if n, err := strconv.ParseInt(raw, 10, 64); err != nil || n > math.MaxInt32 || n < math.MinInt32 {
			return models.TypeInfo{Kind: models.Long, Name: LongType, Default: "0L"}
		}
	}
	return models.TypeInfo{Kind: models.Int, Name: IntType, Default: "0"}
}

// Any is the fallback for null and unrecognized values.
func Any() models.TypeInfo {
	return models.TypeInfo{Kind: models.Any, Name: AnyType, Default: "null"}
}

// Class references a generated class by name.
func Class(name string) models.TypeInfo {
	return models.TypeInfo{
		Kind:      models.Class,
		Name:      name,
		Default:   name + "()",
		ClassName: name,
	}
}

// List wraps an element type. A nil element means the sample array was empty.
func List(element *models.TypeInfo) models.TypeInfo {
	if element == nil {
		return models.TypeInfo{
			Kind:    models.List,
			Name:    AnyListType,
			Default: EmptyListLiteral,
			Imports: []string{RealmListImport},
		}
	}

	elem := *element
	return models.TypeInfo{
		Kind:    models.List,
		Name:    "RealmList<" + elem.Name + ">",
		Default: EmptyListLiteral,
		Imports: MergeImports(elem.Imports, []string{RealmListImport}),
		Element: &elem,
	}
}

// Override builds a type from a user supplied mapping.
func Override(typeName, defaultValue, importLine string) models.TypeInfo {
	info := models.TypeInfo{Kind: models.Any, Name: typeName, Default: defaultValue}
	if importLine != "" {
		info.Imports = []string{importLine}
	}
	return info
}

// MergeImports appends the lines of extra that are not already in base,
// keeping first-seen order. Blank lines are dropped.
func MergeImports(base, extra []string) []string {
	merged := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, line := range list {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			merged = append(merged, line)
		}
	}
	return merged
}
