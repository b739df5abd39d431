package typemap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcncl/beangen/internal/models"
)

func TestPrimitive(t *testing.T) {
	tests := []struct {
		name        string
		value       models.JSONValue
		wantKind    models.Kind
		wantType    string
		wantDefault string
	}{
		{"string", "Alice", models.String, "String", `""`},
		{"empty string", "", models.String, "String", `""`},
		{"integer", json.Number("30"), models.Int, "Int", "0"},
		{"negative integer", json.Number("-7"), models.Int, "Int", "0"},
		{"large integer stays Int", json.Number("9999999999"), models.Int, "Int", "0"},
		{"float", json.Number("9.5"), models.Float, "Double", "0.0"},
		{"float with zero fraction", json.Number("1.0"), models.Float, "Double", "0.0"},
		{"exponent", json.Number("1e3"), models.Float, "Double", "0.0"},
		{"true", true, models.Bool, "Boolean", "false"},
		{"false", false, models.Bool, "Boolean", "false"},
		{"null", nil, models.Any, "Any?", "null"},
		{"unknown", struct{}{}, models.Any, "Any?", "null"},
	}

	var m Mapper
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Primitive(tt.value)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantType, got.Name)
			assert.Equal(t, tt.wantDefault, got.Default)
			assert.Empty(t, got.Imports)
		})
	}
}

func TestPrimitive_DetectLong(t *testing.T) {
	m := Mapper{DetectLong: true}

	assert.Equal(t, "Int", m.Primitive(json.Number("2147483647")).Name)
	assert.Equal(t, "Int", m.Primitive(json.Number("-2147483648")).Name)

	long := m.Primitive(json.Number("2147483648"))
	assert.Equal(t, models.Long, long.Kind)
	assert.Equal(t, "Long", long.Name)
	assert.Equal(t, "0L", long.Default)

	assert.Equal(t, "Long", m.Primitive(json.Number("-9999999999")).Name)
	assert.Equal(t, "Long", m.Primitive(json.Number("99999999999999999999")).Name, "beyond int64")
	assert.Equal(t, "Double", m.Primitive(json.Number("2147483648.5")).Name)
}

func TestClass(t *testing.T) {
	got := Class("Address")
	assert.Equal(t, models.TypeInfo{
		Kind:      models.Class,
		Name:      "Address",
		Default:   "Address()",
		ClassName: "Address",
	}, got)
}

func TestList(t *testing.T) {
	empty := List(nil)
	assert.Equal(t, "List<Any>", empty.Name)
	assert.Equal(t, "RealmList()", empty.Default)
	assert.Equal(t, []string{RealmListImport}, empty.Imports)
	assert.Nil(t, empty.Element)

	elem := Mapper{}.Primitive("x")
	strings := List(&elem)
	assert.Equal(t, "RealmList<String>", strings.Name)
	assert.Equal(t, "RealmList()", strings.Default)
	assert.Equal(t, []string{RealmListImport}, strings.Imports)
	assert.Equal(t, "String", strings.Element.Name)

	nested := List(&strings)
	assert.Equal(t, "RealmList<RealmList<String>>", nested.Name)
	assert.Equal(t, []string{RealmListImport}, nested.Imports, "list import is not repeated")

	dated := Override("Date", "Date()", "import java.util.Date")
	dates := List(&dated)
	assert.Equal(t, "RealmList<Date>", dates.Name)
	assert.Equal(t, []string{"import java.util.Date", RealmListImport}, dates.Imports)
}

func TestAny(t *testing.T) {
	assert.Equal(t, models.TypeInfo{Kind: models.Any, Name: "Any?", Default: "null"}, Any())
}

func TestOverride(t *testing.T) {
	assert.Empty(t, Override("Long", "0L", "").Imports)
	assert.Equal(t, []string{"import java.util.Date"}, Override("Date", "Date()", "import java.util.Date").Imports)
}

func TestMergeImports(t *testing.T) {
	got := MergeImports(
		[]string{RealmObjectImport, "", RealmListImport},
		[]string{RealmListImport, "import java.util.Date", "  ", RealmObjectImport},
	)
	assert.Equal(t, []string{RealmObjectImport, RealmListImport, "import java.util.Date"}, got)

	assert.Empty(t, MergeImports(nil, nil))
}
