package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/beangen/internal/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "com.example", cfg.Package)
	assert.Equal(t, "", cfg.RootName)
	assert.Equal(t, "", cfg.Visibility)
	assert.Equal(t, "model", cfg.OutputDir)
	assert.Equal(t, ".kt", cfg.Extension)
	assert.Equal(t, "    ", cfg.Indent)
	assert.Equal(t, ClassStyleCapitalize, cfg.Naming.ClassStyle)
	assert.Equal(t, MemberStyleVerbatim, cfg.Naming.MemberStyle)
	assert.False(t, cfg.Types.DetectLong)
	assert.False(t, cfg.Arrays.SingularizeNames)
	require.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
package: "org.acme.model"
root_name: "ApiResponse"
visibility: "private"
output_dir: "generated"
extension: "kt"
naming:
  class_style: pascal
  member_style: camel
  class_mappings:
    addr: "PostalAddress"
  unique_class_names: true
types:
  detect_long: true
  mappings:
    - pattern: ".*_at$"
      type: "Date"
      default: "Date()"
      import: "import java.util.Date"
arrays:
  singularize_names: true
formatting:
  sort_imports: true
output:
  file_header: "Generated, do not edit."
`
	path := writeConfig(t, t.TempDir(), "beangen.yml", yamlContent)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "org.acme.model", cfg.Package)
	assert.Equal(t, "ApiResponse", cfg.RootName)
	assert.Equal(t, "private", cfg.Visibility)
	assert.Equal(t, "generated", cfg.OutputDir)
	assert.Equal(t, ".kt", cfg.Extension, "extension gets a leading dot")
	assert.Equal(t, "    ", cfg.Indent, "unset values keep their defaults")
	assert.Equal(t, ClassStylePascal, cfg.Naming.ClassStyle)
	assert.Equal(t, MemberStyleCamel, cfg.Naming.MemberStyle)
	assert.Equal(t, "PostalAddress", cfg.Naming.ClassMappings["addr"])
	assert.True(t, cfg.Naming.UniqueClassNames)
	assert.True(t, cfg.Types.DetectLong)
	assert.True(t, cfg.Arrays.SingularizeNames)
	assert.True(t, cfg.Formatting.SortImports)
	assert.Equal(t, "Generated, do not edit.", cfg.Output.FileHeader)

	mapping, ok := cfg.FindTypeMapping("created_at")
	require.True(t, ok)
	assert.Equal(t, "Date", mapping.Type)
	assert.Equal(t, "Date()", mapping.Default)
	assert.Equal(t, "import java.util.Date", mapping.Import)

	_, ok = cfg.FindTypeMapping("created")
	assert.False(t, ok)
}

func TestConfig_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "package: [unclosed"},
		{"bad class style", "naming:\n  class_style: shouting\n"},
		{"bad member style", "naming:\n  member_style: kebab\n"},
		{"bad pattern", "types:\n  mappings:\n    - pattern: \"([\"\n      type: X\n      default: X()\n"},
		{"mapping without default", "types:\n  mappings:\n    - pattern: id\n      type: Long\n"},
		{"empty output dir", "output_dir: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, "c.yml", tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeConfig})
		})
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeConfig})
}

func TestConfig_ClassName(t *testing.T) {
	tests := []struct {
		style string
		key   string
		want  string
	}{
		{ClassStyleCapitalize, "address", "Address"},
		{ClassStyleCapitalize, "userName", "Username"},
		{ClassStyleCapitalize, "PERSON", "Person"},
		{ClassStyleCapitalize, "état", "État"},
		{ClassStyleUpperFirst, "userName", "UserName"},
		{ClassStylePascal, "user_name", "UserName"},
		{ClassStylePascal, "shipping-address", "ShippingAddress"},
		{ClassStyleCapitalize, "", "Bean"},
	}
	for _, tt := range tests {
		t.Run(tt.style+"/"+tt.key, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Naming.ClassStyle = tt.style
			assert.Equal(t, tt.want, cfg.ClassName(tt.key))
		})
	}

	cfg := NewConfig()
	cfg.Naming.ClassMappings["addr"] = "PostalAddress"
	assert.Equal(t, "PostalAddress", cfg.ClassName("addr"))
}

func TestConfig_MemberName(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "user_name", cfg.MemberName("user_name"))

	cfg.Naming.MemberStyle = MemberStyleCamel
	assert.Equal(t, "userName", cfg.MemberName("user_name"))
	assert.Equal(t, "id", cfg.MemberName("ID"))
}

func TestFindConfigFrom(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, "", findConfigFrom(nested))

	path := writeConfig(t, root, ".beangen.yml", "package: x\n")
	assert.Equal(t, path, findConfigFrom(nested))
}

func TestConfig_ApplyCLI(t *testing.T) {
	cfg := NewConfig()
	cfg.Package = "from.file"
	cfg.Visibility = "internal"

	cfg.ApplyCLI(CLIOverrides{Package: "from.cli", RootName: "Person", Debug: true})

	assert.Equal(t, "from.cli", cfg.Package)
	assert.Equal(t, "Person", cfg.RootName)
	assert.Equal(t, "internal", cfg.Visibility, "empty override keeps file value")
	assert.Equal(t, "model", cfg.OutputDir)
	assert.True(t, cfg.Dev.Debug)
}

func TestLoadConfigWithCLI(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "beangen.yml", "package: from.file\nvisibility: private\n")

	cfg, err := LoadConfigWithCLI(path, CLIOverrides{OutputDir: "out"})
	require.NoError(t, err)
	assert.Equal(t, "from.file", cfg.Package)
	assert.Equal(t, "private", cfg.Visibility)
	assert.Equal(t, "out", cfg.OutputDir)

	_, err = LoadConfigWithCLI(filepath.Join(t.TempDir(), "nope.yml"), CLIOverrides{})
	assert.Error(t, err)
}
