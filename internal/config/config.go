package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/beangen/internal/errors"
)

// Defaults used when neither the command line nor a config file says otherwise.
const (
	DefaultPackage       = "com.example"
	DefaultOutputDir     = "model"
	DefaultFileExtension = ".kt"
	DefaultIndent        = "    "
	DefaultStdinRootName = "Root"
)

// Class naming styles.
const (
	ClassStyleCapitalize = "capitalize"  // "userName" -> "Username"
	ClassStyleUpperFirst = "upper_first" // "userName" -> "UserName"
	ClassStylePascal     = "pascal"      // "user_name" -> "UserName"
)

// Member naming styles.
const (
	MemberStyleVerbatim = "verbatim"
	MemberStyleCamel    = "camel"
)

// Config represents the complete configuration for a generation run.
type Config struct {
	Package    string           `yaml:"package"`
	RootName   string           `yaml:"root_name"`
	Visibility string           `yaml:"visibility"`
	OutputDir  string           `yaml:"output_dir"`
	Extension  string           `yaml:"extension"`
	Indent     string           `yaml:"indent"`
	Naming     NamingConfig     `yaml:"naming"`
	Types      TypesConfig      `yaml:"types"`
	Arrays     ArraysConfig     `yaml:"arrays"`
	Formatting FormattingConfig `yaml:"formatting"`
	Output     OutputConfig     `yaml:"output"`
	Dev        DevConfig        `yaml:"dev"`
}

// NamingConfig controls class and member naming
type NamingConfig struct {
	ClassStyle       string            `yaml:"class_style"`
	MemberStyle      string            `yaml:"member_style"`
	ClassMappings    map[string]string `yaml:"class_mappings"`
	UniqueClassNames bool              `yaml:"unique_class_names"`
}

// TypesConfig controls type inference and mapping
type TypesConfig struct {
	DetectLong bool          `yaml:"detect_long"`
	Mappings   []TypeMapping `yaml:"mappings"`
}

// TypeMapping overrides the inferred type of every member whose JSON key
// matches Pattern.
type TypeMapping struct {
	Pattern string `yaml:"pattern"`
	Type    string `yaml:"type"`
	Default string `yaml:"default"`
	Import  string `yaml:"import,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// ArraysConfig controls array handling
type ArraysConfig struct {
	SingularizeNames bool `yaml:"singularize_names"`
}

// FormattingConfig controls post-processing of generated files
type FormattingConfig struct {
	SortImports bool `yaml:"sort_imports"`
}

// OutputConfig controls output generation options
type OutputConfig struct {
	FileHeader string `yaml:"file_header"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Package:   DefaultPackage,
		OutputDir: DefaultOutputDir,
		Extension: DefaultFileExtension,
		Indent:    DefaultIndent,
		Naming: NamingConfig{
			ClassStyle:    ClassStyleCapitalize,
			MemberStyle:   MemberStyleVerbatim,
			ClassMappings: make(map[string]string),
		},
		Types: TypesConfig{
			Mappings: []TypeMapping{},
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and its parents.
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".beangen.yml", ".beangen.yaml", "beangen.yml", "beangen.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			return ""
		}
		dir = parentDir
	}
}

// Validate checks enumerated settings and compiles the type mapping patterns.
func (c *Config) Validate() error {
	switch c.Naming.ClassStyle {
	case ClassStyleCapitalize, ClassStyleUpperFirst, ClassStylePascal:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown class style '%s'", c.Naming.ClassStyle), errors.ErrInvalidConfig)
	}
	switch c.Naming.MemberStyle {
	case MemberStyleVerbatim, MemberStyleCamel:
	default:
		return errors.NewConfigError(fmt.Sprintf("unknown member style '%s'", c.Naming.MemberStyle), errors.ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return errors.NewConfigError("output directory must not be empty", errors.ErrInvalidConfig)
	}
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	for i := range c.Types.Mappings {
		mapping := &c.Types.Mappings[i]
		if mapping.Type == "" || mapping.Default == "" {
			return errors.NewConfigError(
				fmt.Sprintf("type mapping '%s' needs both a type and a default", mapping.Pattern),
				errors.ErrInvalidConfig,
			)
		}
		regex, err := regexp.Compile(mapping.Pattern)
		if err != nil {
			return errors.NewConfigError(fmt.Sprintf("invalid type mapping pattern '%s'", mapping.Pattern), err)
		}
		mapping.regex = regex
	}
	return nil
}

// MatchesField checks if this type mapping matches the given JSON key
func (tm *TypeMapping) MatchesField(key string) bool {
	if tm.regex == nil {
		regex, err := regexp.Compile(tm.Pattern)
		if err != nil {
			return false
		}
		tm.regex = regex
	}
	return tm.regex.MatchString(key)
}

// FindTypeMapping finds the first type mapping that matches the JSON key
func (c *Config) FindTypeMapping(key string) (TypeMapping, bool) {
	for i := range c.Types.Mappings {
		if c.Types.Mappings[i].MatchesField(key) {
			return c.Types.Mappings[i], true
		}
	}
	return TypeMapping{}, false
}

// ClassName turns a JSON key or a user supplied bean name into a class name.
func (c *Config) ClassName(key string) string {
	if mapped, ok := c.Naming.ClassMappings[key]; ok {
		return mapped
	}

	var name string
	switch c.Naming.ClassStyle {
	case ClassStylePascal:
		name = strcase.ToCamel(key)
	case ClassStyleUpperFirst:
		name = upperFirst(key)
	default:
		name = Capitalize(key)
	}
	if name == "" {
		return "Bean"
	}
	return name
}

// MemberName returns the member name for a JSON key.
func (c *Config) MemberName(key string) string {
	if c.Naming.MemberStyle == MemberStyleCamel {
		if name := strcase.ToLowerCamel(key); name != "" {
			return name
		}
	}
	return key
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// CLIOverrides are the values taken from the command line. Empty strings
// mean "not given".
type CLIOverrides struct {
	Package    string
	RootName   string
	Visibility string
	OutputDir  string
	Debug      bool
}

// ApplyCLI layers command line values over the config. Non-empty values win.
func (c *Config) ApplyCLI(o CLIOverrides) {
	if o.Package != "" {
		c.Package = o.Package
	}
	if o.RootName != "" {
		c.RootName = o.RootName
	}
	if o.Visibility != "" {
		c.Visibility = o.Visibility
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.Debug {
		c.Dev.Debug = true
	}
}

// LoadConfigWithCLI loads the given (or discovered) config file and applies
// the command line values on top.
func LoadConfigWithCLI(configPath string, o CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg.ApplyCLI(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
