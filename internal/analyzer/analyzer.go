package analyzer

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/mcncl/beangen/internal/config"
	"github.com/mcncl/beangen/internal/models"
	"github.com/mcncl/beangen/internal/typemap"
)

// Analyzer walks a sample document and collects one class per object shape.
// It never touches the filesystem.
type Analyzer struct {
	config *config.Config
	mapper typemap.Mapper
	logger *slog.Logger

	// classes in discovery order, children before parents
	classes []models.ClassDef
	// index maps a class name to its position in classes
	index map[string]int
	// rootName is held back from nested classes when names must be unique
	rootName string
}

// NewAnalyzer creates an Analyzer with the default configuration and no diagnostics output.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig(), nil)
}

// NewAnalyzerWithConfig creates an Analyzer with custom configuration.
// Diagnostics are written to logger; a nil logger discards them.
func NewAnalyzerWithConfig(cfg *config.Config, logger *slog.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{
		config: cfg,
		mapper: typemap.Mapper{DetectLong: cfg.Types.DetectLong},
		logger: logger,
	}
}

// Analyze returns the classes described by the sample. An empty root array
// or a primitive root produces a diagnostic and no classes.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation, rootName string) models.AnalysisResult {
	a.classes = make([]models.ClassDef, 0)
	a.index = make(map[string]int)

	if rootName == "" {
		rootName = config.DefaultStdinRootName
	}
	name := a.config.ClassName(rootName)
	a.rootName = ""
	if a.config.Naming.UniqueClassNames {
		a.rootName = name
	}
	a.visit(name, ir.Root)

	return models.AnalysisResult{Classes: a.classes}
}

// visit handles the root value. Arrays hoist their first element under
// the same name.
func (a *Analyzer) visit(name string, value models.JSONValue) {
	switch v := value.(type) {
	case *models.JSONObject:
		a.visitObject(name, v, true)
	case models.JSONArray:
		if len(v) == 0 {
			a.logger.Warn("This looks like an empty array", "bean", name)
			return
		}
		a.visit(name, v[0])
	default:
		a.logger.Warn("This looks like a plain type", "bean", name, "kind", a.mapper.Primitive(v).Kind.String())
	}
}

// visitObject records a class for obj and returns the name it was stored under.
func (a *Analyzer) visitObject(name string, obj *models.JSONObject, isRoot bool) string {
	class := models.ClassDef{
		Name:    name,
		Members: make([]models.MemberInfo, 0, obj.Len()),
		Imports: []string{typemap.RealmObjectImport},
		IsRoot:  isRoot,
	}

	for _, key := range obj.Keys {
		typeInfo := a.mapType(key, obj.Values[key])
		class.Members = append(class.Members, models.MemberInfo{
			Name: a.config.MemberName(key),
			Type: typeInfo,
		})
		class.Imports = typemap.MergeImports(class.Imports, typeInfo.Imports)
	}

	return a.addClass(class)
}

// mapType maps the value of key. Nested objects are recorded as classes
// before the type referencing them is returned.
func (a *Analyzer) mapType(key string, value models.JSONValue) models.TypeInfo {
	if mapping, found := a.config.FindTypeMapping(key); found {
		return typemap.Override(mapping.Type, mapping.Default, mapping.Import)
	}

	switch v := value.(type) {
	case *models.JSONObject:
		return typemap.Class(a.visitObject(a.config.ClassName(key), v, false))
	case models.JSONArray:
		if len(v) == 0 {
			return typemap.List(nil)
		}
		element := a.mapType(a.elementKey(key), v[0])
		return typemap.List(&element)
	default:
		return a.mapper.Primitive(v)
	}
}

func (a *Analyzer) elementKey(key string) string {
	if a.config.Arrays.SingularizeNames {
		return singularize(key)
	}
	return key
}

// addClass stores class, resolving name clashes with earlier classes.
// An identical shape is stored once. A different shape under the same name
// either gets a numbered name or replaces the earlier one. With unique
// names, nested classes never take the root bean's name.
func (a *Analyzer) addClass(class models.ClassDef) string {
	base := class.Name
	for n := 0; ; n++ {
		candidate := base
		if n > 0 {
			candidate = fmt.Sprintf("%s%d", base, n)
		}
		if !class.IsRoot && candidate == a.rootName {
			continue
		}

		idx, exists := a.index[candidate]
		if !exists {
			class.Name = candidate
			a.store(class)
			return candidate
		}

		existing := &a.classes[idx]
		if sameShape(*existing, class) {
			existing.IsRoot = existing.IsRoot || class.IsRoot
			return candidate
		}

		if !a.config.Naming.UniqueClassNames {
			a.logger.Warn("Bean generated twice with different members, keeping the last one", "bean", candidate)
			a.remove(idx)
			class.Name = candidate
			a.store(class)
			return candidate
		}
	}
}

func (a *Analyzer) store(class models.ClassDef) {
	a.index[class.Name] = len(a.classes)
	a.classes = append(a.classes, class)
	a.logger.Debug("analyzed bean", "bean", class.Name, "members", len(class.Members))
}

func (a *Analyzer) remove(idx int) {
	a.classes = append(a.classes[:idx], a.classes[idx+1:]...)
	a.index = make(map[string]int, len(a.classes))
	for i, c := range a.classes {
		a.index[c.Name] = i
	}
}

// sameShape reports whether two classes have the same members and imports.
func sameShape(c1, c2 models.ClassDef) bool {
	return reflect.DeepEqual(c1.Members, c2.Members) &&
		reflect.DeepEqual(c1.Imports, c2.Imports)
}
