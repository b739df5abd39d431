package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mcncl/beangen/internal/config"
	"github.com/mcncl/beangen/internal/errors"
	"github.com/mcncl/beangen/internal/models"
)

// GeneratedFile is the rendered source of one class.
type GeneratedFile struct {
	ClassName string
	FileName  string // "<ClassName><ext>", relative to the output directory
	Content   string
}

// Generator renders Kotlin Realm classes from analysis results
type Generator struct {
	config *config.Config
}

// NewGenerator creates a new Generator instance. A nil config uses the defaults.
func NewGenerator(cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Generator{config: cfg}
}

// GenerateFiles renders every class of the result, in the order the
// analyzer found them.
func (g *Generator) GenerateFiles(result models.AnalysisResult) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(result.Classes))
	for _, class := range result.Classes {
		if strings.TrimSpace(class.Name) == "" {
			return nil, errors.NewGenerateError("class without a name", nil)
		}
		files = append(files, GeneratedFile{
			ClassName: class.Name,
			FileName:  class.Name + g.config.Extension,
			Content:   g.GenerateClass(class),
		})
	}
	return files, nil
}

// GenerateClass renders one class: package, imports, header, members, footer.
func (g *Generator) GenerateClass(class models.ClassDef) string {
	var buf bytes.Buffer

	if header := strings.TrimSpace(g.config.Output.FileHeader); header != "" {
		for _, line := range strings.Split(header, "\n") {
			buf.WriteString(strings.TrimRight("// "+line, " ") + "\n")
		}
		buf.WriteString("\n")
	}

	if g.config.Package != "" {
		buf.WriteString(fmt.Sprintf("package %s\n\n", g.config.Package))
	}

	for _, imp := range class.Imports {
		buf.WriteString(imp + "\n")
	}
	if len(class.Imports) > 0 {
		buf.WriteString("\n")
	}

	buf.WriteString(fmt.Sprintf("open class %s : RealmObject() {\n", class.Name))
	for _, member := range class.Members {
		buf.WriteString(g.memberLine(member))
	}
	buf.WriteString("}\n")

	return buf.String()
}

func (g *Generator) memberLine(member models.MemberInfo) string {
	modifier := ""
	if g.config.Visibility != "" {
		modifier = g.config.Visibility + " "
	}
	return fmt.Sprintf("%s%svar %s: %s = %s\n",
		g.config.Indent, modifier, member.Name, member.Type.Name, member.Type.Default)
}
