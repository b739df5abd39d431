package models

// Kind classifies a sample value for type mapping.
type Kind int

const (
	Any Kind = iota
	String
	Int
	Long
	Float
	Bool
	Class
	List
)

// String returns a human readable name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "integer"
	case Long:
		return "long integer"
	case Float:
		return "float"
	case Bool:
		return "boolean"
	case Class:
		return "object"
	case List:
		return "array"
	default:
		return "any"
	}
}

// TypeInfo describes the target-language type of one member.
type TypeInfo struct {
	Kind    Kind
	Name    string   // e.g. "String", "RealmList<Tag>"
	Default string   // default-value literal, e.g. `""`, "0", "Address()"
	Imports []string // import lines required by the type, in first-seen order

	ClassName string    // set when Kind == Class
	Element   *TypeInfo // set when Kind == List and the sample array was non-empty
}

// MemberInfo is one generated member, corresponding to one JSON key.
type MemberInfo struct {
	Name string
	Type TypeInfo
}

// ClassDef is one generated class, corresponding to one JSON object shape.
type ClassDef struct {
	Name    string
	Members []MemberInfo
	Imports []string // deduplicated, first-seen order
	IsRoot  bool
}

// AnalysisResult holds every class discovered in a sample, children before
// the parents that reference them.
type AnalysisResult struct {
	Classes []ClassDef
}
