package java

import "strings"

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindRecord     ClassKind = "record"
	ClassKindAnnotation ClassKind = "annotation"
)

// File is the structural model of a single compilation unit. It carries
// everything generation needs: the import set, every top-level type, and the
// byte spans of class bodies so callers can splice text back in.
type File struct {
	Package string
	Imports []Import
	Classes []*ClassModel
}

type Import struct {
	Name     string
	Static   bool
	Wildcard bool
}

type ClassModel struct {
	Name           string
	Kind           ClassKind
	TypeParameters []string
	IsFinal        bool
	IsAbstract     bool
	IsStatic       bool
	SuperClass     string
	Interfaces     []string
	Annotations    []AnnotationModel
	Fields         []FieldModel
	Methods        []MethodModel
	Nested         []*ClassModel

	// BodyStart and BodyEnd are the byte offsets of the class body's opening
	// and closing braces in the original source.
	BodyStart uint
	BodyEnd   uint
}

// Annotation returns the annotation with the given simple name, or nil.
func (c *ClassModel) Annotation(name string) *AnnotationModel {
	for i := range c.Annotations {
		if c.Annotations[i].Name == name {
			return &c.Annotations[i]
		}
	}
	return nil
}

// Implements reports whether the class declares the named interface among
// its supertypes, matching either the simple or the qualified form.
func (c *ClassModel) Implements(name string) bool {
	for _, iface := range c.Interfaces {
		if iface == name || simpleTypeName(iface) == name {
			return true
		}
	}
	return false
}

// NestedType returns the nested type declaration with the given name, or nil.
func (c *ClassModel) NestedType(name string) *ClassModel {
	for _, n := range c.Nested {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// StaticMethod returns the first static method with the given name, or nil.
func (c *ClassModel) StaticMethod(name string) *MethodModel {
	for i := range c.Methods {
		if c.Methods[i].IsStatic && c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	return nil
}

// HasMethod reports whether the class declares a method with the given name
// and parameter types. Parameter types are compared by simple name so
// "java.lang.String" and "String" match.
func (c *ClassModel) HasMethod(name string, paramTypes ...string) bool {
	for _, m := range c.Methods {
		if m.Name != name || len(m.Parameters) != len(paramTypes) {
			continue
		}
		match := true
		for i, p := range m.Parameters {
			if simpleTypeName(p) != simpleTypeName(paramTypes[i]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

type FieldModel struct {
	Name        string
	Type        TypeModel
	Ordinal     int
	IsFinal     bool
	IsStatic    bool
	IsTransient bool
	Annotations []string
	HasDefault  bool
}

// HasAnnotation reports whether the field carries an annotation with the
// given simple name.
func (f FieldModel) HasAnnotation(name string) bool {
	for _, a := range f.Annotations {
		if a == name {
			return true
		}
	}
	return false
}

func (f FieldModel) IsNullable() bool {
	return f.HasAnnotation("Nullable")
}

func (f FieldModel) IsNonNull() bool {
	return f.HasAnnotation("NonNull") || f.HasAnnotation("NotNull")
}

type MethodModel struct {
	Name       string
	ReturnType string
	Parameters []string
	IsStatic   bool
}

// TypeModel holds a declared type as written in the source.
type TypeModel struct {
	Text string
}

func (t TypeModel) IsPrimitive() bool {
	switch t.Text {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t TypeModel) String() string { return t.Text }

// AnnotationModel is one annotation use. Values maps argument names to
// parsed literals: bool, string, or []any for array initializers. Arguments
// that are not recognized literals are kept as RawExpr so callers can report
// them. A single unnamed argument is stored under "value".
type AnnotationModel struct {
	Name   string
	Values map[string]any
}

// RawExpr is the source text of an annotation argument that could not be
// interpreted as a literal.
type RawExpr string

func simpleTypeName(t string) string {
	if i := strings.Index(t, "<"); i >= 0 {
		t = t[:i]
	}
	if i := strings.LastIndex(t, "."); i >= 0 {
		t = t[i+1:]
	}
	return t
}
