package gen

import (
	"strings"

	"github.com/dhamidi/dataclass/java"
)

const (
	builderName     = "Builder"
	baseBuilderName = "BuilderBase"
)

// BuilderDescriptor names the builder type generation targets. Base marks
// the case where the class (or file) already declares a type named Builder:
// generation then produces a base class for that declaration to extend.
// Impl is the type constructed by builder() and buildUpon(); in base mode it
// is the user's concrete Builder, never the abstract base.
type BuilderDescriptor struct {
	Name string
	Type string
	Impl string
	Base bool
}

// resolveBuilder derives the builder's name and parameterized type text.
// An explicit static builder() factory wins and its return type is taken
// verbatim, since it is assumed to already be written correctly.
func resolveBuilder(file *java.File, class *java.ClassModel) BuilderDescriptor {
	if m := class.StaticMethod("builder"); m != nil && m.ReturnType != "" {
		name := m.ReturnType
		if i := strings.Index(name, "<"); i >= 0 {
			name = name[:i]
		}
		return BuilderDescriptor{Name: name, Type: m.ReturnType, Impl: m.ReturnType}
	}
	if decl := declaredBuilder(file, class); decl != nil {
		return BuilderDescriptor{
			Name: baseBuilderName,
			Type: baseBuilderName + typeParameterList(decl.TypeParameters),
			Impl: builderName + typeParameterList(decl.TypeParameters),
			Base: true,
		}
	}
	builderType := builderName + typeParameterList(class.TypeParameters)
	return BuilderDescriptor{
		Name: builderName,
		Type: builderType,
		Impl: builderType,
	}
}

// declaredBuilder finds a user-written type named Builder, nested in the
// class or declared at the top level of the file.
func declaredBuilder(file *java.File, class *java.ClassModel) *java.ClassModel {
	if nested := class.NestedType(builderName); nested != nil {
		return nested
	}
	if file != nil {
		for _, c := range file.Classes {
			if c != class && c.Name == builderName {
				return c
			}
		}
	}
	return nil
}

func typeParameterList(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}
