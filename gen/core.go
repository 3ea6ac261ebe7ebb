package gen

import (
	"strings"

	"github.com/dhamidi/dataclass/java"
)

const (
	annotationName  = "DataClass"
	suppressionName = "SuppressGeneration"
	parcelableName  = "Parcelable"

	nullableAnnotation = "androidx.annotation.Nullable"
	nonNullAnnotation  = "androidx.annotation.NonNull"
)

// AnnotationName is the simple name of the annotation marking classes for
// generation.
const AnnotationName = annotationName

// Core drives generation for exactly one class. It is not safe for
// concurrent use; orchestrators processing files in parallel must construct
// one Core per class.
type Core struct {
	file     *java.File
	class    *java.ClassModel
	switches map[string]bool
	options  *Options
	suppress []string
	fields   []java.FieldModel
	builder  BuilderDescriptor
	refs     *Resolver
	enabled  map[Flag]bool
	w        *Writer
}

// NewCore validates the class and prepares a generation run. The switches
// are the run's override list; both "builder" and "--builder" forms are
// accepted, unrecognized switches are ignored.
func NewCore(file *java.File, class *java.ClassModel, switches []string) (*Core, error) {
	set := make(map[string]bool, len(switches))
	for _, s := range switches {
		set[strings.TrimPrefix(s, "--")] = true
	}

	options, err := parseOptions(class.Annotation(annotationName))
	if err != nil {
		return nil, err
	}
	suppress, err := collectSuppressions(class)
	if err != nil {
		return nil, err
	}

	fields := instanceFields(class)
	if err := validate(class, fields); err != nil {
		return nil, err
	}

	return &Core{
		file:     file,
		class:    class,
		switches: set,
		options:  options,
		suppress: suppress,
		fields:   fields,
		builder:  resolveBuilder(file, class),
		refs:     NewResolver(file.Imports, set["no-import-resolution"]),
		enabled:  make(map[Flag]bool),
		w:        NewWriter(),
	}, nil
}

// instanceFields collects the class's instance fields in declaration order.
func instanceFields(class *java.ClassModel) []java.FieldModel {
	fields := make([]java.FieldModel, 0, len(class.Fields))
	for _, f := range class.Fields {
		if f.IsStatic {
			continue
		}
		f.Ordinal = len(fields)
		fields = append(fields, f)
	}
	return fields
}

// collectSuppressions reads @SuppressGeneration off the class and off a
// user-written Builder nested type, if any.
func collectSuppressions(class *java.ClassModel) ([]string, error) {
	names, err := parseSuppressions(class.Annotation(suppressionName))
	if err != nil {
		return nil, err
	}
	if nested := class.NestedType(builderName); nested != nil {
		more, err := parseSuppressions(nested.Annotation(suppressionName))
		if err != nil {
			return nil, err
		}
		names = append(names, more...)
	}
	return names, nil
}

// Builder returns the resolved builder descriptor.
func (c *Core) Builder() BuilderDescriptor { return c.builder }

// Enabled resolves whether a feature is generated, applying the precedence
// chain: explicit disable, explicit enable, annotation configuration, the
// global all switch, hidden status, then the flag's structural default.
// Results are memoized for the run.
func (c *Core) Enabled(flag Flag) bool {
	if v, ok := c.enabled[flag]; ok {
		return v
	}
	v := c.resolveEnabled(flag)
	c.enabled[flag] = v
	return v
}

func (c *Core) resolveEnabled(flag Flag) bool {
	switch {
	case c.switches["no-"+flag.Switch()]:
		return false
	case c.switches[flag.Switch()]:
		return true
	}
	if v := c.options.lookup(flag); v != nil {
		return *v
	}
	if c.switches["all"] {
		return true
	}
	if c.Hidden(flag) {
		return true
	}
	return c.structuralDefault(flag)
}

func (c *Core) structuralDefault(flag Flag) bool {
	switch flag {
	case FlagConstructor:
		return !c.Enabled(FlagBuilder)
	case FlagBuilder:
		return c.switches["protected-setters"] || c.anyFieldHasDefault() || defaultEnabled[FlagBuilder]
	case FlagSetters:
		return !c.Enabled(FlagConstructor) && !c.Enabled(FlagBuilder) && c.anyNonFinalField()
	case FlagParcelable:
		return c.class.Implements(parcelableName)
	case FlagDescribeContents:
		return c.Enabled(FlagParcelable)
	case FlagImplicitNullable:
		return c.anyNullableField() && !c.anyNonNullField()
	}
	return defaultEnabled[flag]
}

// Hidden reports whether a feature should be generated with non-public
// visibility.
func (c *Core) Hidden(flag Flag) bool {
	builderHidden := c.switches["hidden-"+FlagBuilder.Switch()]
	return hiddenStatus(c.switches, flag, builderHidden)
}

// Suppressed reports whether a member must not be generated, either because
// the class lists it in @SuppressGeneration or because the class already
// declares a method with that exact signature. User-written code wins.
func (c *Core) Suppressed(name string, paramTypes ...string) bool {
	for _, s := range c.suppress {
		if s == name {
			return true
		}
	}
	return c.class.HasMethod(name, paramTypes...)
}

func (c *Core) anyFieldHasDefault() bool {
	for _, f := range c.fields {
		if f.HasDefault {
			return true
		}
	}
	return false
}

func (c *Core) anyNonFinalField() bool {
	for _, f := range c.fields {
		if !f.IsFinal {
			return true
		}
	}
	return false
}

func (c *Core) anyNullableField() bool {
	for _, f := range c.fields {
		if f.IsNullable() {
			return true
		}
	}
	return false
}

func (c *Core) anyNonNullField() bool {
	for _, f := range c.fields {
		if f.IsNonNull() {
			return true
		}
	}
	return false
}

// Generate emits every enabled feature and returns the buffer.
func (c *Core) Generate() string {
	if c.Enabled(FlagConstructor) {
		c.emitConstructor()
	}
	if c.Enabled(FlagBuilder) {
		c.emitBuilder()
	}
	if c.Enabled(FlagBuildUpon) && c.Enabled(FlagBuilder) {
		c.emitBuildUpon()
	}
	if c.Enabled(FlagGetters) {
		c.emitGetters()
	}
	if c.Enabled(FlagSetters) {
		c.emitSetters()
	}
	if c.Enabled(FlagEqualsHashCode) {
		c.emitEqualsHashCode()
	}
	if c.Enabled(FlagToString) {
		c.emitToString()
	}
	if c.Enabled(FlagParcelable) {
		c.emitParcelable()
	}
	out := strings.TrimRight(c.w.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}
