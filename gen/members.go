package gen

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/dhamidi/dataclass/java"
)

// visibility picks the emitted access modifier for a feature. Hidden
// features become package-private.
func (c *Core) visibility(flag Flag) string {
	if c.Hidden(flag) {
		return ""
	}
	return "public "
}

// typeAnnotation returns the nullability annotation prefix for a field's
// type, or "" for primitives.
func (c *Core) typeAnnotation(f java.FieldModel) string {
	switch {
	case f.Type.IsPrimitive():
		return ""
	case f.IsNonNull():
		return "@" + c.refs.Resolve(nonNullAnnotation) + " "
	case f.IsNullable() || c.Enabled(FlagImplicitNullable):
		return "@" + c.refs.Resolve(nullableAnnotation) + " "
	}
	return ""
}

func getterName(f java.FieldModel) string {
	if f.Type.Text == "boolean" {
		return "is" + strcase.ToCamel(f.Name)
	}
	return "get" + strcase.ToCamel(f.Name)
}

func setterName(f java.FieldModel) string {
	return "set" + strcase.ToCamel(f.Name)
}

// methodBlock emits a member whose parameter list spans multiple lines,
// attaching the brace opener to the list's closing parenthesis.
func (c *Core) methodBlock(opener string, params func(), body func()) {
	w := c.w
	w.Block(opener, params)
	w.WriteInline(" {")
	w.BlankLine()
	w.PushIndent()
	body()
	w.RemoveTrailingBlankLine()
	w.PopIndent()
	w.WriteLine("}")
	w.BlankLine()
}

func (c *Core) emitConstructor() {
	if c.Suppressed(c.class.Name, fieldTypes(c.fields)...) {
		return
	}
	visibility := c.visibility(FlagConstructor)
	if c.Enabled(FlagBuilder) {
		visibility = "private "
	}
	w := c.w
	c.methodBlock(visibility+c.class.Name+"(", func() {
		EachComma(w, c.fields, func(f java.FieldModel) {
			w.WriteLine(c.typeAnnotation(f) + "final " + f.Type.Text + " " + f.Name + ",")
		})
	}, func() {
		for _, f := range c.fields {
			w.WriteLine("this." + f.Name + " = " + f.Name + ";")
		}
	})
}

func (c *Core) emitGetters() {
	for _, f := range c.fields {
		name := getterName(f)
		if c.Suppressed(name) {
			continue
		}
		c.w.Block(c.visibility(FlagGetters)+c.typeAnnotation(f)+f.Type.Text+" "+name+"()", func() {
			c.w.WriteLine("return " + f.Name + ";")
		})
	}
}

func (c *Core) emitSetters() {
	for _, f := range c.fields {
		if f.IsFinal {
			continue
		}
		name := setterName(f)
		if c.Suppressed(name, f.Type.Text) {
			continue
		}
		header := fmt.Sprintf("%svoid %s(%s%s %s)",
			c.visibility(FlagSetters), name, c.typeAnnotation(f), f.Type.Text, f.Name)
		c.w.Block(header, func() {
			c.w.WriteLine("this." + f.Name + " = " + f.Name + ";")
		})
	}
}

func (c *Core) emitEqualsHashCode() {
	objects := c.refs.Resolve("java.util.Objects")
	w := c.w

	if !c.Suppressed("equals", "Object") {
		w.WriteLine("@Override")
		w.Block(c.visibility(FlagEqualsHashCode)+"boolean equals(Object o)", func() {
			w.Block("if (this == o)", func() {
				w.WriteLine("return true;")
			})
			w.Block("if (o == null || getClass() != o.getClass())", func() {
				w.WriteLine("return false;")
			})
			w.WriteLine(c.class.Name + " that = (" + c.class.Name + ") o;")
			terms := make([]string, 0, len(c.fields))
			for _, f := range c.fields {
				if f.Type.IsPrimitive() {
					terms = append(terms, f.Name+" == that."+f.Name)
				} else {
					terms = append(terms, objects+".equals("+f.Name+", that."+f.Name+")")
				}
			}
			if len(terms) == 0 {
				w.WriteLine("return true;")
				return
			}
			w.WriteLine("return " + strings.Join(terms, "\n&& ") + ";")
		})
	}

	if !c.Suppressed("hashCode") {
		names := fieldNames(c.fields)
		w.WriteLine("@Override")
		w.Block(c.visibility(FlagEqualsHashCode)+"int hashCode()", func() {
			w.WriteLine("return " + objects + ".hash(" + strings.Join(names, ", ") + ");")
		})
	}
}

func (c *Core) emitToString() {
	if c.Suppressed("toString") {
		return
	}
	w := c.w
	w.WriteLine("@Override")
	w.Block(c.visibility(FlagToString)+"String toString()", func() {
		parts := make([]string, 0, len(c.fields))
		for i, f := range c.fields {
			label := f.Name
			if i > 0 {
				label = ", " + label
			}
			parts = append(parts, fmt.Sprintf("%q + %s", label+"=", f.Name))
		}
		if len(parts) == 0 {
			w.WriteLine(fmt.Sprintf("return %q;", c.class.Name+"{}"))
			return
		}
		w.WriteLine(fmt.Sprintf("return %q + %s + \"}\";", c.class.Name+"{", strings.Join(parts, " + ")))
	})
}

func (c *Core) emitBuilder() {
	b := c.builder
	w := c.w
	classType := c.class.Name + typeParameterList(c.class.TypeParameters)

	if !c.Suppressed("builder") {
		w.Block(c.visibility(FlagBuilder)+"static "+b.Type+" builder()", func() {
			w.WriteLine("return new " + b.Impl + "();")
		})
	}

	modifier := "static class "
	if b.Base {
		// the user's Builder extends the generated base
		modifier = "abstract static class "
	}
	setterVisibility := "public "
	if c.switches["protected-setters"] {
		setterVisibility = "protected "
	}

	w.Block(c.visibility(FlagBuilder)+modifier+b.Type+" {", func() {
		for _, f := range c.fields {
			w.WriteLine("private " + f.Type.Text + " " + f.Name + ";")
		}
		w.BlankLine()
		for _, f := range c.fields {
			header := fmt.Sprintf("%s%s %s(%s%s %s)",
				setterVisibility, b.Type, f.Name, c.typeAnnotation(f), f.Type.Text, f.Name)
			w.Block(header, func() {
				w.WriteLine("this." + f.Name + " = " + f.Name + ";")
				w.WriteLine("return this;")
			})
		}
		w.Block("public "+classType+" build()", func() {
			w.Block("return new "+classType+"(", func() {
				EachComma(w, c.fields, func(f java.FieldModel) {
					w.WriteLine(f.Name + ",")
				})
			})
			w.WriteInline(";")
			w.BlankLine()
		})
	})
}

func (c *Core) emitBuildUpon() {
	if c.Suppressed("buildUpon") {
		return
	}
	b := c.builder
	w := c.w
	w.Block(c.visibility(FlagBuildUpon)+b.Type+" buildUpon()", func() {
		w.WriteLine("return new " + b.Impl + "()")
		w.PushIndent()
		w.PushIndent()
		for _, f := range c.fields {
			w.WriteLine("." + f.Name + "(" + f.Name + ")")
		}
		w.WriteInline(";")
		w.BlankLine()
		w.PopIndent()
		w.PopIndent()
	})
}

func (c *Core) emitParcelable() {
	w := c.w
	parcel := c.refs.Resolve("android.os.Parcel")
	parcelable := c.refs.Resolve("android.os.Parcelable")
	name := c.class.Name

	if !c.Suppressed("writeToParcel", "Parcel", "int") {
		w.WriteLine("@Override")
		w.Block("public void writeToParcel("+parcel+" dest, int flags)", func() {
			for _, f := range c.fields {
				if f.IsTransient {
					continue
				}
				w.WriteLine(parcelWrite(f) + ";")
			}
		})
	}

	if c.Enabled(FlagDescribeContents) && !c.Suppressed("describeContents") {
		w.WriteLine("@Override")
		w.Block("public int describeContents()", func() {
			w.WriteLine("return 0;")
		})
	}

	if c.Suppressed("CREATOR") || hasCreatorField(c.class) {
		return
	}
	creatorType := parcelable + ".Creator<" + name + ">"
	w.Block("public static final "+creatorType+" CREATOR = new "+creatorType+"()", func() {
		w.WriteLine("@Override")
		w.Block("public "+name+" createFromParcel("+parcel+" in)", func() {
			w.Block("return new "+name+"(", func() {
				EachComma(w, c.fields, func(f java.FieldModel) {
					w.WriteLine(parcelRead(f) + ",")
				})
			})
			w.WriteInline(";")
			w.BlankLine()
		})
		w.WriteLine("@Override")
		w.Block("public "+name+"[] newArray(int size)", func() {
			w.WriteLine("return new " + name + "[size];")
		})
	})
	w.WriteInline(";")
	w.BlankLine()
	w.BlankLine()
}

func parcelWrite(f java.FieldModel) string {
	switch f.Type.Text {
	case "byte", "short", "int", "char":
		return "dest.writeInt(" + f.Name + ")"
	case "long":
		return "dest.writeLong(" + f.Name + ")"
	case "float":
		return "dest.writeFloat(" + f.Name + ")"
	case "double":
		return "dest.writeDouble(" + f.Name + ")"
	case "boolean":
		return "dest.writeInt(" + f.Name + " ? 1 : 0)"
	case "String":
		return "dest.writeString(" + f.Name + ")"
	}
	return "dest.writeValue(" + f.Name + ")"
}

func parcelRead(f java.FieldModel) string {
	if f.IsTransient {
		return transientDefault(f)
	}
	switch f.Type.Text {
	case "byte", "short", "char":
		return "(" + f.Type.Text + ") in.readInt()"
	case "int":
		return "in.readInt()"
	case "long":
		return "in.readLong()"
	case "float":
		return "in.readFloat()"
	case "double":
		return "in.readDouble()"
	case "boolean":
		return "in.readInt() != 0"
	case "String":
		return "in.readString()"
	}
	return "(" + f.Type.Text + ") in.readValue(" + f.Type.Text + ".class.getClassLoader())"
}

// hasCreatorField reports whether the class already declares a CREATOR
// field; Suppressed only knows about methods.
func hasCreatorField(class *java.ClassModel) bool {
	for _, f := range class.Fields {
		if f.Name == "CREATOR" {
			return true
		}
	}
	return false
}

// transientDefault is what the parcel constructor passes for fields that
// are not serialized.
func transientDefault(f java.FieldModel) string {
	switch f.Type.Text {
	case "boolean":
		return "false"
	case "byte", "short", "int", "char", "long":
		return "0"
	case "float":
		return "0f"
	case "double":
		return "0d"
	}
	return "null"
}

func fieldNames(fields []java.FieldModel) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func fieldTypes(fields []java.FieldModel) []string {
	types := make([]string, len(fields))
	for i, f := range fields {
		types[i] = f.Type.Text
	}
	return types
}
