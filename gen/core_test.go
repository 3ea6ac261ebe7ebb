package gen

import (
	"strings"
	"testing"

	"github.com/dhamidi/dataclass/java"
)

func generate(t *testing.T, file *java.File, class *java.ClassModel, switches ...string) string {
	t.Helper()
	core, err := NewCore(file, class, switches)
	if err != nil {
		t.Fatalf("NewCore() failed: %v", err)
	}
	return core.Generate()
}

func TestGenerateConstructor(t *testing.T) {
	class := annotatedClass(intField("x"), stringField("name", "NonNull"))
	file := &java.File{
		Imports: []java.Import{{Name: "androidx.annotation.NonNull"}},
		Classes: []*java.ClassModel{class},
	}

	got := generate(t, file, class, "no-getters", "no-equals-hash-code", "no-to-string")
	want := "public Point(\n" +
		"        final int x,\n" +
		"        @NonNull final String name) {\n" +
		"    this.x = x;\n" +
		"    this.name = name;\n" +
		"}\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateBuilderMakesConstructorPrivate(t *testing.T) {
	class := annotatedClass(intField("x"))
	file := &java.File{Classes: []*java.ClassModel{class}}

	got := generate(t, file, class, "builder", "constructor")
	for _, want := range []string{
		"private Point(",
		"public static Builder builder() {",
		"public static class Builder {",
		"public Builder x(int x) {",
		"public Point build() {",
		"return new Point(",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Generate() output is missing %q:\n%s", want, got)
		}
	}
	if open, close := strings.Count(got, "{"), strings.Count(got, "}"); open != close {
		t.Errorf("unbalanced braces: %d open, %d close:\n%s", open, close, got)
	}
}

func TestGenerateBuilderExactOutput(t *testing.T) {
	class := annotatedClass(intField("x"))
	file := &java.File{Classes: []*java.ClassModel{class}}

	got := generate(t, file, class,
		"builder", "no-constructor", "no-getters", "no-equals-hash-code", "no-to-string")
	want := "public static Builder builder() {\n" +
		"    return new Builder();\n" +
		"}\n" +
		"\n" +
		"public static class Builder {\n" +
		"    private int x;\n" +
		"\n" +
		"    public Builder x(int x) {\n" +
		"        this.x = x;\n" +
		"        return this;\n" +
		"    }\n" +
		"\n" +
		"    public Point build() {\n" +
		"        return new Point(\n" +
		"                x);\n" +
		"    }\n" +
		"}\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateBaseBuilderExactOutput(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Nested = []*java.ClassModel{{Name: "Builder", Kind: java.ClassKindClass}}
	file := &java.File{Classes: []*java.ClassModel{class}}

	got := generate(t, file, class,
		"builder", "no-constructor", "no-getters", "no-equals-hash-code", "no-to-string")
	want := "public static BuilderBase builder() {\n" +
		"    return new Builder();\n" +
		"}\n" +
		"\n" +
		"public abstract static class BuilderBase {\n" +
		"    private int x;\n" +
		"\n" +
		"    public BuilderBase x(int x) {\n" +
		"        this.x = x;\n" +
		"        return this;\n" +
		"    }\n" +
		"\n" +
		"    public Point build() {\n" +
		"        return new Point(\n" +
		"                x);\n" +
		"    }\n" +
		"}\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateBuildUponConstructsConcreteBuilder(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Nested = []*java.ClassModel{{Name: "Builder", Kind: java.ClassKindClass}}
	file := &java.File{Classes: []*java.ClassModel{class}}

	got := generate(t, file, class, "builder", "build-upon")
	if !strings.Contains(got, "public BuilderBase buildUpon() {") {
		t.Errorf("buildUpon is missing or misdeclared:\n%s", got)
	}
	if !strings.Contains(got, "    return new Builder()\n") {
		t.Errorf("buildUpon must construct the concrete Builder, not the abstract base:\n%s", got)
	}
	if strings.Contains(got, "new BuilderBase()") {
		t.Errorf("the abstract base must never be instantiated:\n%s", got)
	}
}

func TestGenerateEqualsUsesResolvedObjects(t *testing.T) {
	class := annotatedClass(stringField("name", "NonNull"))
	file := &java.File{
		Imports: []java.Import{{Name: "java.util.Objects"}},
		Classes: []*java.ClassModel{class},
	}

	got := generate(t, file, class)
	if !strings.Contains(got, "Objects.equals(name, that.name)") {
		t.Errorf("equals body should use the short Objects name:\n%s", got)
	}
	if strings.Contains(got, "java.util.Objects.equals") {
		t.Errorf("imported Objects should not stay qualified:\n%s", got)
	}
	if !strings.Contains(got, "return Objects.hash(name);") {
		t.Errorf("hashCode should delegate to Objects.hash:\n%s", got)
	}
}

func TestGenerateParcelableSkipsTransientFields(t *testing.T) {
	transientField := java.FieldModel{
		Name:        "cache",
		Type:        java.TypeModel{Text: "String"},
		IsTransient: true,
	}
	class := annotatedClass(intField("x"), transientField)
	class.Interfaces = []string{"Parcelable"}
	file := &java.File{
		Imports: []java.Import{
			{Name: "android.os.Parcel"},
			{Name: "android.os.Parcelable"},
		},
		Classes: []*java.ClassModel{class},
	}

	got := generate(t, file, class)
	if strings.Contains(got, "dest.writeString(cache)") {
		t.Errorf("transient field must not be written to the parcel:\n%s", got)
	}
	if !strings.Contains(got, "dest.writeInt(x);") {
		t.Errorf("persistent field must be written to the parcel:\n%s", got)
	}
	if !strings.Contains(got, "public static final Parcelable.Creator<Point> CREATOR") {
		t.Errorf("CREATOR declaration missing:\n%s", got)
	}
}

func TestGenerateParcelableExactOutput(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Interfaces = []string{"Parcelable"}
	file := &java.File{
		Imports: []java.Import{
			{Name: "android.os.Parcel"},
			{Name: "android.os.Parcelable"},
		},
		Classes: []*java.ClassModel{class},
	}

	got := generate(t, file, class,
		"no-constructor", "no-getters", "no-equals-hash-code", "no-to-string")
	want := "@Override\n" +
		"public void writeToParcel(Parcel dest, int flags) {\n" +
		"    dest.writeInt(x);\n" +
		"}\n" +
		"\n" +
		"@Override\n" +
		"public int describeContents() {\n" +
		"    return 0;\n" +
		"}\n" +
		"\n" +
		"public static final Parcelable.Creator<Point> CREATOR = new Parcelable.Creator<Point>() {\n" +
		"    @Override\n" +
		"    public Point createFromParcel(Parcel in) {\n" +
		"        return new Point(\n" +
		"                in.readInt());\n" +
		"    }\n" +
		"\n" +
		"    @Override\n" +
		"    public Point[] newArray(int size) {\n" +
		"        return new Point[size];\n" +
		"    }\n" +
		"};\n"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateSkipsUserDeclaredCreator(t *testing.T) {
	t.Run("via suppression", func(t *testing.T) {
		class := annotatedClass(intField("x"))
		class.Interfaces = []string{"Parcelable"}
		class.Annotations = append(class.Annotations, java.AnnotationModel{
			Name:   "SuppressGeneration",
			Values: map[string]any{"value": "CREATOR"},
		})
		file := &java.File{Classes: []*java.ClassModel{class}}

		got := generate(t, file, class)
		if strings.Contains(got, "CREATOR") {
			t.Errorf("suppressed CREATOR was still generated:\n%s", got)
		}
		if !strings.Contains(got, "writeToParcel") {
			t.Errorf("suppressing CREATOR must not disable the rest of parcel support:\n%s", got)
		}
	})

	t.Run("via declared field", func(t *testing.T) {
		class := annotatedClass(intField("x"))
		class.Interfaces = []string{"Parcelable"}
		class.Fields = append(class.Fields, java.FieldModel{
			Name:     "CREATOR",
			Type:     java.TypeModel{Text: "Parcelable.Creator<Point>"},
			IsStatic: true,
			IsFinal:  true,
		})
		file := &java.File{Classes: []*java.ClassModel{class}}

		got := generate(t, file, class)
		if strings.Contains(got, "public static final") {
			t.Errorf("a hand-written CREATOR should win over generation:\n%s", got)
		}
	})
}

func TestGenerateEmptyWhenEverythingDisabled(t *testing.T) {
	class := annotatedClass()
	file := &java.File{Classes: []*java.ClassModel{class}}

	got := generate(t, file, class,
		"no-constructor", "no-getters", "no-equals-hash-code", "no-to-string")
	if got != "" {
		t.Errorf("Generate() = %q, want empty output", got)
	}
}

func TestGenerateEndsWithSingleNewline(t *testing.T) {
	class := annotatedClass(intField("x"))
	file := &java.File{Classes: []*java.ClassModel{class}}

	got := generate(t, file, class)
	if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
		t.Errorf("Generate() must end with exactly one newline:\n%q", got)
	}
}
