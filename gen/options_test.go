package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/dataclass/java"
)

func expectMalformedArgument(t *testing.T, class *java.ClassModel) *MalformedAnnotationArgumentError {
	t.Helper()
	file := &java.File{Classes: []*java.ClassModel{class}}
	_, err := NewCore(file, class, nil)
	if err == nil {
		t.Fatal("NewCore() succeeded, want a malformed argument error")
	}
	var malformed *MalformedAnnotationArgumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("NewCore() returned %T, want *MalformedAnnotationArgumentError", err)
	}
	return malformed
}

func TestParseOptionsRejectsUnknownKey(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Annotations[0].Values = map[string]any{"bulider": true}

	malformed := expectMalformedArgument(t, class)
	if !strings.Contains(malformed.Error(), "bulider") {
		t.Errorf("error %q does not name the offending key", malformed.Error())
	}
}

func TestParseOptionsRejectsNonBooleanValue(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Annotations[0].Values = map[string]any{"builder": java.RawExpr("Builder.class")}

	malformed := expectMalformedArgument(t, class)
	if !strings.HasPrefix(malformed.Error(), "malformed annotation argument: ") {
		t.Errorf("error = %q, want the malformed-argument prefix", malformed.Error())
	}
}

func TestSuppressionFromSingleString(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Annotations = append(class.Annotations, java.AnnotationModel{
		Name:   "SuppressGeneration",
		Values: map[string]any{"value": "toString"},
	})

	core := newTestCore(t, class)
	if !core.Suppressed("toString") {
		t.Error("toString should be suppressed")
	}
	if core.Suppressed("hashCode") {
		t.Error("hashCode should not be suppressed")
	}
}

func TestSuppressionFromStringArray(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Annotations = append(class.Annotations, java.AnnotationModel{
		Name:   "SuppressGeneration",
		Values: map[string]any{"value": []any{"equals", "hashCode"}},
	})

	core := newTestCore(t, class)
	for _, name := range []string{"equals", "hashCode"} {
		if !core.Suppressed(name) {
			t.Errorf("%s should be suppressed", name)
		}
	}
}

func TestSuppressionRejectsNonStringElements(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Annotations = append(class.Annotations, java.AnnotationModel{
		Name:   "SuppressGeneration",
		Values: map[string]any{"value": []any{"equals", java.RawExpr("3")}},
	})

	expectMalformedArgument(t, class)
}

func TestSuppressionFromNestedBuilder(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Nested = []*java.ClassModel{{
		Name: "Builder",
		Kind: java.ClassKindClass,
		Annotations: []java.AnnotationModel{{
			Name:   "SuppressGeneration",
			Values: map[string]any{"value": "buildUpon"},
		}},
	}}

	core := newTestCore(t, class)
	if !core.Suppressed("buildUpon") {
		t.Error("buildUpon should be suppressed through the nested Builder")
	}
}

func TestDeclaredMethodSuppressesGeneration(t *testing.T) {
	class := annotatedClass(intField("x"))
	class.Methods = []java.MethodModel{
		{Name: "getX", ReturnType: "int"},
		{Name: "setX", ReturnType: "void", Parameters: []string{"int"}},
	}

	core := newTestCore(t, class)
	if !core.Suppressed("getX") {
		t.Error("a hand-written getX() should win over generation")
	}
	if !core.Suppressed("setX", "int") {
		t.Error("a hand-written setX(int) should win over generation")
	}
	if core.Suppressed("setX", "long") {
		t.Error("setX(long) has a different signature and is not declared")
	}
}
