package gen

import (
	"fmt"
	"strings"

	"github.com/dhamidi/dataclass/java"
)

// PreconditionViolationError reports a class shape the generator refuses to
// work with. Generation aborts entirely; no partial output is produced.
type PreconditionViolationError struct {
	Message string
}

func (e *PreconditionViolationError) Error() string { return e.Message }

// MalformedAnnotationArgumentError reports an annotation argument that is
// neither a boolean literal, a string literal, nor a string array.
type MalformedAnnotationArgumentError struct {
	Expr string
}

func (e *MalformedAnnotationArgumentError) Error() string {
	return fmt.Sprintf("malformed annotation argument: %s", e.Expr)
}

const parcelableFinalMessage = "Parcelable classes must be final"

// validate runs the structural precondition checks. The nullability check
// collects every offending field before aborting so the caller can fix them
// all in one round-trip.
func validate(class *java.ClassModel, fields []java.FieldModel) error {
	var missing []string
	for _, f := range fields {
		if f.Type.IsPrimitive() || f.IsTransient {
			continue
		}
		if !f.IsNullable() && !f.IsNonNull() {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &PreconditionViolationError{
			Message: fmt.Sprintf("fields must be annotated @Nullable or @NonNull: %s",
				strings.Join(missing, ", ")),
		}
	}
	if class.Implements(parcelableName) && !class.IsFinal {
		return &PreconditionViolationError{Message: parcelableFinalMessage}
	}
	return nil
}
