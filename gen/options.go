package gen

import (
	"fmt"
	"sort"

	"github.com/dhamidi/dataclass/java"
)

// Options is the typed form of the @DataClass annotation's arguments, one
// optional boolean per recognized key. A nil field means the annotation did
// not mention that feature.
type Options struct {
	Constructor      *bool
	Builder          *bool
	Setters          *bool
	Getters          *bool
	EqualsHashCode   *bool
	ToString         *bool
	Parcelable       *bool
	DescribeContents *bool
	BuildUpon        *bool
	ImplicitNullable *bool
}

func (o *Options) lookup(flag Flag) *bool {
	switch flag {
	case FlagConstructor:
		return o.Constructor
	case FlagBuilder:
		return o.Builder
	case FlagSetters:
		return o.Setters
	case FlagGetters:
		return o.Getters
	case FlagEqualsHashCode:
		return o.EqualsHashCode
	case FlagToString:
		return o.ToString
	case FlagParcelable:
		return o.Parcelable
	case FlagDescribeContents:
		return o.DescribeContents
	case FlagBuildUpon:
		return o.BuildUpon
	case FlagImplicitNullable:
		return o.ImplicitNullable
	}
	return nil
}

func (o *Options) set(flag Flag, value bool) {
	v := value
	switch flag {
	case FlagConstructor:
		o.Constructor = &v
	case FlagBuilder:
		o.Builder = &v
	case FlagSetters:
		o.Setters = &v
	case FlagGetters:
		o.Getters = &v
	case FlagEqualsHashCode:
		o.EqualsHashCode = &v
	case FlagToString:
		o.ToString = &v
	case FlagParcelable:
		o.Parcelable = &v
	case FlagDescribeContents:
		o.DescribeContents = &v
	case FlagBuildUpon:
		o.BuildUpon = &v
	case FlagImplicitNullable:
		o.ImplicitNullable = &v
	}
}

// parseOptions converts the @DataClass annotation's key/value pairs into
// Options. Unrecognized keys and non-boolean values are rejected instead of
// silently ignored.
func parseOptions(ann *java.AnnotationModel) (*Options, error) {
	opts := &Options{}
	if ann == nil {
		return opts, nil
	}
	keys := make([]string, 0, len(ann.Values))
	for key := range ann.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		flag, ok := flagByKey(key)
		if !ok {
			return nil, &MalformedAnnotationArgumentError{
				Expr: fmt.Sprintf("%s (unrecognized @%s key)", key, annotationName),
			}
		}
		value, ok := ann.Values[key].(bool)
		if !ok {
			return nil, &MalformedAnnotationArgumentError{
				Expr: fmt.Sprintf("%s = %v", key, ann.Values[key]),
			}
		}
		opts.set(flag, value)
	}
	return opts, nil
}

// parseSuppressions reads the @SuppressGeneration annotation's value, which
// must be a single string or a string array of member names to skip.
func parseSuppressions(ann *java.AnnotationModel) ([]string, error) {
	if ann == nil {
		return nil, nil
	}
	value, ok := ann.Values["value"]
	if !ok {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, &MalformedAnnotationArgumentError{Expr: fmt.Sprintf("%v", item)}
			}
			names = append(names, name)
		}
		return names, nil
	}
	return nil, &MalformedAnnotationArgumentError{Expr: fmt.Sprintf("%v", value)}
}
