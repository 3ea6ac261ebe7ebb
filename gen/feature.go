package gen

import "github.com/iancoleman/strcase"

// Flag is one generatable capability. The set is closed: resolution,
// annotation keys and CLI switches are all derived from it.
type Flag int

const (
	FlagConstructor Flag = iota
	FlagBuilder
	FlagSetters
	FlagGetters
	FlagEqualsHashCode
	FlagToString
	FlagParcelable
	FlagDescribeContents
	FlagBuildUpon
	FlagImplicitNullable
	flagCount
)

var flagNames = [flagCount]string{
	FlagConstructor:      "Constructor",
	FlagBuilder:          "Builder",
	FlagSetters:          "Setters",
	FlagGetters:          "Getters",
	FlagEqualsHashCode:   "EqualsHashCode",
	FlagToString:         "ToString",
	FlagParcelable:       "Parcelable",
	FlagDescribeContents: "DescribeContents",
	FlagBuildUpon:        "BuildUpon",
	FlagImplicitNullable: "ImplicitNullable",
}

func (f Flag) String() string { return flagNames[f] }

// Switch is the kebab-case switch name, e.g. "equals-hash-code".
func (f Flag) Switch() string { return strcase.ToKebab(flagNames[f]) }

// Key is the annotation parameter name, e.g. "equalsHashCode".
func (f Flag) Key() string { return strcase.ToLowerCamel(flagNames[f]) }

// defaultEnabled is the static fallback policy for flags whose structural
// default is not derived from the class shape.
var defaultEnabled = map[Flag]bool{
	FlagGetters:        true,
	FlagEqualsHashCode: true,
	FlagToString:       true,
}

// Flags returns every flag in declaration order.
func Flags() []Flag {
	flags := make([]Flag, flagCount)
	for i := range flags {
		flags[i] = Flag(i)
	}
	return flags
}

func flagByKey(key string) (Flag, bool) {
	for _, f := range Flags() {
		if f.Key() == key {
			return f, true
		}
	}
	return 0, false
}

// hiddenStatus decides whether a feature is marked hidden by the switch set.
// BuildUpon inherits the builder's hidden status when not set explicitly.
func hiddenStatus(switches map[string]bool, flag Flag, builderHidden bool) bool {
	if switches["hidden-"+flag.Switch()] {
		return true
	}
	if flag == FlagBuildUpon {
		return builderHidden
	}
	return false
}
