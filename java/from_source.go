package java

import (
	"errors"
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Parse builds the structural model of a Java compilation unit.
func Parse(source []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language()))

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}
	defer tree.Close()

	return fileFromRoot(tree.RootNode(), source), nil
}

// ParseFile reads and parses a .java file.
func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	file, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

func fileFromRoot(root *sitter.Node, source []byte) *File {
	file := &File{}
	for i := uint(0); i < root.ChildCount(); i++ {
		node := root.Child(i)
		if node == nil {
			continue
		}
		switch node.Kind() {
		case "package_declaration":
			file.Package = packageName(node, source)
		case "import_declaration":
			file.Imports = append(file.Imports, importFromNode(node, source))
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			file.Classes = append(file.Classes, classFromNode(node, source))
		}
	}
	return file
}

func packageName(node *sitter.Node, source []byte) string {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "scoped_identifier", "identifier":
			return nodeText(child, source)
		}
	}
	return ""
}

func importFromNode(node *sitter.Node, source []byte) Import {
	imp := Import{}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "static":
			imp.Static = true
		case "asterisk":
			imp.Wildcard = true
		case "scoped_identifier", "identifier":
			imp.Name = nodeText(child, source)
		}
	}
	return imp
}

func classFromNode(node *sitter.Node, source []byte) *ClassModel {
	model := &ClassModel{Kind: kindForNode(node.Kind())}

	if mods := childOfKind(node, "modifiers"); mods != nil {
		applyModifiers(model, mods, source)
	}
	if name := node.ChildByFieldName("name"); name != nil {
		model.Name = nodeText(name, source)
	}
	if tp := node.ChildByFieldName("type_parameters"); tp != nil {
		for i := uint(0); i < tp.NamedChildCount(); i++ {
			model.TypeParameters = append(model.TypeParameters, nodeText(tp.NamedChild(i), source))
		}
	}
	if sc := node.ChildByFieldName("superclass"); sc != nil {
		// superclass is the "extends T" clause; the type is its only named child
		if sc.NamedChildCount() > 0 {
			model.SuperClass = nodeText(sc.NamedChild(0), source)
		}
	}
	if ifaces := node.ChildByFieldName("interfaces"); ifaces != nil {
		if list := childOfKind(ifaces, "type_list"); list != nil {
			for i := uint(0); i < list.NamedChildCount(); i++ {
				model.Interfaces = append(model.Interfaces, nodeText(list.NamedChild(i), source))
			}
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		model.BodyStart = body.StartByte()
		model.BodyEnd = body.EndByte() - 1
		membersFromBody(model, body, source)
	}
	return model
}

func kindForNode(kind string) ClassKind {
	switch kind {
	case "interface_declaration":
		return ClassKindInterface
	case "enum_declaration":
		return ClassKindEnum
	case "record_declaration":
		return ClassKindRecord
	case "annotation_type_declaration":
		return ClassKindAnnotation
	}
	return ClassKindClass
}

func applyModifiers(model *ClassModel, mods *sitter.Node, source []byte) {
	for i := uint(0); i < mods.ChildCount(); i++ {
		child := mods.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "final":
			model.IsFinal = true
		case "abstract":
			model.IsAbstract = true
		case "static":
			model.IsStatic = true
		case "marker_annotation", "annotation":
			model.Annotations = append(model.Annotations, annotationFromNode(child, source))
		}
	}
}

func membersFromBody(model *ClassModel, body *sitter.Node, source []byte) {
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "field_declaration":
			model.Fields = append(model.Fields, fieldsFromDecl(child, source, len(model.Fields))...)
		case "method_declaration":
			model.Methods = append(model.Methods, methodFromDecl(child, source))
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			model.Nested = append(model.Nested, classFromNode(child, source))
		}
	}
}

// fieldsFromDecl expands one field declaration into one FieldModel per
// declarator, so "int x, y;" produces two fields sharing type and modifiers.
func fieldsFromDecl(node *sitter.Node, source []byte, ordinal int) []FieldModel {
	proto := FieldModel{}
	if typ := node.ChildByFieldName("type"); typ != nil {
		proto.Type = TypeModel{Text: nodeText(typ, source)}
	}
	if mods := childOfKind(node, "modifiers"); mods != nil {
		for i := uint(0); i < mods.ChildCount(); i++ {
			child := mods.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "final":
				proto.IsFinal = true
			case "static":
				proto.IsStatic = true
			case "transient":
				proto.IsTransient = true
			case "marker_annotation", "annotation":
				if name := child.ChildByFieldName("name"); name != nil {
					proto.Annotations = append(proto.Annotations, simpleTypeName(nodeText(name, source)))
				}
			}
		}
	}

	var fields []FieldModel
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		field := proto
		field.Ordinal = ordinal + len(fields)
		if name := child.ChildByFieldName("name"); name != nil {
			field.Name = nodeText(name, source)
		}
		field.HasDefault = child.ChildByFieldName("value") != nil
		fields = append(fields, field)
	}
	return fields
}

func methodFromDecl(node *sitter.Node, source []byte) MethodModel {
	method := MethodModel{}
	if typ := node.ChildByFieldName("type"); typ != nil {
		method.ReturnType = nodeText(typ, source)
	}
	if name := node.ChildByFieldName("name"); name != nil {
		method.Name = nodeText(name, source)
	}
	if mods := childOfKind(node, "modifiers"); mods != nil {
		for i := uint(0); i < mods.ChildCount(); i++ {
			if child := mods.Child(i); child != nil && child.Kind() == "static" {
				method.IsStatic = true
			}
		}
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.NamedChildCount(); i++ {
			param := params.NamedChild(i)
			switch param.Kind() {
			case "formal_parameter":
				if typ := param.ChildByFieldName("type"); typ != nil {
					method.Parameters = append(method.Parameters, nodeText(typ, source))
				}
			case "spread_parameter":
				// spread parameters carry no type field; the type is the
				// first named child
				if param.NamedChildCount() > 0 {
					method.Parameters = append(method.Parameters, nodeText(param.NamedChild(0), source))
				}
			}
		}
	}
	return method
}

func annotationFromNode(node *sitter.Node, source []byte) AnnotationModel {
	ann := AnnotationModel{}
	if name := node.ChildByFieldName("name"); name != nil {
		ann.Name = simpleTypeName(nodeText(name, source))
	}
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return ann
	}
	ann.Values = make(map[string]any)
	for i := uint(0); i < args.NamedChildCount(); i++ {
		child := args.NamedChild(i)
		if child.Kind() == "element_value_pair" {
			key := ""
			if k := child.ChildByFieldName("key"); k != nil {
				key = nodeText(k, source)
			}
			if v := child.ChildByFieldName("value"); v != nil {
				ann.Values[key] = annotationValue(v, source)
			}
			continue
		}
		// single unnamed argument
		ann.Values["value"] = annotationValue(child, source)
	}
	return ann
}

func annotationValue(node *sitter.Node, source []byte) any {
	switch node.Kind() {
	case "true":
		return true
	case "false":
		return false
	case "string_literal":
		return unquote(nodeText(node, source))
	case "element_value_array_initializer":
		values := make([]any, 0, node.NamedChildCount())
		for i := uint(0); i < node.NamedChildCount(); i++ {
			values = append(values, annotationValue(node.NamedChild(i), source))
		}
		return values
	}
	return RawExpr(nodeText(node, source))
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

func childOfKind(node *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= end || end > uint(len(source)) {
		return ""
	}
	return string(source[start:end])
}
