package lang

import "github.com/jward/codeindex/internal/graph"

// nodeKinds is the fixed mapping from grammar node types to symbol kinds.
var nodeKinds = map[string]graph.SymbolKind{
	// functions and methods
	"function_declaration":           graph.KindFunction,
	"generator_function_declaration": graph.KindFunction,
	"function_definition":            graph.KindFunction,
	"function_item":                  graph.KindFunction,
	"method_declaration":             graph.KindFunction,
	"method_definition":              graph.KindFunction,
	"constructor_declaration":        graph.KindFunction,
	"singleton_method":               graph.KindFunction,
	"method":                         graph.KindFunction,
	"arrow_function":                 graph.KindFunction,

	// classes, structs, impls
	"class_declaration":          graph.KindClass,
	"abstract_class_declaration": graph.KindClass,
	"class_definition":           graph.KindClass,
	"class_specifier":            graph.KindClass,
	"class":                      graph.KindClass,
	"struct_item":                graph.KindClass,
	"struct_specifier":           graph.KindClass,
	"impl_item":                  graph.KindClass,

	// interfaces, aliases, enums, traits
	"type_declaration":            graph.KindType,
	"type_spec":                   graph.KindType,
	"interface_declaration":       graph.KindType,
	"type_alias_declaration":      graph.KindType,
	"type_item":                   graph.KindType,
	"type_definition":             graph.KindType,
	"enum_declaration":            graph.KindType,
	"enum_item":                   graph.KindType,
	"enum_specifier":              graph.KindType,
	"trait_item":                  graph.KindType,
	"trait_declaration":           graph.KindType,
	"annotation_type_declaration": graph.KindType,

	// variable bindings
	"variable_declarator": graph.KindVariable,
	"lexical_declaration": graph.KindVariable,
	"const_declaration":   graph.KindVariable,
	"var_declaration":     graph.KindVariable,
	"const_item":          graph.KindVariable,
	"static_item":         graph.KindVariable,

	// namespaces and modules
	"namespace_definition": graph.KindNamespace,
	"internal_module":      graph.KindNamespace,
	"mod_item":             graph.KindNamespace,
	"module":               graph.KindNamespace,
}

// KindForNode maps a definition node's grammar type to a SymbolKind.
// Unknown node types become KindOther.
func KindForNode(nodeType string) graph.SymbolKind {
	if k, ok := nodeKinds[nodeType]; ok {
		return k
	}
	return graph.KindOther
}
