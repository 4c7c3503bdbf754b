package lang

// Definition queries capture @name (the identifier) and @definition (the
// enclosing declaration). Reference queries capture @ref on bare call
// targets, import identifiers, type identifiers, and decorators. They
// deliberately never capture receiver-qualified calls (obj.method(...)):
// without type information those cross-wire every common method name, so
// the recall loss is accepted.

const goDefs = `
(function_declaration name: (identifier) @name) @definition
(method_declaration name: (field_identifier) @name) @definition
(type_declaration (type_spec name: (type_identifier) @name)) @definition
(const_declaration (const_spec name: (identifier) @name)) @definition
(var_declaration (var_spec name: (identifier) @name)) @definition
`

const goRefs = `
(call_expression function: (identifier) @ref)
(type_identifier) @ref
`

const jsDefs = `
(function_declaration name: (identifier) @name) @definition
(generator_function_declaration name: (identifier) @name) @definition
(class_declaration name: (identifier) @name) @definition
(method_definition name: (property_identifier) @name) @definition
(variable_declarator name: (identifier) @name value: (arrow_function)) @definition
`

const jsRefs = `
(call_expression function: (identifier) @ref)
(new_expression constructor: (identifier) @ref)
(import_specifier name: (identifier) @ref)
`

const tsDefs = `
(function_declaration name: (identifier) @name) @definition
(generator_function_declaration name: (identifier) @name) @definition
(class_declaration name: (type_identifier) @name) @definition
(abstract_class_declaration name: (type_identifier) @name) @definition
(method_definition name: (property_identifier) @name) @definition
(variable_declarator name: (identifier) @name value: (arrow_function)) @definition
(interface_declaration name: (type_identifier) @name) @definition
(type_alias_declaration name: (type_identifier) @name) @definition
(enum_declaration name: (identifier) @name) @definition
(internal_module name: (identifier) @name) @definition
`

const tsRefs = `
(call_expression function: (identifier) @ref)
(new_expression constructor: (identifier) @ref)
(import_specifier name: (identifier) @ref)
(type_identifier) @ref
(decorator (identifier) @ref)
`

const pyDefs = `
(function_definition name: (identifier) @name) @definition
(class_definition name: (identifier) @name) @definition
`

const pyRefs = `
(call function: (identifier) @ref)
(import_from_statement name: (dotted_name (identifier) @ref))
(decorator (identifier) @ref)
(type (identifier) @ref)
`

const rustDefs = `
(function_item name: (identifier) @name) @definition
(struct_item name: (type_identifier) @name) @definition
(enum_item name: (type_identifier) @name) @definition
(trait_item name: (type_identifier) @name) @definition
(type_item name: (type_identifier) @name) @definition
(impl_item type: (type_identifier) @name) @definition
(mod_item name: (identifier) @name) @definition
(const_item name: (identifier) @name) @definition
(static_item name: (identifier) @name) @definition
`

const rustRefs = `
(call_expression function: (identifier) @ref)
(use_declaration argument: (identifier) @ref)
(type_identifier) @ref
`

const cDefs = `
(function_definition declarator: (function_declarator declarator: (identifier) @name)) @definition
(struct_specifier name: (type_identifier) @name body: (field_declaration_list)) @definition
(enum_specifier name: (type_identifier) @name body: (enumerator_list)) @definition
(type_definition declarator: (type_identifier) @name) @definition
`

const cRefs = `
(call_expression function: (identifier) @ref)
(type_identifier) @ref
`

const cppDefs = cDefs + `
(class_specifier name: (type_identifier) @name body: (field_declaration_list)) @definition
(namespace_definition name: (namespace_identifier) @name) @definition
`

const cppRefs = cRefs

const javaDefs = `
(class_declaration name: (identifier) @name) @definition
(interface_declaration name: (identifier) @name) @definition
(enum_declaration name: (identifier) @name) @definition
(annotation_type_declaration name: (identifier) @name) @definition
(method_declaration name: (identifier) @name) @definition
(constructor_declaration name: (identifier) @name) @definition
`

const javaRefs = `
(method_invocation !object name: (identifier) @ref)
(import_declaration (scoped_identifier name: (identifier) @ref))
(marker_annotation name: (identifier) @ref)
(type_identifier) @ref
`

const phpDefs = `
(function_definition name: (name) @name) @definition
(method_declaration name: (name) @name) @definition
(class_declaration name: (name) @name) @definition
(interface_declaration name: (name) @name) @definition
(trait_declaration name: (name) @name) @definition
`

const phpRefs = `
(function_call_expression function: (name) @ref)
(object_creation_expression (name) @ref)
`

const rubyDefs = `
(method name: (identifier) @name) @definition
(singleton_method name: (identifier) @name) @definition
(class name: (constant) @name) @definition
(module name: (constant) @name) @definition
`

const rubyRefs = `
(call !receiver method: (identifier) @ref)
(constant) @ref
`
