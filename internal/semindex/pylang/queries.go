// Package pylang is the Python definition builder and reference extractor:
// the same capture-name -> handler shape jslang/tslang use, adapted to
// tree-sitter-python's grammar and Python's own rules: constructor-by-name
// (__init__), decorator-driven method kinds, Protocol/Enum base-class
// recognition, PEP 695 type aliases, and the leading-underscore export
// convention.
package pylang

// Queries is the tree-sitter query source run against a parsed Python tree.
const Queries = `
; -- scopes --------------------------------------------------------------
(class_definition body: (block) @scope.class)
(function_definition body: (block) @scope.function)
(lambda) @scope.function
(if_statement consequence: (block) @scope.block)
(if_statement alternative: (else_clause (block) @scope.block))
(elif_clause consequence: (block) @scope.block)
(for_statement body: (block) @scope.block)
(while_statement body: (block) @scope.block)
(try_statement body: (block) @scope.block)
(except_clause (block) @scope.block)
(finally_clause (block) @scope.block)
(with_statement body: (block) @scope.block)

; -- definitions ----------------------------------------------------------
(class_definition name: (identifier) @definition.class)
(function_definition name: (identifier) @definition.function)
(lambda) @definition.function.anonymous
(assignment left: (identifier) @definition.variable)
(assignment left: (identifier) @definition.variable.annotated type: (_))
(type_alias_statement . (type (identifier) @definition.type_alias))

; -- decorators -------------------------------------------------------------
(decorator) @decorator.attached

; -- imports ----------------------------------------------------------------
(import_statement name: (dotted_name) @import.namespace)
(import_statement name: (aliased_import name: (dotted_name) @import.namespace.aliased alias: (identifier)))
(import_from_statement module_name: (dotted_name) name: (dotted_name) @import.from)
(import_from_statement module_name: (dotted_name) name: (aliased_import name: (dotted_name) @import.from.aliased alias: (identifier)))
(import_from_statement module_name: (relative_import) name: (dotted_name) @import.from.relative)
(import_from_statement module_name: (relative_import) name: (aliased_import name: (dotted_name) @import.from.relative.aliased alias: (identifier)))
(import_from_statement (wildcard_import) @import.from.star)

; -- references -------------------------------------------------------------
(call function: (identifier) @reference.function_call)
(call function: (attribute) @reference.method_call)
(attribute) @reference.property_access
(assignment left: (identifier) @reference.variable_reference.write)
(assignment left: (identifier) @reference.assignment)
(assignment right: (identifier) @reference.variable_reference.read)
(argument_list (identifier) @reference.variable_reference.read)
(return_statement (identifier) @reference.variable_reference.read)
(for_statement left: (identifier) @definition.variable.loop)
(with_statement (with_clause (with_item value: (as_pattern alias: (as_pattern_target (identifier) @definition.variable.with)))))
(except_clause (as_pattern alias: (as_pattern_target (identifier) @definition.variable.except)))
(type (identifier) @reference.type_reference)
(type (subscript value: (identifier) @reference.type_reference))
(type (subscript subscript: (identifier) @reference.type_reference))
`
