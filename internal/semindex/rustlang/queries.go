// Package rustlang is the Rust definition builder and reference extractor:
// the same capture-name -> handler shape jslang/tslang/pylang use, adapted
// to tree-sitter-rust's grammar and Rust's own rules:
// struct/enum/trait declarations, impl blocks attaching methods to a struct
// by name rather than by nesting, `new`-named associated functions as
// constructors, and pub/pub(...) visibility as the export signal.
package rustlang

// Queries is the tree-sitter query source run against a parsed Rust tree.
const Queries = `
; -- scopes --------------------------------------------------------------
(impl_item body: (declaration_list) @scope.class)
(trait_item body: (declaration_list) @scope.class)
(function_item body: (block) @scope.function)
(closure_expression body: (_) @scope.function)
(if_expression consequence: (block) @scope.block)
(else_clause (block) @scope.block)
(for_expression body: (block) @scope.block)
(while_expression body: (block) @scope.block)
(loop_expression body: (block) @scope.block)
(match_arm value: (block) @scope.block)
(mod_item body: (declaration_list) @scope.block)

; -- definitions ----------------------------------------------------------
(struct_item name: (type_identifier) @definition.class)
(enum_item name: (type_identifier) @definition.enum)
(enum_variant name: (identifier) @definition.enum_member)
(trait_item name: (type_identifier) @definition.interface)
(function_item name: (identifier) @definition.function)
(function_signature_item name: (identifier) @definition.method.signature)
(let_declaration pattern: (identifier) @definition.variable)
(const_item name: (identifier) @definition.variable.const)
(static_item name: (identifier) @definition.variable.const)
(mod_item name: (identifier) @definition.namespace)
(type_item name: (type_identifier) @definition.type_alias)
(closure_expression) @definition.function.anonymous

; -- decorators (attribute macros, e.g. #[derive(...)]) -------------------
(attribute_item) @decorator.attached

; -- imports ----------------------------------------------------------------
(use_declaration) @import.use
(extern_crate_declaration) @import.extern_crate

; -- references -------------------------------------------------------------
(call_expression function: (identifier) @reference.function_call)
(call_expression function: (field_expression) @reference.method_call)
(call_expression function: (scoped_identifier) @reference.constructor_call)
(field_expression) @reference.property_access
(let_declaration value: (identifier) @reference.variable_reference.read)
(assignment_expression left: (identifier) @reference.variable_reference.write)
(assignment_expression left: (identifier) @reference.assignment)
(assignment_expression right: (identifier) @reference.variable_reference.read)
(parameter type: (type_identifier) @reference.type_reference)
(let_declaration type: (type_identifier) @reference.type_reference)
`
