// Package tslang is the TypeScript definition builder and reference
// extractor. TypeScript inherits JavaScript and adds interfaces, enums,
// namespaces, type aliases, decorators, and type annotations: its handler
// registry is jslang's Handlers.Overlay'd with TS-specific overrides. The query source cannot be shared verbatim, though: the two
// grammars name a few productions differently (class fields are
// field_definition in JS but public_field_definition in TS, and TS adds
// internal_module for the namespace keyword), and tree-sitter rejects a
// query mentioning a node type the grammar doesn't define. So this is the
// JavaScript pattern set re-spelled in TS vocabulary, plus the TS-only
// constructs.
package tslang

// Queries is the full TypeScript query source.
const Queries = `
; -- scopes --------------------------------------------------------------
(class_declaration body: (class_body) @scope.class)
(class body: (class_body) @scope.class)
(function_declaration body: (statement_block) @scope.function)
(function_expression body: (statement_block) @scope.function)
(generator_function_declaration body: (statement_block) @scope.function)
(generator_function body: (statement_block) @scope.function)
(method_definition body: (statement_block) @scope.method)
(arrow_function) @scope.function
(if_statement consequence: (statement_block) @scope.block)
(else_clause (statement_block) @scope.block)
(for_statement body: (statement_block) @scope.block)
(for_in_statement body: (statement_block) @scope.block)
(while_statement body: (statement_block) @scope.block)
(do_statement body: (statement_block) @scope.block)
(try_statement body: (statement_block) @scope.block)
(catch_clause body: (statement_block) @scope.block)
(finally_clause (statement_block) @scope.block)
(interface_declaration body: (interface_body) @scope.class)
(enum_declaration body: (enum_body) @scope.class)
(module body: (statement_block) @scope.class)
(internal_module body: (statement_block) @scope.class)

; -- definitions ----------------------------------------------------------
(class_declaration name: (type_identifier) @definition.class)
(class name: (type_identifier) @definition.class.named)
(function_declaration name: (identifier) @definition.function)
(function_expression name: (identifier) @definition.function.named)
(generator_function_declaration name: (identifier) @definition.function)
(method_definition name: (property_identifier) @definition.method)
(public_field_definition name: (property_identifier) @definition.property)
(variable_declarator name: (identifier) @definition.variable)
(interface_declaration name: (type_identifier) @definition.interface)
(enum_declaration name: (identifier) @definition.enum)
(enum_assignment name: (property_identifier) @definition.enum_member)
(module name: (identifier) @definition.namespace)
(internal_module name: (identifier) @definition.namespace)
(type_alias_declaration name: (type_identifier) @definition.type_alias)
(property_signature name: (property_identifier) @definition.property.signature)
(method_signature name: (property_identifier) @definition.method.signature)
(decorator) @decorator.attached

; -- imports ----------------------------------------------------------------
(import_specifier name: (identifier) @import.named)
(namespace_import (identifier) @import.namespace)
(import_clause (identifier) @import.default)
(variable_declarator name: (identifier) value: (call_expression function: (identifier))) @import.require
(variable_declarator name: (object_pattern) value: (call_expression function: (identifier))) @import.require
(export_statement) @import.reexport

; -- anonymous functions ----------------------------------------------------
(arrow_function) @definition.function.anonymous
(function_expression) @definition.function.anonymous

; -- references -------------------------------------------------------------
(call_expression function: (identifier) @reference.function_call)
(call_expression function: (member_expression) @reference.method_call)
(new_expression constructor: (_) @reference.constructor_call)
(member_expression) @reference.property_access
(assignment_expression left: (identifier) @reference.variable_reference.write)
(assignment_expression left: (identifier) @reference.assignment)
(assignment_expression right: (identifier) @reference.variable_reference.read)
(arguments (identifier) @reference.variable_reference.read)
(return_statement (identifier) @reference.variable_reference.read)
(type_annotation (type_identifier) @reference.type_reference)
(type_annotation (generic_type name: (type_identifier) @reference.type_reference))
(type_arguments (type_identifier) @reference.type_reference)
(type_arguments (generic_type name: (type_identifier) @reference.type_reference))
(extends_type_clause (type_identifier) @reference.type_reference)
(implements_clause (type_identifier) @reference.type_reference)
(extends_clause (identifier) @reference.type_reference)
`
