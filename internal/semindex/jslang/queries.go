// Package jslang is the JavaScript definition builder and reference
// extractor: the capture-name -> handler table TypeScript's own registry
// overlays, against tree-sitter-javascript's concrete grammar.
package jslang

// Queries is the tree-sitter query source run against a parsed JavaScript
// tree. Capture names are dotted category.entity[.qualifier] strings per
// internal/capture.Categorize.
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

; -- definitions ----------------------------------------------------------
(class_declaration name: (identifier) @definition.class)
(class name: (identifier) @definition.class.named)
(function_declaration name: (identifier) @definition.function)
(function_expression name: (identifier) @definition.function.named)
(generator_function_declaration name: (identifier) @definition.function)
(method_definition name: (property_identifier) @definition.method)
(field_definition property: (property_identifier) @definition.property)
(variable_declarator name: (identifier) @definition.variable)

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
`
