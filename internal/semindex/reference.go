package semindex

// ReferenceKind is the tagged-union discriminant for Reference.
type ReferenceKind string

const (
	RefFunctionCall     ReferenceKind = "function_call"
	RefMethodCall       ReferenceKind = "method_call"
	RefConstructorCall  ReferenceKind = "constructor_call"
	RefSelfReference    ReferenceKind = "self_reference_call"
	RefPropertyAccess   ReferenceKind = "property_access"
	RefTypeReference    ReferenceKind = "type_reference"
	RefVariableRef      ReferenceKind = "variable_reference"
	RefAssignment       ReferenceKind = "assignment"
)

// AccessType discriminates a variable_reference as a read or a write.
type AccessType string

const (
	AccessRead  AccessType = "read"
	AccessWrite AccessType = "write"
)

// TypeCertainty discriminates whether a type_reference came from an
// explicit annotation or was inferred. The core never infers types, so in
// this implementation it is always "declared".
type TypeCertainty string

const (
	CertaintyDeclared TypeCertainty = "declared"
	CertaintyInferred TypeCertainty = "inferred"
)

// TypeInfo is the payload of a type_reference.
type TypeInfo struct {
	TypeName  string        `json:"type_name"`
	Certainty TypeCertainty `json:"certainty"`
}

// SelfKeyword enumerates the language-specific self-reference keywords
// recognized by self_reference_call.
type SelfKeyword string

const (
	KeywordThis SelfKeyword = "this"
	KeywordSelf SelfKeyword = "self"
	KeywordCls  SelfKeyword = "cls"
)

// Reference is a tagged union over every use-site kind the indexer emits.
// Common fields are always populated; tag-specific fields are populated
// according to Kind and left zero-valued otherwise.
type Reference struct {
	Kind             ReferenceKind `json:"kind"`
	Name             string        `json:"name"`
	Location         Location      `json:"location"`
	EnclosingScopeID ScopeID       `json:"enclosing_scope_id"`

	// method_call / self_reference_call
	ReceiverLocation  *Location `json:"receiver_location,omitempty"`
	OptionalChaining  bool      `json:"optional_chaining,omitempty"`
	PropertyChain     []string  `json:"property_chain,omitempty"`
	Keyword           SelfKeyword `json:"keyword,omitempty"`

	// constructor_call
	ConstructTarget *Location `json:"construct_target,omitempty"`

	// variable_reference
	AccessType AccessType `json:"access_type,omitempty"`

	// type_reference
	TypeInfo *TypeInfo `json:"type_info,omitempty"`
}
