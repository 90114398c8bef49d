// Package ipdl defines the in-memory IPDL document tree: declarations
// of typed objects and dictionaries, plus chains of causally ordered
// situations. The tree is the compiler's input contract; DecodeDocument
// materializes it from the JSON interchange form.
package ipdl

// Document is a complete IPDL input: declarations first, chains second.
// Both are ordered slices because output is emitted in input order.
type Document struct {
	Declarations []NamedDeclaration
	Chains       []Chain
}

// NamedDeclaration pairs a declaration with its user-supplied name.
type NamedDeclaration struct {
	Name string
	Decl Declaration
}

// Declaration is a closed union: Object or Dictionary. Anything else
// reaching the compiler is a fatal input error.
type Declaration interface {
	isDeclaration()
}

// Object is a flat mapping of property name to typed value.
type Object struct {
	Properties []Property
}

// Dictionary groups nested declarations under a common name prefix.
type Dictionary struct {
	Entries []NamedDeclaration
}

func (Object) isDeclaration()     {}
func (Dictionary) isDeclaration() {}

// Property is one named, typed value of an object, block, or annotation.
type Property struct {
	Name  string
	Value Value
}

// Value is a closed union over typed property values.
type Value interface {
	isValue()
}

// StringValue is a literal string, quoted on output.
type StringValue struct {
	Value string
}

// ObjectValue marks a nested object value. Only one level of object
// nesting is supported at the declaration layer, so the declaration
// compiler rejects it.
type ObjectValue struct {
	Properties []Property
}

// ExpressionValue is a situation expression; it is legal only as a
// block's event value, and only with the Or operator.
type ExpressionValue struct {
	Operator Operator
	Operands []Situation
}

// SymbolValue passes through serialization verbatim as a name constant.
// Reserved for variable references; the JSON decoder never produces it.
type SymbolValue struct {
	Value string
}

func (StringValue) isValue()     {}
func (ObjectValue) isValue()     {}
func (ExpressionValue) isValue() {}
func (SymbolValue) isValue()     {}

// Operator distinguishes the two operation kinds.
type Operator string

const (
	OpCausal Operator = "causal"
	OpOr     Operator = "or"
)

// Situation is a closed union over the six situation kinds.
type Situation interface {
	isSituation()
}

// Any is the wildcard: it matches every situation.
type Any struct{}

// Block matches situations by property values. Only the event property
// is recognized; its value is a literal or an event expression.
type Block struct {
	Properties []Property
}

// LogicBlock is an inert placeholder. It compiles to no rules and an
// empty matcher symbol.
type LogicBlock struct{}

// Operation combines child situations under a causal or disjunctive
// operator.
type Operation struct {
	Operator Operator
	Operands []Situation
}

// RuleCall matches any situation for which the named chain matches.
type RuleCall struct {
	Chain string
}

// Variable delegates matching to an externally defined named matcher.
type Variable struct {
	Name string
}

func (Any) isSituation()        {}
func (Block) isSituation()      {}
func (LogicBlock) isSituation() {}
func (Operation) isSituation()  {}
func (RuleCall) isSituation()   {}
func (Variable) isSituation()   {}

// Chain is a named ordered sequence of situations with optional
// annotations.
type Chain struct {
	Name        string
	Situations  []Situation
	Annotations []Annotation
}

// Annotation is named key/value metadata attached to a chain.
type Annotation struct {
	Name       string
	Properties []Property
}
