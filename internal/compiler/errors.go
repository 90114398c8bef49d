package compiler

import "fmt"

// ErrorKind classifies fatal compile errors so callers can assert on
// the kind of failure without depending on message text.
type ErrorKind int

const (
	// ErrUnknownDeclaration: a declaration is neither object nor dictionary.
	ErrUnknownDeclaration ErrorKind = iota + 1
	// ErrUnparsableSituation: a situation matches none of the six kinds.
	ErrUnparsableSituation
	// ErrNestedObject: an object property value is itself an object.
	ErrNestedObject
	// ErrOrphanAnnotation: an annotation has no resolvable target symbol.
	ErrOrphanAnnotation
	// ErrUnknownValue: a typed value is neither object nor string where
	// one was expected.
	ErrUnknownValue
	// ErrUnsupportedExpression: an event expression is not the
	// disjunctive shape.
	ErrUnsupportedExpression
	// ErrInvalidName: a user-supplied name cannot form a legal name
	// constant.
	ErrInvalidName
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownDeclaration:
		return "unknown declaration shape"
	case ErrUnparsableSituation:
		return "unparsable situation"
	case ErrNestedObject:
		return "nested object value"
	case ErrOrphanAnnotation:
		return "orphan annotation"
	case ErrUnknownValue:
		return "unknown typed value"
	case ErrUnsupportedExpression:
		return "unsupported expression shape"
	case ErrInvalidName:
		return "invalid name"
	default:
		return fmt.Sprintf("compile error %d", int(k))
	}
}

// Error is a fatal compile error. There is no recovery: the first Error
// aborts the whole compilation.
type Error struct {
	Kind ErrorKind
	Name string // offending declaration, chain, or property name
	Node any    // rejected node, dumped for diagnosis
}

func (e *Error) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("%s: %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: %q (%+v)", e.Kind, e.Name, e.Node)
}

func newError(kind ErrorKind, name string, node any) *Error {
	return &Error{Kind: kind, Name: name, Node: node}
}
