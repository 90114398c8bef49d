package ipdl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeError reports a malformed document, carrying the path of the
// offending node within the JSON tree.
type DecodeError struct {
	Path    string
	Message string
}

func (e DecodeError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

func newDecodeError(path, format string, args ...any) DecodeError {
	return DecodeError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Wire form. Declarations, properties, and chains are arrays of named
// entries rather than JSON objects so that input order survives decoding.
type documentJSON struct {
	Declarations []declarationJSON `json:"declarations"`
	Chains       []chainJSON       `json:"chains"`
}

type declarationJSON struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Properties   []propertyJSON    `json:"properties,omitempty"`
	Declarations []declarationJSON `json:"declarations,omitempty"`
}

type propertyJSON struct {
	Name  string    `json:"name"`
	Value valueJSON `json:"value"`
}

type valueJSON struct {
	Type       string          `json:"type"`
	Value      string          `json:"value,omitempty"`
	Properties []propertyJSON  `json:"properties,omitempty"`
	Operator   string          `json:"operator,omitempty"`
	Situations []situationJSON `json:"situations,omitempty"`
}

type situationJSON struct {
	Type       string          `json:"type"`
	Properties []propertyJSON  `json:"properties,omitempty"`
	Operator   string          `json:"operator,omitempty"`
	Situations []situationJSON `json:"situations,omitempty"`
	Chain      string          `json:"chain,omitempty"`
	Variable   string          `json:"variable,omitempty"`
}

type chainJSON struct {
	Name        string           `json:"name"`
	Situations  []situationJSON  `json:"situations"`
	Annotations []annotationJSON `json:"annotations,omitempty"`
}

type annotationJSON struct {
	Name       string         `json:"name"`
	Properties []propertyJSON `json:"properties"`
}

// DecodeDocument reads one JSON document from r. Unknown fields,
// unknown type tags, and trailing content are all errors.
func DecodeDocument(r io.Reader) (*Document, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var raw documentJSON
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	if err := ensureEOF(decoder); err != nil {
		return nil, err
	}

	doc := &Document{}
	for i, d := range raw.Declarations {
		path := fmt.Sprintf("declarations[%d]", i)
		decl, err := declarationFromJSON(path, d)
		if err != nil {
			return nil, err
		}
		doc.Declarations = append(doc.Declarations, decl)
	}
	for i, ch := range raw.Chains {
		path := fmt.Sprintf("chains[%d]", i)
		chain, err := chainFromJSON(path, ch)
		if err != nil {
			return nil, err
		}
		doc.Chains = append(doc.Chains, chain)
	}
	return doc, nil
}

func ensureEOF(decoder *json.Decoder) error {
	var extra any
	if err := decoder.Decode(&extra); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return errors.New("unexpected trailing JSON content")
}

func declarationFromJSON(path string, raw declarationJSON) (NamedDeclaration, error) {
	if raw.Name == "" {
		return NamedDeclaration{}, newDecodeError(path+".name", "declaration name is required")
	}
	switch raw.Type {
	case "object":
		props, err := propertiesFromJSON(path+".properties", raw.Properties)
		if err != nil {
			return NamedDeclaration{}, err
		}
		return NamedDeclaration{Name: raw.Name, Decl: Object{Properties: props}}, nil
	case "dictionary":
		var entries []NamedDeclaration
		for i, inner := range raw.Declarations {
			entry, err := declarationFromJSON(fmt.Sprintf("%s.declarations[%d]", path, i), inner)
			if err != nil {
				return NamedDeclaration{}, err
			}
			entries = append(entries, entry)
		}
		return NamedDeclaration{Name: raw.Name, Decl: Dictionary{Entries: entries}}, nil
	default:
		return NamedDeclaration{}, newDecodeError(path+".type", "declaration type must be object or dictionary, got %q", raw.Type)
	}
}

func propertiesFromJSON(path string, raw []propertyJSON) ([]Property, error) {
	var props []Property
	for i, p := range raw {
		value, err := valueFromJSON(fmt.Sprintf("%s[%d].value", path, i), p.Value)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: p.Name, Value: value})
	}
	return props, nil
}

func valueFromJSON(path string, raw valueJSON) (Value, error) {
	switch raw.Type {
	case "string":
		return StringValue{Value: raw.Value}, nil
	case "object":
		props, err := propertiesFromJSON(path+".properties", raw.Properties)
		if err != nil {
			return nil, err
		}
		return ObjectValue{Properties: props}, nil
	case "expression":
		operands, err := situationsFromJSON(path+".situations", raw.Situations)
		if err != nil {
			return nil, err
		}
		return ExpressionValue{Operator: Operator(raw.Operator), Operands: operands}, nil
	default:
		return nil, newDecodeError(path+".type", "value type must be string, object, or expression, got %q", raw.Type)
	}
}

func situationsFromJSON(path string, raw []situationJSON) ([]Situation, error) {
	var situations []Situation
	for i, s := range raw {
		situation, err := situationFromJSON(fmt.Sprintf("%s[%d]", path, i), s)
		if err != nil {
			return nil, err
		}
		situations = append(situations, situation)
	}
	return situations, nil
}

func situationFromJSON(path string, raw situationJSON) (Situation, error) {
	switch raw.Type {
	case "any":
		return Any{}, nil
	case "block":
		props, err := propertiesFromJSON(path+".properties", raw.Properties)
		if err != nil {
			return nil, err
		}
		return Block{Properties: props}, nil
	case "logic_block":
		return LogicBlock{}, nil
	case "operation":
		op := Operator(raw.Operator)
		if op != OpCausal && op != OpOr {
			return nil, newDecodeError(path+".operator", "operation operator must be causal or or, got %q", raw.Operator)
		}
		operands, err := situationsFromJSON(path+".situations", raw.Situations)
		if err != nil {
			return nil, err
		}
		return Operation{Operator: op, Operands: operands}, nil
	case "rule_call":
		if raw.Chain == "" {
			return nil, newDecodeError(path+".chain", "rule_call requires a chain name")
		}
		return RuleCall{Chain: raw.Chain}, nil
	case "variable":
		if raw.Variable == "" {
			return nil, newDecodeError(path+".variable", "variable requires a matcher name")
		}
		return Variable{Name: raw.Variable}, nil
	default:
		return nil, newDecodeError(path+".type", "unknown situation type %q", raw.Type)
	}
}

func chainFromJSON(path string, raw chainJSON) (Chain, error) {
	if raw.Name == "" {
		return Chain{}, newDecodeError(path+".name", "chain name is required")
	}
	situations, err := situationsFromJSON(path+".situations", raw.Situations)
	if err != nil {
		return Chain{}, err
	}
	var annotations []Annotation
	for i, a := range raw.Annotations {
		annPath := fmt.Sprintf("%s.annotations[%d]", path, i)
		if a.Name == "" {
			return Chain{}, newDecodeError(annPath+".name", "annotation name is required")
		}
		props, err := propertiesFromJSON(annPath+".properties", a.Properties)
		if err != nil {
			return Chain{}, err
		}
		annotations = append(annotations, Annotation{Name: a.Name, Properties: props})
	}
	return Chain{Name: raw.Name, Situations: situations, Annotations: annotations}, nil
}
