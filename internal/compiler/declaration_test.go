package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipdlc/internal/ipdl"
)

func TestCompileDeclaration_Object(t *testing.T) {
	c := newTestCompiler()
	blocks, err := c.CompileDeclaration("Foo", ipdl.Object{Properties: []ipdl.Property{
		{Name: "bar", Value: ipdl.StringValue{Value: "baz"}},
		{Name: "qux", Value: ipdl.StringValue{Value: "zap"}},
	}})
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	clauses := blocks[0].Clauses
	require.Len(t, clauses, 3, "one object fact plus one prop fact per property")
	assert.Equal(t, `object("Foo").`, clauses[0].String())
	assert.Equal(t, `prop("Foo","bar","baz").`, clauses[1].String())
	assert.Equal(t, `prop("Foo","qux","zap").`, clauses[2].String())
}

func TestCompileDeclaration_EmptyObject(t *testing.T) {
	c := newTestCompiler()
	blocks, err := c.CompileDeclaration("Bare", ipdl.Object{})
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Clauses, 1)
	assert.Equal(t, `object("Bare").`, blocks[0].Clauses[0].String())
}

func TestCompileDeclaration_DictionaryFlattens(t *testing.T) {
	c := newTestCompiler()
	decl := ipdl.Dictionary{Entries: []ipdl.NamedDeclaration{
		{Name: "inner", Decl: ipdl.Object{Properties: []ipdl.Property{
			{Name: "p", Value: ipdl.StringValue{Value: "v"}},
		}}},
		{Name: "deep", Decl: ipdl.Dictionary{Entries: []ipdl.NamedDeclaration{
			{Name: "leaf", Decl: ipdl.Object{}},
		}}},
	}}

	blocks, err := c.CompileDeclaration("outer", decl)
	require.NoError(t, err)
	require.Len(t, blocks, 2, "one block per flattened object, none for dictionary levels")

	assert.Equal(t, "outer.inner", blocks[0].Name)
	assert.Equal(t, `object("outer.inner").`, blocks[0].Clauses[0].String())
	assert.Equal(t, `prop("outer.inner","p","v").`, blocks[0].Clauses[1].String())

	assert.Equal(t, "outer.deep.leaf", blocks[1].Name)
	assert.Equal(t, `object("outer.deep.leaf").`, blocks[1].Clauses[0].String())

	for _, block := range blocks {
		for _, clause := range block.Clauses {
			assert.NotEqual(t, `object("outer").`, clause.String(),
				"the dictionary level itself must emit nothing")
		}
	}
}

func TestCompileDeclaration_Errors(t *testing.T) {
	c := newTestCompiler()

	t.Run("nested object value", func(t *testing.T) {
		_, err := c.CompileDeclaration("Foo", ipdl.Object{Properties: []ipdl.Property{
			{Name: "bad", Value: ipdl.ObjectValue{}},
		}})
		cerr := compileErr(t, err)
		assert.Equal(t, ErrNestedObject, cerr.Kind)
		assert.Equal(t, "Foo.bad", cerr.Name)
	})

	t.Run("expression value in object", func(t *testing.T) {
		_, err := c.CompileDeclaration("Foo", ipdl.Object{Properties: []ipdl.Property{
			{Name: "bad", Value: ipdl.ExpressionValue{Operator: ipdl.OpOr}},
		}})
		cerr := compileErr(t, err)
		assert.Equal(t, ErrUnknownValue, cerr.Kind)
	})

	t.Run("nil declaration", func(t *testing.T) {
		_, err := c.CompileDeclaration("Mystery", nil)
		cerr := compileErr(t, err)
		assert.Equal(t, ErrUnknownDeclaration, cerr.Kind)
		assert.Equal(t, "Mystery", cerr.Name)
	})

	t.Run("error inside dictionary carries dotted name", func(t *testing.T) {
		_, err := c.CompileDeclaration("outer", ipdl.Dictionary{Entries: []ipdl.NamedDeclaration{
			{Name: "inner", Decl: ipdl.Object{Properties: []ipdl.Property{
				{Name: "bad", Value: ipdl.ObjectValue{}},
			}}},
		}})
		cerr := compileErr(t, err)
		assert.Equal(t, ErrNestedObject, cerr.Kind)
		assert.Equal(t, "outer.inner.bad", cerr.Name)
	})
}
