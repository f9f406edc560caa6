package dialect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"indo", "jaksel"}, Names())
}

func TestLoadBuiltins(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			d, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, d.Name)
			assert.True(t, d.Has(End), "missing end")
			assert.True(t, d.Has(Print), "missing print")
		})
	}
}

func TestJaksel(t *testing.T) {
	d, err := Load("jaksel")
	require.NoError(t, err)

	assert.False(t, d.Permissive)
	for word, want := range map[string]Canonical{
		"itu": Assign, "yap": Print, "kalo": While, "cmiiw": For, "imo": Def,
		"burnout": Break, "gas": Continue, "stop": Return, "END": End,
		"plus": Add, "kurang": Lt, "lebih": Gt,
	} {
		got, ok := d.Keyword(word)
		assert.True(t, ok, word)
		assert.Equal(t, want, got, word)
	}
	_, ok := d.Keyword("end")
	assert.False(t, ok, "keywords are case sensitive")
	_, ok = d.Symbol("+")
	assert.False(t, ok)
	assert.Equal(t, "itu", d.Spelling(Assign))
	assert.Equal(t, "le", d.Spelling(Le))
}

func TestIndo(t *testing.T) {
	d, err := Load("indo")
	require.NoError(t, err)

	assert.True(t, d.Permissive)
	c, ok := d.Keyword("SET")
	require.True(t, ok)
	assert.Equal(t, Set, c)
	c, ok = d.Symbol("<=")
	require.True(t, ok)
	assert.Equal(t, Le, c)
	assert.False(t, d.Has(Assign))
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("klingon")
	require.ErrorIs(t, err, ErrUnknownDialect)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing name", input: "keywords: {itu: assign, END: end}"},
		{name: "unknown production", input: "name: x\nkeywords: {itu: assign, END: end, foo: loop}"},
		{name: "bad word", input: "name: x\nkeywords: {itu: assign, END: end, 9x: print}"},
		{name: "bad symbol", input: "name: x\nkeywords: {itu: assign, END: end}\nsymbols: {\"a\": add}"},
		{name: "duplicate spelling", input: "name: x\nkeywords: {itu: assign, END: end, yap: print, say: print}"},
		{name: "missing end", input: "name: x\nkeywords: {itu: assign}"},
		{name: "missing assignment", input: "name: x\nkeywords: {END: end}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrInvalidDialect)
		})
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("name: x\nkeywords: {itu: assign, END: end}\nextra: 1"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "mini.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("name: mini\nkeywords: {be: assign, say: print, done: end}\n"), 0o644))

	d, err := LoadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "mini", d.Name)
	c, ok := d.Keyword("say")
	require.True(t, ok)
	assert.Equal(t, Print, c)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
