// Package dialect describes the surface spellings of the slang language.
//
// Every dialect maps its own words and operator symbols onto one shared set of
// canonical productions, so a single lexer and parser serve all of them.
package dialect

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Canonical is the dialect independent name of a keyword or operator.
type Canonical string

// Canonical productions.
const (
	Assign   Canonical = "assign" // NAME <assign> expr.
	Set      Canonical = "set"    // <set> NAME expr.
	Print    Canonical = "print"
	If       Canonical = "if"
	Else     Canonical = "else"
	While    Canonical = "while"
	For      Canonical = "for"
	In       Canonical = "in"
	Def      Canonical = "def"
	Call     Canonical = "call"
	Break    Canonical = "break"
	Continue Canonical = "continue"
	Return   Canonical = "return"
	End      Canonical = "end"

	Add Canonical = "add"
	Sub Canonical = "sub"
	Mul Canonical = "mul"
	Div Canonical = "div"
	Lt  Canonical = "lt"
	Gt  Canonical = "gt"
	Le  Canonical = "le"
	Ge  Canonical = "ge"
	Eq  Canonical = "eq"
	Ne  Canonical = "ne"
)

var canonicals = map[Canonical]struct{}{
	Assign: {}, Set: {}, Print: {}, If: {}, Else: {}, While: {}, For: {}, In: {},
	Def: {}, Call: {}, Break: {}, Continue: {}, Return: {}, End: {},
	Add: {}, Sub: {}, Mul: {}, Div: {}, Lt: {}, Gt: {}, Le: {}, Ge: {}, Eq: {}, Ne: {},
}

// OperatorRunes lists the runes a symbol spelling can be made of.
const OperatorRunes = "+-*/<>=!%&|^~"

// Default is the dialect used when none is requested.
const Default = "jaksel"

var (
	// ErrUnknownDialect is returned when no built-in table has the requested name.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrInvalidDialect is returned when a table fails validation.
	ErrInvalidDialect = errors.New("invalid dialect")
)

//go:embed tables/*.yaml
var tables embed.FS

// Dialect is a validated keyword table.
type Dialect struct {
	Name string
	// Permissive dialects read unbound names as zero instead of failing.
	Permissive bool

	keywords  map[string]Canonical
	symbols   map[string]Canonical
	spellings map[Canonical]string
}

// dialectFile is the on-disk representation of a table.
type dialectFile struct {
	Name       string               `yaml:"name"`
	Permissive bool                 `yaml:"permissive"`
	Keywords   map[string]Canonical `yaml:"keywords"`
	Symbols    map[string]Canonical `yaml:"symbols"`
}

// Names returns the names of the built-in dialects, sorted.
func Names() []string {
	entries, err := tables.ReadDir("tables")
	if err != nil {
		panic(fmt.Errorf("read embedded tables: %w", err)) // Should never happen.
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load returns the built-in dialect with the given name.
func Load(name string) (*Dialect, error) {
	data, err := tables.ReadFile("tables/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("dialect %q: %w", name, ErrUnknownDialect)
	}
	return Parse(bytes.NewReader(data))
}

// LoadFile reads a dialect table from disk.
func LoadFile(filename string) (*Dialect, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open dialect %q: %w", filename, err)
	}
	defer func() { _ = f.Close() }() // Best effort.

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", filename, err)
	}
	return d, nil
}

// Parse decodes and validates a YAML dialect table.
func Parse(r io.Reader) (*Dialect, error) {
	var raw dialectFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("dialect: decode: %w", err)
	}
	return raw.toDialect()
}

func (f dialectFile) toDialect() (*Dialect, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("dialect: missing name: %w", ErrInvalidDialect)
	}
	d := &Dialect{
		Name:       f.Name,
		Permissive: f.Permissive,
		keywords:   make(map[string]Canonical, len(f.Keywords)),
		symbols:    make(map[string]Canonical, len(f.Symbols)),
		spellings:  make(map[Canonical]string, len(f.Keywords)+len(f.Symbols)),
	}

	add := func(spelling string, c Canonical, valid func(string) bool, dst map[string]Canonical) error {
		if _, ok := canonicals[c]; !ok {
			return fmt.Errorf("dialect %s: %q maps to unknown production %q: %w", f.Name, spelling, c, ErrInvalidDialect)
		}
		if !valid(spelling) {
			return fmt.Errorf("dialect %s: malformed spelling %q: %w", f.Name, spelling, ErrInvalidDialect)
		}
		if prev, ok := d.spellings[c]; ok {
			return fmt.Errorf("dialect %s: %q spelled both %q and %q: %w", f.Name, c, prev, spelling, ErrInvalidDialect)
		}
		dst[spelling] = c
		d.spellings[c] = spelling
		return nil
	}

	// Sort for deterministic error messages.
	for _, k := range sortedKeys(f.Keywords) {
		if err := add(k, f.Keywords[k], isWord, d.keywords); err != nil {
			return nil, err
		}
	}
	for _, k := range sortedKeys(f.Symbols) {
		if err := add(k, f.Symbols[k], isSymbol, d.symbols); err != nil {
			return nil, err
		}
	}

	if _, ok := d.spellings[End]; !ok {
		return nil, fmt.Errorf("dialect %s: no spelling for %q: %w", f.Name, End, ErrInvalidDialect)
	}
	_, hasAssign := d.spellings[Assign]
	_, hasSet := d.spellings[Set]
	if !hasAssign && !hasSet {
		return nil, fmt.Errorf("dialect %s: no assignment form: %w", f.Name, ErrInvalidDialect)
	}
	return d, nil
}

// Keyword looks up a word.
func (d *Dialect) Keyword(word string) (Canonical, bool) {
	c, ok := d.keywords[word]
	return c, ok
}

// Symbol looks up an operator spelling.
func (d *Dialect) Symbol(sym string) (Canonical, bool) {
	c, ok := d.symbols[sym]
	return c, ok
}

// Spelling returns how the dialect writes c, or c itself when it has no spelling.
func (d *Dialect) Spelling(c Canonical) string {
	if s, ok := d.spellings[c]; ok {
		return s
	}
	return string(c)
}

// Has reports whether the dialect spells c at all.
func (d *Dialect) Has(c Canonical) bool {
	_, ok := d.spellings[c]
	return ok
}

func (d *Dialect) String() string { return d.Name }

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func isSymbol(s string) bool {
	if s == "" || len(s) > 2 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(OperatorRunes, r) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]Canonical) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
