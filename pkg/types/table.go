package types

import (
	"fmt"

	"github.com/cbc-lang/cbc/pkg/source"
	"github.com/cbc-lang/cbc/pkg/util"
)

// Ref is the syntactic name a declaration refers to a type by, before
// resolution ("int", "unsigned long", "struct point").
type Ref string

const (
	charSize  = 1
	shortSize = 2
)

// Table maps type references to canonical types and pins the platform
// integer types the semantic passes derive results from. It is built
// before type checking runs and read-only afterwards.
type Table struct {
	intSize     int64
	longSize    int64
	pointerSize int64
	table       map[Ref]*Type
	refs        []Ref
}

// NewILP32 builds the table for 32-bit int/long/pointer platforms.
func NewILP32() *Table { return newTable(4, 4, 4) }

// NewLP64 builds the table for 32-bit int, 64-bit long/pointer platforms.
func NewLP64() *Table { return newTable(4, 8, 8) }

// NewILP64 builds the table for 64-bit int/long/pointer platforms.
func NewILP64() *Table { return newTable(8, 8, 8) }

// NewLLP64 builds the table for 32-bit int/long, 64-bit pointer platforms.
func NewLLP64() *Table { return newTable(4, 4, 8) }

func newTable(intSize, longSize, pointerSize int64) *Table {
	t := &Table{
		intSize:     intSize,
		longSize:    longSize,
		pointerSize: pointerSize,
		table:       make(map[Ref]*Type),
	}
	t.define("void", &Type{Kind: KindVoid})
	t.defineInt("char", charSize, true)
	t.defineInt("short", shortSize, true)
	t.defineInt("int", intSize, true)
	t.defineInt("long", longSize, true)
	t.defineInt("unsigned char", charSize, false)
	t.defineInt("unsigned short", shortSize, false)
	t.defineInt("unsigned int", intSize, false)
	t.defineInt("unsigned long", longSize, false)
	return t
}

func (t *Table) defineInt(name string, size int64, signed bool) {
	t.define(Ref(name), &Type{Kind: KindInteger, Name: name, ByteSize: size, Signed: signed})
}

func (t *Table) define(ref Ref, typ *Type) {
	t.table[ref] = typ
	t.refs = append(t.refs, ref)
}

// Define registers a struct or union type under its tagged reference
// ("struct point"). Redefinition is the resolver's problem; the table
// keeps the last definition.
func (t *Table) Define(typ *Type) {
	switch typ.Kind {
	case KindStruct:
		t.define(Ref("struct "+typ.Name), typ)
	case KindUnion:
		t.define(Ref("union "+typ.Name), typ)
	default:
		panic(fmt.Sprintf("Define called for non-composite type: %s", typ))
	}
}

// Get returns the canonical type for ref. Resolution has already bound
// every reference the AST carries, so an unknown ref is a bug.
func (t *Table) Get(ref Ref) *Type {
	typ, ok := t.table[ref]
	if !ok {
		panic(fmt.Sprintf("unknown type reference: %s", ref))
	}
	return typ
}

func (t *Table) VoidType() *Type      { return t.Get("void") }
func (t *Table) SignedChar() *Type    { return t.Get("char") }
func (t *Table) SignedShort() *Type   { return t.Get("short") }
func (t *Table) SignedInt() *Type     { return t.Get("int") }
func (t *Table) SignedLong() *Type    { return t.Get("long") }
func (t *Table) UnsignedChar() *Type  { return t.Get("unsigned char") }
func (t *Table) UnsignedShort() *Type { return t.Get("unsigned short") }
func (t *Table) UnsignedInt() *Type   { return t.Get("unsigned int") }
func (t *Table) UnsignedLong() *Type  { return t.Get("unsigned long") }

// PtrDiffTypeRef is the reference of the signed integer type pointer
// differences and pointer-scaling multipliers are carried in.
func (t *Table) PtrDiffTypeRef() Ref { return Ref("long") }

func (t *Table) PtrDiffType() *Type { return t.Get(t.PtrDiffTypeRef()) }

func (t *Table) PointerSize() int64 { return t.pointerSize }

// PointerTo builds a platform-sized pointer to base.
func (t *Table) PointerTo(base *Type) *Type {
	return &Type{Kind: KindPointer, ByteSize: t.pointerSize, Base: base}
}

// ArrayOf builds an allocated array type.
func (t *Table) ArrayOf(base *Type, length int64) *Type {
	return &Type{Kind: KindArray, Base: base, Length: length, HasLength: true}
}

// IncompleteArrayOf builds an array type with no declared length.
func (t *Table) IncompleteArrayOf(base *Type) *Type {
	return &Type{Kind: KindArray, Base: base}
}

// SemanticCheck validates every registered composite type: duplicated
// members, void members, and recursive (non-pointer) definitions.
func (t *Table) SemanticCheck(h *util.ErrorHandler) {
	marks := make(map[*Type]int)
	for _, ref := range t.refs {
		typ := t.table[ref]
		if !typ.IsCompositeType() {
			continue
		}
		t.checkVoidMembers(typ, h)
		t.checkDuplicatedMembers(typ, h)
		t.checkRecursiveDefinition(typ, marks, h)
	}
}

func (t *Table) checkVoidMembers(typ *Type, h *util.ErrorHandler) {
	for _, m := range typ.Members {
		switch {
		case m.Type.IsVoid():
			h.Error(m.Loc, "struct/union cannot contain void")
		case m.Type.IsArray() && m.Type.Base.IsVoid():
			h.Error(m.Loc, "array cannot contain void")
		}
	}
}

func (t *Table) checkDuplicatedMembers(typ *Type, h *util.ErrorHandler) {
	seen := make(map[string]bool)
	for _, m := range typ.Members {
		if seen[m.Name] {
			h.Error(m.Loc, "duplicated member: %s", m.Name)
			continue
		}
		seen[m.Name] = true
	}
}

const (
	checking = 1
	checked  = 2
)

func (t *Table) checkRecursiveDefinition(typ *Type, marks map[*Type]int, h *util.ErrorHandler) {
	switch marks[typ] {
	case checked:
		return
	case checking:
		h.Error(memberLoc(typ), "recursive type definition: %s", typ)
		return
	}
	marks[typ] = checking
	switch typ.Kind {
	case KindStruct, KindUnion:
		for _, m := range typ.Members {
			t.checkRecursiveDefinition(m.Type, marks, h)
		}
	case KindArray:
		t.checkRecursiveDefinition(typ.Base, marks, h)
	}
	marks[typ] = checked
}

func memberLoc(typ *Type) (loc source.Location) {
	if len(typ.Members) > 0 {
		loc = typ.Members[0].Loc
	}
	return
}
