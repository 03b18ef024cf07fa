package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cbc-lang/cbc/pkg/source"
	"github.com/cbc-lang/cbc/pkg/util"
)

func TestTablePins(t *testing.T) {
	tbl := NewILP32()
	cases := []struct {
		typ    *Type
		name   string
		size   int64
		signed bool
	}{
		{tbl.SignedChar(), "char", 1, true},
		{tbl.SignedShort(), "short", 2, true},
		{tbl.SignedInt(), "int", 4, true},
		{tbl.SignedLong(), "long", 4, true},
		{tbl.UnsignedChar(), "unsigned char", 1, false},
		{tbl.UnsignedShort(), "unsigned short", 2, false},
		{tbl.UnsignedInt(), "unsigned int", 4, false},
		{tbl.UnsignedLong(), "unsigned long", 4, false},
	}
	for _, c := range cases {
		if !c.typ.IsInteger() {
			t.Fatalf("%s: not an integer type", c.name)
		}
		if c.typ.Name != c.name || c.typ.Size() != c.size || c.typ.Signed != c.signed {
			t.Errorf("%s: got (%q, %d, %v)", c.name, c.typ.Name, c.typ.Size(), c.typ.Signed)
		}
	}
	if got := tbl.PtrDiffType(); !got.IsSameType(tbl.SignedLong()) {
		t.Errorf("ptrdiff type = %s, want long", got)
	}
	if tbl.PointerSize() != 4 {
		t.Errorf("pointer size = %d, want 4", tbl.PointerSize())
	}
}

func TestPlatformSizes(t *testing.T) {
	cases := []struct {
		name                    string
		tbl                     *Table
		intSize, longSize, ptrSize int64
	}{
		{"ilp32", NewILP32(), 4, 4, 4},
		{"lp64", NewLP64(), 4, 8, 8},
		{"ilp64", NewILP64(), 8, 8, 8},
		{"llp64", NewLLP64(), 4, 4, 8},
	}
	for _, c := range cases {
		if got := c.tbl.SignedInt().Size(); got != c.intSize {
			t.Errorf("%s: int size = %d, want %d", c.name, got, c.intSize)
		}
		if got := c.tbl.SignedLong().Size(); got != c.longSize {
			t.Errorf("%s: long size = %d, want %d", c.name, got, c.longSize)
		}
		if got := c.tbl.PointerSize(); got != c.ptrSize {
			t.Errorf("%s: pointer size = %d, want %d", c.name, got, c.ptrSize)
		}
	}
}

func TestPredicates(t *testing.T) {
	tbl := NewILP32()
	intT := tbl.SignedInt()
	ptr := tbl.PointerTo(intT)
	arr := tbl.ArrayOf(intT, 4)
	incomplete := tbl.IncompleteArrayOf(intT)
	st := NewStruct("point", []Member{{Name: "x", Type: intT}, {Name: "y", Type: intT}})

	if !intT.IsScalar() || !ptr.IsScalar() || !arr.IsScalar() {
		t.Error("integer, pointer and array must all be scalar")
	}
	if st.IsScalar() || tbl.VoidType().IsScalar() {
		t.Error("struct and void must not be scalar")
	}
	if !ptr.IsDereferable() || !arr.IsDereferable() || intT.IsDereferable() {
		t.Error("dereferable must cover pointers and arrays only")
	}
	if ptr.IsArray() || !arr.IsArray() {
		t.Error("IsArray must distinguish arrays from pointers")
	}
	if !arr.IsAllocatedArray() || arr.IsIncompleteArray() {
		t.Error("sized array must be allocated")
	}
	if incomplete.IsAllocatedArray() || !incomplete.IsIncompleteArray() {
		t.Error("unsized array must be incomplete")
	}
	nested := tbl.ArrayOf(incomplete, 2)
	if nested.IsAllocatedArray() {
		t.Error("array of incomplete array must not be allocated")
	}
}

func TestSizes(t *testing.T) {
	tbl := NewILP32()
	intT := tbl.SignedInt()
	charT := tbl.SignedChar()

	if got := tbl.ArrayOf(intT, 3).Size(); got != 12 {
		t.Errorf("int[3] size = %d, want 12", got)
	}
	// char + int packs to 8 with int alignment.
	st := NewStruct("s", []Member{{Name: "c", Type: charT}, {Name: "i", Type: intT}})
	if got := st.Size(); got != 8 {
		t.Errorf("struct{char;int} size = %d, want 8", got)
	}
	if got := st.Alignment(); got != 4 {
		t.Errorf("struct{char;int} alignment = %d, want 4", got)
	}
	un := NewUnion("u", []Member{{Name: "c", Type: charT}, {Name: "i", Type: intT}})
	if got := un.Size(); got != 4 {
		t.Errorf("union{char;int} size = %d, want 4", got)
	}
	if got := tbl.VoidType().Size(); got != 1 {
		t.Errorf("void size = %d, want 1", got)
	}
}

func TestIntegerDomains(t *testing.T) {
	tbl := NewILP32()
	cases := []struct {
		typ   *Type
		value int64
		want  bool
	}{
		{tbl.SignedChar(), 0, true},
		{tbl.SignedChar(), 127, true},
		{tbl.SignedChar(), 128, false},
		{tbl.SignedChar(), -128, true},
		{tbl.SignedChar(), -129, false},
		{tbl.SignedChar(), 300, false},
		{tbl.UnsignedChar(), 255, true},
		{tbl.UnsignedChar(), 256, false},
		{tbl.UnsignedChar(), -1, false},
		{tbl.SignedShort(), 32767, true},
		{tbl.SignedShort(), 32768, false},
		{tbl.SignedInt(), -2147483648, true},
		{tbl.SignedInt(), 2147483648, false},
		{tbl.UnsignedInt(), 4294967295, true},
		{tbl.UnsignedInt(), 4294967296, false},
	}
	for _, c := range cases {
		if got := c.typ.IsInDomain(c.value); got != c.want {
			t.Errorf("%s.IsInDomain(%d) = %v, want %v", c.typ, c.value, got, c.want)
		}
	}
	// 8-byte types hold every int64 the literal carrier can.
	lp64 := NewLP64()
	if !lp64.SignedLong().IsInDomain(1 << 62) {
		t.Error("64-bit long must hold 1<<62")
	}
	if lp64.UnsignedLong().IsInDomain(-1) {
		t.Error("unsigned long must reject negative values")
	}
}

func TestRelationLaws(t *testing.T) {
	tbl := NewILP32()
	intT := tbl.SignedInt()
	st := NewStruct("point", []Member{{Name: "x", Type: intT}})
	fn := NewFunction(intT, []*Type{intT}, false)
	samples := []*Type{
		tbl.VoidType(),
		tbl.SignedChar(), tbl.SignedInt(), tbl.SignedLong(),
		tbl.UnsignedInt(), tbl.UnsignedLong(),
		tbl.PointerTo(intT), tbl.PointerTo(tbl.VoidType()),
		tbl.ArrayOf(intT, 4), tbl.IncompleteArrayOf(intT),
		st, NewUnion("u", []Member{{Name: "i", Type: intT}}),
		fn, tbl.PointerTo(fn),
	}
	// IsSameType implies IsCompatible implies IsCastableTo.
	for _, a := range samples {
		for _, b := range samples {
			if a.IsSameType(b) && !a.IsCompatible(b) {
				t.Errorf("%s same as %s but not compatible", a, b)
			}
			if a.IsCompatible(b) && !a.IsCastableTo(b) {
				t.Errorf("%s compatible with %s but not castable", a, b)
			}
		}
		if !a.IsSameType(a) {
			t.Errorf("%s not same as itself", a)
		}
	}
}

func TestCompatibility(t *testing.T) {
	tbl := NewILP32()
	intT, longT, charT := tbl.SignedInt(), tbl.SignedLong(), tbl.SignedChar()
	voidPtr := tbl.PointerTo(tbl.VoidType())
	intPtr := tbl.PointerTo(intT)
	charPtr := tbl.PointerTo(charT)

	if !charT.IsCompatible(intT) {
		t.Error("char must be compatible with int")
	}
	if intT.IsCompatible(charT) {
		t.Error("int must not be compatible with char")
	}
	if !intT.IsCompatible(longT) || longT.IsCompatible(charT) {
		t.Error("integer compatibility must follow size ordering")
	}
	if !intPtr.IsCompatible(voidPtr) || !voidPtr.IsCompatible(intPtr) {
		t.Error("void* must be compatible with any pointer, both ways")
	}
	if intPtr.IsCompatible(charPtr) {
		t.Error("int* must not be compatible with char*")
	}
	if !tbl.ArrayOf(intT, 4).IsCompatible(intPtr) {
		t.Error("int[4] must decay compatible to int*")
	}
	if !intT.IsCastableTo(intPtr) || !intPtr.IsCastableTo(intT) {
		t.Error("integer and pointer must be mutually castable")
	}
	st := NewStruct("point", nil)
	if intT.IsCastableTo(st) {
		t.Error("int must not be castable to a struct")
	}
}

func TestFunctionDecay(t *testing.T) {
	tbl := NewILP32()
	intT := tbl.SignedInt()
	fn := NewFunction(intT, []*Type{intT}, false)
	fnPtr := tbl.PointerTo(fn)
	otherPtr := tbl.PointerTo(NewFunction(intT, nil, false))

	if !fn.IsCompatible(fnPtr) {
		t.Error("a function designator must decay compatible to a pointer to itself")
	}
	if !fn.IsCastableTo(fnPtr) {
		t.Error("a function designator must be castable to a pointer to itself")
	}
	if fn.IsCompatible(otherPtr) {
		t.Error("decay must require the pointed-to signature to match")
	}
	if fnPtr.IsCompatible(fn) {
		t.Error("a function pointer does not stand for a bare designator")
	}
	if fn.IsCompatible(intT) || fn.IsCastableTo(intT) {
		t.Error("a function type never converts to an integer")
	}
}

func TestMinMaxValues(t *testing.T) {
	tbl := NewILP32()
	cases := []struct {
		typ      *Type
		min, max int64
	}{
		{tbl.SignedChar(), -128, 127},
		{tbl.UnsignedChar(), 0, 255},
		{tbl.SignedShort(), -32768, 32767},
		{tbl.UnsignedShort(), 0, 65535},
		{tbl.SignedInt(), -2147483648, 2147483647},
		{tbl.UnsignedInt(), 0, 4294967295},
	}
	for _, c := range cases {
		if got := c.typ.MinValue(); got != c.min {
			t.Errorf("%s.MinValue() = %d, want %d", c.typ, got, c.min)
		}
		if got := c.typ.MaxValue(); got != c.max {
			t.Errorf("%s.MaxValue() = %d, want %d", c.typ, got, c.max)
		}
		if !c.typ.IsInDomain(c.min) || !c.typ.IsInDomain(c.max) {
			t.Errorf("%s must contain its own bounds", c.typ)
		}
	}
	// 8-byte types span the whole literal carrier.
	lp64 := NewLP64()
	if got := lp64.SignedLong().MinValue(); got != -9223372036854775808 {
		t.Errorf("64-bit long MinValue = %d", got)
	}
	if got := lp64.SignedLong().MaxValue(); got != 9223372036854775807 {
		t.Errorf("64-bit long MaxValue = %d", got)
	}
	if got := lp64.UnsignedLong().MinValue(); got != 0 {
		t.Errorf("64-bit unsigned long MinValue = %d", got)
	}
}

func TestSemanticCheck(t *testing.T) {
	tbl := NewILP32()
	loc := source.NewLocation("t.cb", 1, 1)
	intT := tbl.SignedInt()

	dup := NewStruct("dup", []Member{
		{Name: "x", Type: intT, Loc: loc},
		{Name: "x", Type: intT, Loc: loc},
	})
	withVoid := NewStruct("v", []Member{{Name: "v", Type: tbl.VoidType(), Loc: loc}})
	rec := NewStruct("rec", nil)
	rec.Members = []Member{{Name: "next", Type: rec, Loc: loc}}
	viaPtr := NewStruct("list", nil)
	viaPtr.Members = []Member{{Name: "next", Type: tbl.PointerTo(viaPtr), Loc: loc}}
	for _, st := range []*Type{dup, withVoid, rec, viaPtr} {
		tbl.Define(st)
	}

	h := util.NewErrorHandler(nil)
	tbl.SemanticCheck(h)

	var got []string
	for _, d := range h.Diagnostics() {
		got = append(got, d.Message)
	}
	want := []string{
		"duplicated member: x",
		"struct/union cannot contain void",
		"recursive type definition: struct rec",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}
