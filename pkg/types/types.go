// Package types defines the C-subset type system: the closed set of type
// variants, their predicates, and the relations the semantic passes are
// built on.
package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/cbc-lang/cbc/pkg/source"
	"github.com/cbc-lang/cbc/pkg/util"
)

// Kind discriminates the type variants.
type Kind int

const (
	KindVoid Kind = iota
	KindInteger
	KindPointer
	KindArray
	KindStruct
	KindUnion
	KindFunction
)

// Member is one field of a struct or union.
type Member struct {
	Name string
	Type *Type
	Loc  source.Location
}

// Type is one node of the type graph. Which fields are meaningful depends
// on Kind; the constructors on Table are the only intended way to build
// integer, pointer, and array types so that platform sizes stay consistent.
type Type struct {
	Kind Kind

	// Integer spelling ("unsigned long") or composite tag.
	Name string

	// Integers and pointers.
	ByteSize int64
	Signed   bool

	// Pointers and arrays.
	Base *Type

	// Arrays. HasLength is false for an incomplete array ("int a[]").
	Length    int64
	HasLength bool

	// Structs and unions.
	Members []Member

	// Functions.
	Return   *Type
	Params   []*Type
	Variadic bool
}

func (t *Type) IsVoid() bool     { return t.Kind == KindVoid }
func (t *Type) IsInteger() bool  { return t.Kind == KindInteger }
func (t *Type) IsSigned() bool   { return t.Kind == KindInteger && t.Signed }
func (t *Type) IsPointer() bool  { return t.Kind == KindPointer }
func (t *Type) IsArray() bool    { return t.Kind == KindArray }
func (t *Type) IsStruct() bool   { return t.Kind == KindStruct }
func (t *Type) IsUnion() bool    { return t.Kind == KindUnion }
func (t *Type) IsFunction() bool { return t.Kind == KindFunction }

// IsCompositeType reports whether t is a struct or union.
func (t *Type) IsCompositeType() bool { return t.Kind == KindStruct || t.Kind == KindUnion }

// IsDereferable reports whether the "*" operator applies: pointers, and
// arrays in operand positions where they decay.
func (t *Type) IsDereferable() bool { return t.Kind == KindPointer || t.Kind == KindArray }

// IsScalar reports whether t is an integer or a dereferable value.
func (t *Type) IsScalar() bool { return t.IsInteger() || t.IsDereferable() }

func (t *Type) IsCallable() bool {
	return t.Kind == KindFunction || (t.Kind == KindPointer && t.Base.Kind == KindFunction)
}

// IsAllocatedArray reports whether every array level has a known length.
func (t *Type) IsAllocatedArray() bool {
	if t.Kind != KindArray || !t.HasLength {
		return false
	}
	if t.Base.Kind == KindArray {
		return t.Base.IsAllocatedArray()
	}
	return true
}

// IsIncompleteArray reports whether t is an array some level of which has
// no length.
func (t *Type) IsIncompleteArray() bool {
	return t.Kind == KindArray && !t.IsAllocatedArray()
}

// BaseType returns the pointed-to or element type. It must only be called
// on dereferable types.
func (t *Type) BaseType() *Type {
	if !t.IsDereferable() {
		panic(fmt.Sprintf("BaseType() called for non-dereferable type: %s", t))
	}
	return t.Base
}

// Size returns the value size of t in bytes. An incomplete array has size
// 0; a function type has no size.
func (t *Type) Size() int64 {
	switch t.Kind {
	case KindVoid:
		return 1
	case KindInteger, KindPointer:
		return t.ByteSize
	case KindArray:
		if !t.HasLength {
			return 0
		}
		return t.Base.AllocSize() * t.Length
	case KindStruct:
		var size, maxAlign int64 = 0, 1
		for _, m := range t.Members {
			a := m.Type.Alignment()
			if a > maxAlign {
				maxAlign = a
			}
			size = util.AlignUp(size, a) + m.Type.AllocSize()
		}
		return util.AlignUp(size, maxAlign)
	case KindUnion:
		var size, maxAlign int64 = 0, 1
		for _, m := range t.Members {
			if a := m.Type.Alignment(); a > maxAlign {
				maxAlign = a
			}
			if s := m.Type.AllocSize(); s > size {
				size = s
			}
		}
		return util.AlignUp(size, maxAlign)
	}
	panic(fmt.Sprintf("Size() called for function type: %s", t))
}

// AllocSize is the size a value of t occupies in memory.
func (t *Type) AllocSize() int64 { return t.Size() }

// Alignment of a value of t.
func (t *Type) Alignment() int64 {
	switch t.Kind {
	case KindArray:
		return t.Base.Alignment()
	case KindStruct, KindUnion:
		var maxAlign int64 = 1
		for _, m := range t.Members {
			if a := m.Type.Alignment(); a > maxAlign {
				maxAlign = a
			}
		}
		return maxAlign
	}
	return t.Size()
}

// MinValue returns the smallest value representable in the integer type t.
func (t *Type) MinValue() int64 {
	bits := t.domainBits()
	if !t.Signed {
		return 0
	}
	if bits >= 64 {
		return math.MinInt64
	}
	return -(int64(1) << (bits - 1))
}

// MaxValue returns the largest value representable in the integer type t.
// For an 8-byte unsigned type this caps at the int64 literal carrier.
func (t *Type) MaxValue() int64 {
	bits := t.domainBits()
	if t.Signed {
		if bits >= 64 {
			return math.MaxInt64
		}
		return int64(1)<<(bits-1) - 1
	}
	if bits >= 64 {
		return math.MaxInt64
	}
	return int64(1)<<bits - 1
}

// IsInDomain reports whether the literal value v is representable in the
// integer type t.
func (t *Type) IsInDomain(v int64) bool {
	return v >= t.MinValue() && v <= t.MaxValue()
}

func (t *Type) domainBits() uint {
	if t.Kind != KindInteger {
		panic(fmt.Sprintf("value domain queried for non-integer type: %s", t))
	}
	return uint(t.ByteSize * 8)
}

// Member returns the named struct/union member, or nil.
func (t *Type) Member(name string) *Member {
	for i := range t.Members {
		if t.Members[i].Name == name {
			return &t.Members[i]
		}
	}
	return nil
}

// IsSameType is reflexive structural equality.
func (t *Type) IsSameType(o *Type) bool {
	if t == o {
		return true
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindVoid:
		return true
	case KindInteger:
		return t.Name == o.Name && t.ByteSize == o.ByteSize && t.Signed == o.Signed
	case KindPointer:
		return t.Base.IsSameType(o.Base)
	case KindArray:
		if t.HasLength != o.HasLength {
			return false
		}
		if t.HasLength && t.Length != o.Length {
			return false
		}
		return t.Base.IsSameType(o.Base)
	case KindStruct, KindUnion:
		return t.Name == o.Name
	case KindFunction:
		if t.Variadic != o.Variadic || len(t.Params) != len(o.Params) {
			return false
		}
		if !t.Return.IsSameType(o.Return) {
			return false
		}
		for i, p := range t.Params {
			if !p.IsSameType(o.Params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// IsCompatible reports whether a value of t can stand where an o-value is
// expected without a warning. The relation is directed: an integer is
// compatible with any integer at least as wide, so int is compatible with
// long, and long with int only where the two have the same size.
func (t *Type) IsCompatible(o *Type) bool {
	switch t.Kind {
	case KindInteger:
		return o.IsInteger() && t.ByteSize <= o.ByteSize
	case KindPointer:
		if !o.IsPointer() {
			return false
		}
		if t.Base.IsVoid() || o.Base.IsVoid() {
			return true
		}
		return t.Base.IsCompatible(o.Base)
	case KindArray:
		// Decay: an array stands for a pointer to its element type.
		if !o.IsPointer() && !o.IsArray() {
			return false
		}
		if o.Base.IsVoid() {
			return true
		}
		return t.Base.IsCompatible(o.Base)
	case KindFunction:
		// Decay: a function designator stands for a pointer to itself.
		if o.IsPointer() {
			return t.IsSameType(o.Base)
		}
		return t.IsSameType(o)
	case KindVoid, KindStruct, KindUnion:
		return t.IsSameType(o)
	}
	return false
}

// IsCastableTo is the broad convertibility relation, including
// warning-eligible conversions.
func (t *Type) IsCastableTo(target *Type) bool {
	switch t.Kind {
	case KindInteger:
		return target.IsInteger() || target.IsPointer()
	case KindPointer:
		return target.IsPointer() || target.IsInteger()
	case KindArray:
		return target.IsPointer() || target.IsInteger() || target.IsArray()
	case KindFunction:
		return target.IsPointer() || t.IsSameType(target)
	case KindVoid, KindStruct, KindUnion:
		return t.IsSameType(target)
	}
	return false
}

func (t *Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindInteger:
		return t.Name
	case KindPointer:
		return t.Base.String() + "*"
	case KindArray:
		if t.HasLength {
			return fmt.Sprintf("%s[%d]", t.Base, t.Length)
		}
		return t.Base.String() + "[]"
	case KindStruct:
		return "struct " + t.Name
	case KindUnion:
		return "union " + t.Name
	case KindFunction:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		if t.Variadic {
			params = append(params, "...")
		}
		return fmt.Sprintf("%s(%s)", t.Return, strings.Join(params, ", "))
	}
	return "unknown"
}

// AcceptsArgc tests callability with the given argument count.
func (t *Type) AcceptsArgc(argc int) bool {
	if t.Kind != KindFunction {
		panic(fmt.Sprintf("AcceptsArgc called for non-function type: %s", t))
	}
	if t.Variadic {
		return argc >= len(t.Params)
	}
	return argc == len(t.Params)
}

// NewFunction builds a function type.
func NewFunction(ret *Type, params []*Type, variadic bool) *Type {
	return &Type{Kind: KindFunction, Return: ret, Params: params, Variadic: variadic}
}

// NewStruct builds a struct type with the given tag and members.
func NewStruct(tag string, members []Member) *Type {
	return &Type{Kind: KindStruct, Name: tag, Members: members}
}

// NewUnion builds a union type with the given tag and members.
func NewUnion(tag string, members []Member) *Type {
	return &Type{Kind: KindUnion, Name: tag, Members: members}
}
