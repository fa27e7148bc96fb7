package ast

import (
	"fmt"
	"math/big"
)

// TypeExpr is the tagged union of type expressions: Range, Enum and
// Scalarset are simple (scalar) types; Array and Record are composite;
// TypeExprID is a reference to a named TypeDecl, resolved during
// symbol resolution.
type TypeExpr interface {
	Node
	isTypeExpr()
}

// RangeType is an inclusive integer range [Min, Max].
type RangeType struct {
	Base
	Min, Max *big.Int
}

func (*RangeType) isTypeExpr() {}

// EnumType is an ordered, named set of members. Order matters: it
// defines each member's encoded value and the iteration order a
// quantifier over this type uses.
type EnumType struct {
	Base
	Members []string
}

func (*EnumType) isTypeExpr() {}

// ScalarsetType is an index type of Bound interchangeable elements.
// Unlike Range, values of a Scalarset type may never be compared for
// order, printed numerically, or have arithmetic applied — only
// equality and array indexing — which is what makes the type eligible
// for symmetry reduction.
type ScalarsetType struct {
	Base
	Bound *big.Int
}

func (*ScalarsetType) isTypeExpr() {}

// ArrayType is Element indexed by Index. Index must be a Range, Enum
// or Scalarset (enforced by the validator, not by this type).
type ArrayType struct {
	Base
	Index   TypeExpr
	Element TypeExpr
}

func (*ArrayType) isTypeExpr() {}

// RecordField is one named, ordered member of a RecordType.
type RecordField struct {
	Name string
	Type TypeExpr
}

// RecordType is an ordered set of uniquely named fields.
type RecordType struct {
	Base
	Fields []RecordField
}

func (*RecordType) isTypeExpr() {}

// TypeExprID is a reference to a type introduced by a TypeDecl
// elsewhere in scope. Decl is nil until symbol resolution runs; after
// resolution it is non-nil.
type TypeExprID struct {
	Base
	Name string
	Decl *TypeDecl
}

func (*TypeExprID) isTypeExpr() {}

// IsSimple reports whether t is a Range, Enum or Scalarset (directly,
// or through a chain of TypeExprID references) — i.e. whether values
// of this type can be compared and assigned as plain integers rather
// than requiring a byte-wise structural comparison.
func IsSimple(t TypeExpr) bool {
	switch tt := t.(type) {
	case *RangeType, *EnumType, *ScalarsetType:
		return true
	case *TypeExprID:
		if tt.Decl == nil {
			return false
		}
		return IsSimple(tt.Decl.Type)
	default:
		return false
	}
}

// Width returns the number of bits needed to encode t, following
// §3's rule: Range/Enum/Scalarset reserve the zero encoding for
// "undefined", so width is the number of bits needed for (count of
// distinct values) + 1. Array width is index.count * element.width;
// Record width is the sum of its field widths.
func Width(t TypeExpr) (int, error) {
	switch tt := t.(type) {
	case *RangeType:
		count := new(big.Int).Sub(tt.Max, tt.Min)
		count.Add(count, big.NewInt(1))
		return bitsFor(count), nil
	case *EnumType:
		return bitsFor(big.NewInt(int64(len(tt.Members)))), nil
	case *ScalarsetType:
		return bitsFor(tt.Bound), nil
	case *ArrayType:
		count, err := Count(tt.Index)
		if err != nil {
			return 0, err
		}
		ew, err := Width(tt.Element)
		if err != nil {
			return 0, err
		}
		return count * ew, nil
	case *RecordType:
		total := 0
		for _, f := range tt.Fields {
			w, err := Width(f.Type)
			if err != nil {
				return 0, err
			}
			total += w
		}
		return total, nil
	case *TypeExprID:
		if tt.Decl == nil {
			return 0, fmt.Errorf("ast: unresolved type reference %q", tt.Name)
		}
		return Width(tt.Decl.Type)
	default:
		return 0, fmt.Errorf("ast: unknown type expression %T", t)
	}
}

// Count returns the number of distinct values an index type (Range,
// Enum or Scalarset) admits.
func Count(t TypeExpr) (int, error) {
	switch tt := t.(type) {
	case *RangeType:
		count := new(big.Int).Sub(tt.Max, tt.Min)
		count.Add(count, big.NewInt(1))
		return int(count.Int64()), nil
	case *EnumType:
		return len(tt.Members), nil
	case *ScalarsetType:
		return int(tt.Bound.Int64()), nil
	case *TypeExprID:
		if tt.Decl == nil {
			return 0, fmt.Errorf("ast: unresolved type reference %q", tt.Name)
		}
		return Count(tt.Decl.Type)
	default:
		return 0, fmt.Errorf("ast: %T is not an index type", t)
	}
}

// bitsFor returns the minimum number of bits that can represent the
// integers [0, count], i.e. ceil(log2(count+1)).
func bitsFor(count *big.Int) int {
	n := new(big.Int).Set(count)
	bits := 0
	for n.Sign() > 0 {
		bits++
		n.Rsh(n, 1)
	}
	if bits == 0 {
		bits = 1
	}
	return bits
}
