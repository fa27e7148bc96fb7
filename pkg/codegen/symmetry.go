package codegen

import (
	"fmt"
	"strings"

	"github.com/specc-lang/specc/pkg/ast"
)

// symmetrySite collects the ValueSite/ArraySite offsets one scalarset
// type occupies across the packed state, walked once per type at
// codegen time; runtime/symmetry.Swap itself needs nothing beyond
// these flat descriptions to permute a state in place.
type symmetrySite struct {
	values []valueSite
	arrays []arraySite
}

type valueSite struct{ offset, width int }
type arraySite struct{ elemOffset, elemWidth, count int }

// findSymmetrySites walks every state variable of m, recursively
// descending through Record/Array composites, recording a ValueSite
// for each scalar leaf of type td and an ArraySite for each array
// indexed by type td.
func findSymmetrySites(m *ast.Model, td *ast.TypeDecl) (*symmetrySite, error) {
	target, ok := td.Type.(*ast.ScalarsetType)
	if !ok {
		return nil, fmt.Errorf("codegen: %q is not a scalarset type", td.Name)
	}
	site := &symmetrySite{}
	for _, vd := range m.StateVars() {
		if err := walkSymmetry(vd.Offset, vd.Type, target, site); err != nil {
			return nil, err
		}
	}
	return site, nil
}

func walkSymmetry(offset int, typ ast.TypeExpr, target *ast.ScalarsetType, site *symmetrySite) error {
	switch t := underlying(typ).(type) {
	case *ast.ScalarsetType:
		if t == target {
			w, err := ast.Width(typ)
			if err != nil {
				return err
			}
			site.values = append(site.values, valueSite{offset, w})
		}
		return nil

	case *ast.RecordType:
		bitOff := offset
		for _, f := range t.Fields {
			w, err := ast.Width(f.Type)
			if err != nil {
				return err
			}
			if err := walkSymmetry(bitOff, f.Type, target, site); err != nil {
				return err
			}
			bitOff += w
		}
		return nil

	case *ast.ArrayType:
		count, err := ast.Count(t.Index)
		if err != nil {
			return err
		}
		ew, err := ast.Width(t.Element)
		if err != nil {
			return err
		}
		if idx, ok := underlying(t.Index).(*ast.ScalarsetType); ok && idx == target {
			site.arrays = append(site.arrays, arraySite{elemOffset: offset, elemWidth: ew, count: count})
		}
		for i := 0; i < count; i++ {
			if err := walkSymmetry(offset+i*ew, t.Element, target, site); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

// symmetryPlanIdent names the package-level runtime/symmetry.Plan
// variable generated for td.
func symmetryPlanIdent(td *ast.TypeDecl) string {
	return fmt.Sprintf("symmetryPlan_%s", sanitizeIdent(td.Name))
}

// emitSymmetryPlan renders td's Plan as a Go var declaration literal.
func emitSymmetryPlan(m *ast.Model, td *ast.TypeDecl) (string, error) {
	site, err := findSymmetrySites(m, td)
	if err != nil {
		return "", err
	}
	bound, err := ast.Count(td.Type)
	if err != nil {
		return "", fmt.Errorf("codegen: scalarset %q: %w", td.Name, err)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "var %s = symmetry.Plan{\n", symmetryPlanIdent(td))
	fmt.Fprintf(&out, "\tBound: %d,\n", bound)
	out.WriteString("\tValues: []symmetry.ValueSite{\n")
	for _, v := range site.values {
		fmt.Fprintf(&out, "\t\t{Offset: %d, Width: %d},\n", v.offset, v.width)
	}
	out.WriteString("\t},\n")
	out.WriteString("\tArrays: []symmetry.ArraySite{\n")
	for _, a := range site.arrays {
		fmt.Fprintf(&out, "\t\t{ElemOffset: %d, ElemWidth: %d, Count: %d},\n", a.elemOffset, a.elemWidth, a.count)
	}
	out.WriteString("\t},\n")
	out.WriteString("}\n")
	return out.String(), nil
}
