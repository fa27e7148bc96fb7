package symmetry

import "github.com/specc-lang/specc/runtime/state"

// ValueSite is one handle in the packed state whose encoded value,
// when equal to x+1 or y+1, swap_S must rewrite (§4.12 (b): "updates
// stored values of type S whose current value is x or y").
type ValueSite struct {
	Offset, Width int
}

// ArraySite is one array-valued state field indexed by the scalarset
// type: ElemOffset is the base offset of element 0, ElemWidth is one
// element's width, and Count is the array length (the scalarset's
// bound). swap_S exchanges the two whole element blocks at indices
// x and y (§4.12 (a)).
type ArraySite struct {
	ElemOffset, ElemWidth, Count int
}

// Plan describes, for one named Scalarset type, every place in the
// packed state layout a swap of two of its values must touch.
type Plan struct {
	Bound  int
	Values []ValueSite
	Arrays []ArraySite
}

// Swap exchanges scalarset values x and y (0-based) throughout s
// according to p, the runtime realization of codegen's emitted swap_S.
func Swap(s *state.State, p Plan, x, y int) {
	if x == y {
		return
	}
	for _, a := range p.Arrays {
		swapArrayElements(s, a, x, y)
	}
	xEnc := uint64(x + 1)
	yEnc := uint64(y + 1)
	for _, v := range p.Values {
		h := state.Handle{Base: s, Offset: v.Offset, Width: v.Width}
		raw := rawValue(h)
		switch raw {
		case xEnc:
			setRawValue(h, yEnc)
		case yEnc:
			setRawValue(h, xEnc)
		}
	}
}

func swapArrayElements(s *state.State, a ArraySite, x, y int) {
	hx := state.Handle{Base: s, Offset: a.ElemOffset + x*a.ElemWidth, Width: a.ElemWidth}
	hy := state.Handle{Base: s, Offset: a.ElemOffset + y*a.ElemWidth, Width: a.ElemWidth}
	vx := rawValue(hx)
	vy := rawValue(hy)
	setRawValue(hx, vy)
	setRawValue(hy, vx)
}

// rawValue/setRawValue read and write a handle's encoded bits directly
// (including the undefined-marker zero), unlike state.Handle.Read/
// Write which decode/encode against a lower bound — swap_S moves the
// encoded bit pattern verbatim regardless of what it decodes to.
func rawValue(h state.Handle) uint64 {
	v, err := h.Read(0)
	if err != nil {
		return 0
	}
	// v decoded as (encoded-1)-0; recover the raw encoding Read consumed.
	return uint64(v) + 1
}

func setRawValue(h state.Handle, raw uint64) {
	if raw == 0 {
		h.Clear()
		return
	}
	_ = h.Write(int64(raw)-1, 0, int64(raw))
}
