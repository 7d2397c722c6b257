package model

// WorkingType is the mutable form of a TypeRef used while a type expression
// is being parsed. Nothing outside the parser should hold on to one; call
// Freeze once parsing is finished.
type WorkingType struct {
	Name      string
	TypeArgs  []*WorkingType
	ArrayRank int
}

func NewWorkingType(name string) *WorkingType {
	return &WorkingType{Name: name}
}

// AddArg appends a new type argument and returns it.
func (w *WorkingType) AddArg(name string) *WorkingType {
	arg := NewWorkingType(name)
	w.TypeArgs = append(w.TypeArgs, arg)
	return arg
}

// LastAt walks down the chain of last type arguments depth times and returns
// the node it lands on. The walk stops early when a node has no arguments.
func (w *WorkingType) LastAt(depth int) *WorkingType {
	t := w
	for i := 0; i < depth; i++ {
		if len(t.TypeArgs) == 0 {
			break
		}
		t = t.TypeArgs[len(t.TypeArgs)-1]
	}
	return t
}

// Freeze converts the builder tree into an immutable TypeRef tree.
func (w *WorkingType) Freeze() *TypeRef {
	if w == nil {
		return &TypeRef{}
	}
	t := &TypeRef{
		Name:      w.Name,
		ArrayRank: w.ArrayRank,
	}
	if len(w.TypeArgs) > 0 {
		t.TypeArgs = make([]*TypeRef, 0, len(w.TypeArgs))
		for _, a := range w.TypeArgs {
			t.TypeArgs = append(t.TypeArgs, a.Freeze())
		}
	}
	return t
}
