package layer

// PrintFunc is a printf-style output function, e.g. fmt.Printf.
type PrintFunc func(format string, a ...any) (int, error)

// SpecsFunc prints the layer specific configuration of l.
type SpecsFunc func(l Layer, printf PrintFunc)

// Type identifies a kind of layer at run time.
//
// A Type is used for introspection and debugging only, never for dispatch.
// Identity is the pointer: every layer kind has exactly one *Type.
// Name and PrintSpecs are only populated in builds with the emberdebug tag;
// otherwise both are zero and PrintSpecs is a no-op.
type Type struct {
	Name       string
	PrintSpecs SpecsFunc
}

// NewType creates the type descriptor for a layer kind.
func NewType(name string, specs SpecsFunc) *Type {
	if !Debug {
		return &Type{}
	}
	return &Type{Name: name, PrintSpecs: specs}
}

// String returns the type name, or "layer" when introspection is compiled out.
func (t *Type) String() string {
	if t == nil || t.Name == "" {
		return "layer"
	}
	return t.Name
}

// PrintSpecs prints the type name and the layer specific configuration of l.
// Does nothing unless built with the emberdebug tag.
func PrintSpecs(l Layer, printf PrintFunc) {
	t := l.Base().Type
	if t == nil || t.Name == "" {
		return
	}
	_, _ = printf("%s", t.Name)
	if t.PrintSpecs != nil {
		_, _ = printf(" (")
		t.PrintSpecs(l, printf)
		_, _ = printf(")")
	}
	_, _ = printf("\n")
}
