package style

// Input describes one node to resolve.
type Input struct {
	// Chain runs from the root to the node being resolved.
	Chain []Elem

	// Sheets[i] names the sheets attached at Chain[i], in attachment order.
	// A sheet applies to the node it is attached at and its descendants.
	Sheets [][]string

	// Inline declarations win over every sheet rule.
	Inline []Decl

	// Parent is the resolved style of Chain[len-2], nil for the root.
	Parent *Computed
}

// Result is the outcome of resolving one node.
type Result struct {
	Computed Computed

	// Fallbacks counts winning declarations whose value could not be
	// used. The property kept its inherited or default value instead.
	Fallbacks int

	// MissingSheets counts attached sheet names that are not registered.
	MissingSheets int
}

// Cascade resolves node styles against the sheets of a registry.
type Cascade struct {
	reg *Registry
}

// NewCascade creates a cascade over reg.
func NewCascade(reg *Registry) *Cascade {
	return &Cascade{reg: reg}
}

// Registry returns the registry the cascade reads.
func (c *Cascade) Registry() *Registry {
	return c.reg
}

type winner struct {
	decl *Decl
	spec uint32
}

// Resolve computes the style of the last node of in.Chain.
//
// Per property the winning declaration is the one with the highest
// specificity. Ties go to the sheet attached deeper on the chain, then to
// the later sheet at the same node, then to the later rule and declaration.
// Inline declarations beat all of them. Unset inherited properties take
// the parent's value and everything else takes its default.
func (c *Cascade) Resolve(in Input) Result {
	var res Result
	var wins [numProps]winner

	// Iteration order is (depth, sheet, rule, declaration) ascending, so
	// ">=" hands ties to the later candidate.
	for depth := 0; depth < len(in.Sheets) && depth < len(in.Chain); depth++ {
		for _, name := range in.Sheets[depth] {
			rules, ok := c.reg.Rules(name)
			if !ok {
				res.MissingSheets++
				continue
			}
			for ri := range rules {
				r := &rules[ri]
				if !r.Selector.Match(in.Chain) {
					continue
				}
				spec := r.Selector.Specificity()
				for di := range r.Decls {
					d := &r.Decls[di]
					if w := wins[d.Prop]; w.decl == nil || spec >= w.spec {
						wins[d.Prop] = winner{decl: d, spec: spec}
					}
				}
			}
		}
	}
	for i := range in.Inline {
		d := &in.Inline[i]
		wins[d.Prop] = winner{decl: d, spec: ^uint32(0)}
	}

	res.Computed = initial(in.Parent)
	for p := Property(0); p < numProps; p++ {
		w := wins[p]
		if w.decl == nil {
			continue
		}
		if err := props[p].apply(&res.Computed, w.decl.Value, in.Parent); err != nil {
			res.Fallbacks++
		}
	}
	return res
}
