package style

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Pseudo is a set of interaction states of a node.
type Pseudo uint8

const (
	PseudoHover Pseudo = 1 << iota
	PseudoFocus
	PseudoActive
	PseudoDisabled
)

var pseudoNames = map[string]Pseudo{
	"hover":    PseudoHover,
	"focus":    PseudoFocus,
	"active":   PseudoActive,
	"disabled": PseudoDisabled,
}

// ParsePseudo returns the state named by a pseudo-class without its colon.
// "enabled" is not a state of its own; it is the absence of "disabled".
func ParsePseudo(name string) (Pseudo, bool) {
	p, ok := pseudoNames[name]
	return p, ok
}

// Elem is what a selector sees of one node on the ancestor chain.
type Elem struct {
	Kind    string
	Classes []string
	Pseudo  Pseudo
}

// HasClass reports whether e carries class.
func (e Elem) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

// Compound is a sequence of simple selectors that all apply to one node:
// "button.primary:hover".
type Compound struct {
	Kind    string // "" matches any kind
	Classes []string
	Has     Pseudo // states that must be set
	HasNot  Pseudo // states that must be clear
}

func (c Compound) matches(e Elem) bool {
	if c.Kind != "" && c.Kind != e.Kind {
		return false
	}
	for _, cl := range c.Classes {
		if !e.HasClass(cl) {
			return false
		}
	}
	return e.Pseudo&c.Has == c.Has && e.Pseudo&c.HasNot == 0
}

// Combinator joins two compounds.
type Combinator uint8

const (
	Descendant Combinator = iota // "a b"
	Child                        // "a > b"
)

// Selector is a chain of compounds read left to right; the last compound
// applies to the styled node.
type Selector struct {
	Compounds   []Compound
	Combinators []Combinator // len(Compounds)-1
	source      string
}

func (s Selector) String() string {
	return s.source
}

// Specificity packs (ids, classes and pseudo-classes, kinds) into one
// comparable number. Ids do not exist here and are always 0. Each count
// saturates at 255.
func (s Selector) Specificity() uint32 {
	var classes, kinds uint32
	for _, c := range s.Compounds {
		classes += uint32(len(c.Classes) + popcount(c.Has) + popcount(c.HasNot))
		if c.Kind != "" {
			kinds++
		}
	}
	return min(classes, 255)<<8 | min(kinds, 255)
}

func popcount(p Pseudo) int {
	n := 0
	for ; p != 0; p &= p - 1 {
		n++
	}
	return n
}

// Match reports whether s matches the last element of chain, which runs
// from the root to the node being styled.
func (s Selector) Match(chain []Elem) bool {
	if len(s.Compounds) == 0 || len(chain) == 0 {
		return false
	}
	return s.matchAt(len(s.Compounds)-1, chain, len(chain)-1)
}

// matchAt matches compound ci against chain[ei] and the compounds to its
// left against ei's ancestors.
func (s Selector) matchAt(ci int, chain []Elem, ei int) bool {
	if !s.Compounds[ci].matches(chain[ei]) {
		return false
	}
	if ci == 0 {
		return true
	}
	switch s.Combinators[ci-1] {
	case Child:
		return ei > 0 && s.matchAt(ci-1, chain, ei-1)
	default:
		for a := ei - 1; a >= 0; a-- {
			if s.matchAt(ci-1, chain, a) {
				return true
			}
		}
		return false
	}
}

// ParseSelector parses the selector subset weft understands: kinds,
// ".class", "*", the descendant and ">" combinators, and the pseudo-classes
// :hover :focus :active :disabled and :enabled.
func ParseSelector(src string) (Selector, error) {
	sel := Selector{source: strings.TrimSpace(src)}
	tokens := strings.Fields(strings.ReplaceAll(src, ">", " > "))
	if len(tokens) == 0 {
		return Selector{}, errors.Newf("parse selector %q: empty", src)
	}
	pendingChild := false
	for _, tok := range tokens {
		if tok == ">" {
			if len(sel.Compounds) == 0 || pendingChild {
				return Selector{}, errors.Newf("parse selector %q: dangling '>'", src)
			}
			pendingChild = true
			continue
		}
		c, err := parseCompound(tok)
		if err != nil {
			return Selector{}, errors.Wrapf(err, "parse selector %q", src)
		}
		if len(sel.Compounds) > 0 {
			comb := Descendant
			if pendingChild {
				comb = Child
			}
			sel.Combinators = append(sel.Combinators, comb)
		}
		pendingChild = false
		sel.Compounds = append(sel.Compounds, c)
	}
	if pendingChild {
		return Selector{}, errors.Newf("parse selector %q: dangling '>'", src)
	}
	return sel, nil
}

// MustParseSelector is ParseSelector that panics on error.
func MustParseSelector(src string) Selector {
	s, err := ParseSelector(src)
	if err != nil {
		panic(err)
	}
	return s
}

func parseCompound(tok string) (Compound, error) {
	var c Compound
	i := 0
	readIdent := func() string {
		start := i
		for i < len(tok) && tok[i] != '.' && tok[i] != ':' {
			i++
		}
		return tok[start:i]
	}

	switch {
	case tok[0] == '*':
		i = 1
	case tok[0] != '.' && tok[0] != ':':
		c.Kind = readIdent()
	}
	for i < len(tok) {
		sigil := tok[i]
		i++
		name := readIdent()
		if name == "" {
			return Compound{}, errors.Newf("empty name after %q", sigil)
		}
		switch sigil {
		case '.':
			c.Classes = append(c.Classes, name)
		case ':':
			if name == "enabled" {
				c.HasNot |= PseudoDisabled
				continue
			}
			p, ok := ParsePseudo(name)
			if !ok {
				return Compound{}, errors.Newf("unknown pseudo-class %q", name)
			}
			c.Has |= p
		default:
			return Compound{}, errors.Newf("unexpected %q", sigil)
		}
	}
	return c, nil
}
