package style

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Decl is one property declaration. The value is kept as written and
// parsed when the cascade picks it, so a bad value only affects the nodes
// it wins on.
type Decl struct {
	Prop  Property
	Value string
}

// Declare expands name: value into declarations. Box shorthands
// ("margin", "padding") take one, two or four space-separated values.
func Declare(name, value string) ([]Decl, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	value = strings.TrimSpace(value)
	if longhands, ok := shorthands[name]; ok {
		parts := strings.Fields(value)
		var sides [4]string
		switch len(parts) {
		case 1:
			sides = [4]string{parts[0], parts[0], parts[0], parts[0]}
		case 2:
			sides = [4]string{parts[0], parts[1], parts[0], parts[1]}
		case 4:
			sides = [4]string{parts[0], parts[1], parts[2], parts[3]}
		default:
			return nil, errors.Newf("%s: want 1, 2 or 4 values, got %d", name, len(parts))
		}
		decls := make([]Decl, 4)
		for i, p := range longhands {
			decls[i] = Decl{Prop: p, Value: sides[i]}
		}
		return decls, nil
	}
	p, ok := LookupProperty(name)
	if !ok {
		return nil, errors.Newf("unknown property %q", name)
	}
	return []Decl{{Prop: p, Value: value}}, nil
}

// MustDeclare is Declare that panics on error. It is meant for
// declarations written in code.
func MustDeclare(name, value string) []Decl {
	d, err := Declare(name, value)
	if err != nil {
		panic(err)
	}
	return d
}

// Rule is a selector with the declarations it applies.
type Rule struct {
	Selector Selector
	Decls    []Decl
}

// NewRule builds a rule from a selector and name/value pairs.
func NewRule(selector string, pairs ...string) (Rule, error) {
	if len(pairs)%2 != 0 {
		return Rule{}, errors.Newf("rule %q: odd number of name/value arguments", selector)
	}
	sel, err := ParseSelector(selector)
	if err != nil {
		return Rule{}, err
	}
	r := Rule{Selector: sel}
	for i := 0; i < len(pairs); i += 2 {
		d, err := Declare(pairs[i], pairs[i+1])
		if err != nil {
			return Rule{}, errors.Wrapf(err, "rule %q", selector)
		}
		r.Decls = append(r.Decls, d...)
	}
	return r, nil
}

// MustRule is NewRule that panics on error.
func MustRule(selector string, pairs ...string) Rule {
	r, err := NewRule(selector, pairs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Sheet is a named, ordered rule list. Later rules win ties of equal
// specificity.
type Sheet struct {
	Name  string
	Rules []Rule
}
