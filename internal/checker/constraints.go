package checker

// constraints maps a generic parameter name to the concrete Type it
// was bound to while solving one application.
type constraints map[string]Type

// typeConstraints implements spec 4.6: given a formal parameter type
// and an actual argument type, yields either ok=false (the types do
// not unify) or a set of generic bindings.
//
// Rule 1 is intentionally one-sided: generics in formal are bound;
// generics in actual are compared structurally. Rule 2 is the
// documented reverse-direction special case letting a polymorphic
// producer supply a concrete consumer. mergeConstraints is a plain
// map union with no clash detection - spec section 9 flags this as a
// likely bug to preserve, not fix: a conflicting binding for the same
// generic silently overwrites the earlier one.
func typeConstraints(formal, actual Type) (constraints, bool) {
	switch f := formal.(type) {
	case Generic:
		return constraints{f.Name: actual}, true

	case Applied:
		if fHead, ok := f.Func.(TypeLambda); ok {
			if a, ok := actual.(Applied); ok {
				if g, ok := a.Arg.(Generic); ok {
					if bHead, ok := a.Func.(TypeLambda); ok && fHead.Name == bHead.Name {
						return constraints{g.Name: f.Arg}, true
					}
				}
			}
		}
		if a, ok := actual.(Applied); ok {
			left, ok := typeConstraints(f.Func, a.Func)
			if !ok {
				return nil, false
			}
			right, ok := typeConstraints(f.Arg, a.Arg)
			if !ok {
				return nil, false
			}
			return mergeConstraints(left, right), true
		}
		return nil, false

	case Lambda:
		a, ok := actual.(Lambda)
		if !ok {
			return nil, false
		}
		left, ok := typeConstraints(f.Param, a.Param)
		if !ok {
			return nil, false
		}
		right, ok := typeConstraints(f.Result, a.Result)
		if !ok {
			return nil, false
		}
		return mergeConstraints(left, right), true

	default:
		if typeEqual(formal, actual) {
			return constraints{}, true
		}
		return nil, false
	}
}

// mergeConstraints is map union; see typeConstraints' doc comment for
// why clashes are deliberately not detected.
func mergeConstraints(a, b constraints) constraints {
	merged := make(constraints, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

// typeEq is the OR-of-both-directions equality spec 4.6 and section 9
// describe: two branch types are deemed equal if either unifies
// against the other. This is intentionally not transitive across a
// set of more than two types, which is why inferCase in
// expressions.go checks every pair of branches against each other
// rather than only each branch against the first.
func typeEq(a, b Type) bool {
	if _, ok := typeConstraints(a, b); ok {
		return true
	}
	_, ok := typeConstraints(b, a)
	return ok
}

// replaceGenerics rewrites every Generic(n) inside t to its bound
// type in cs, recursing structurally and leaving anything else
// unchanged.
func replaceGenerics(cs constraints, t Type) Type {
	switch v := t.(type) {
	case Generic:
		if bound, ok := cs[v.Name]; ok {
			return bound
		}
		return v
	case Applied:
		return Applied{Func: replaceGenerics(cs, v.Func), Arg: replaceGenerics(cs, v.Arg)}
	case Lambda:
		return Lambda{Param: replaceGenerics(cs, v.Param), Result: replaceGenerics(cs, v.Result)}
	default:
		return t
	}
}
