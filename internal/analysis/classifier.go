package analysis

// Classify turns detector facts into a verdict. The rules run in a
// fixed order and later rules only fire under their stated guards, so
// reordering them changes results.
func Classify(depth int, recursive map[string]bool, structures map[StructureTag]bool, idioms Idioms) Verdict {
	v := Verdict{Time: Constant, Space: Constant}

	switch {
	case depth <= 0:
	case depth == 1:
		v.Time = Linear
	case depth == 2:
		v.Time = Quadratic
	default:
		v.Time = PolyLabel(depth)
	}

	// Recursion only escalates when no loop already raised the bound.
	if len(recursive) > 0 && v.Time == Constant {
		v.Time = Exponential
	}

	if structures[StructureArray] || structures[StructureMap] {
		v.Space = Linear
	}

	if idioms.GenericSort && (v.Time == Constant || v.Time == Linear) {
		v.Time = Quadratic
	}

	// The one unconditional override in the rule set.
	if idioms.LinearithmicSort {
		v.Time = Linearithmic
	}

	if idioms.BinarySearch && v.Time == Constant {
		v.Time = Logarithmic
	}

	return v
}
