package analysis

import "testing"

func TestClassify_Defaults(t *testing.T) {
	v := Classify(0, nil, nil, Idioms{})
	if v.Time != Constant || v.Space != Constant {
		t.Errorf("empty input = %+v, want O(1)/O(1)", v)
	}
}

func TestClassify_DepthLadder(t *testing.T) {
	tests := []struct {
		depth int
		want  Label
	}{
		{0, Constant},
		{1, Linear},
		{2, Quadratic},
		{3, "O(n^3)"},
		{4, "O(n^4)"},
		{5, "O(n^5)"},
	}

	for _, tt := range tests {
		v := Classify(tt.depth, nil, nil, Idioms{})
		if v.Time != tt.want {
			t.Errorf("depth %d: time = %s, want %s", tt.depth, v.Time, tt.want)
		}
	}
}

func TestClassify_DepthNeverLowersWhenDeeper(t *testing.T) {
	prev := Classify(1, nil, nil, Idioms{}).Time
	ladder := map[Label]int{
		Linear: 1, Quadratic: 2, "O(n^3)": 3, "O(n^4)": 4, "O(n^5)": 5,
	}
	for d := 2; d <= 5; d++ {
		cur := Classify(d, nil, nil, Idioms{}).Time
		if ladder[cur] < ladder[prev] {
			t.Errorf("depth %d lowered the label: %s -> %s", d, prev, cur)
		}
		prev = cur
	}
}

func TestClassify_RecursionEscalatesOnlyFromConstant(t *testing.T) {
	rec := map[string]bool{"fib": true}

	v := Classify(0, rec, nil, Idioms{})
	if v.Time != Exponential {
		t.Errorf("recursion at depth 0: time = %s, want %s", v.Time, Exponential)
	}

	// A loop already raised the bound, so recursion must not override.
	v = Classify(1, rec, nil, Idioms{})
	if v.Time != Linear {
		t.Errorf("recursion at depth 1: time = %s, want %s", v.Time, Linear)
	}
}

func TestClassify_StructuresRaiseSpace(t *testing.T) {
	tests := []struct {
		name       string
		structures map[StructureTag]bool
		want       Label
	}{
		{"array", map[StructureTag]bool{StructureArray: true}, Linear},
		{"map", map[StructureTag]bool{StructureMap: true}, Linear},
		{"set only", map[StructureTag]bool{StructureSet: true}, Constant},
		{"stack only", map[StructureTag]bool{StructureStack: true}, Constant},
		{"tree only", map[StructureTag]bool{StructureTree: true}, Constant},
		{"none", nil, Constant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Classify(0, nil, tt.structures, Idioms{})
			if v.Space != tt.want {
				t.Errorf("space = %s, want %s", v.Space, tt.want)
			}
		})
	}
}

func TestClassify_GenericSortGuard(t *testing.T) {
	sorted := Idioms{GenericSort: true}

	if v := Classify(0, nil, nil, sorted); v.Time != Quadratic {
		t.Errorf("sort at depth 0: time = %s, want %s", v.Time, Quadratic)
	}
	if v := Classify(1, nil, nil, sorted); v.Time != Quadratic {
		t.Errorf("sort at depth 1: time = %s, want %s", v.Time, Quadratic)
	}
	// Already quadratic stays quadratic.
	if v := Classify(2, nil, nil, sorted); v.Time != Quadratic {
		t.Errorf("sort at depth 2: time = %s, want %s", v.Time, Quadratic)
	}
	// A cubic bound outranks the sort hint and must survive.
	if v := Classify(3, nil, nil, sorted); v.Time != "O(n^3)" {
		t.Errorf("sort at depth 3: time = %s, want O(n^3)", v.Time)
	}
}

func TestClassify_LinearithmicOverridesUnconditionally(t *testing.T) {
	fast := Idioms{LinearithmicSort: true}

	for depth := 0; depth <= 4; depth++ {
		if v := Classify(depth, nil, nil, fast); v.Time != Linearithmic {
			t.Errorf("linearithmic at depth %d: time = %s, want %s", depth, v.Time, Linearithmic)
		}
	}

	both := Idioms{GenericSort: true, LinearithmicSort: true}
	if v := Classify(0, nil, nil, both); v.Time != Linearithmic {
		t.Errorf("both sorts: time = %s, want %s", v.Time, Linearithmic)
	}
}

func TestClassify_BinarySearchGuard(t *testing.T) {
	binary := Idioms{BinarySearch: true}

	if v := Classify(0, nil, nil, binary); v.Time != Logarithmic {
		t.Errorf("binary at depth 0: time = %s, want %s", v.Time, Logarithmic)
	}
	if v := Classify(1, nil, nil, binary); v.Time != Linear {
		t.Errorf("binary at depth 1: time = %s, want %s", v.Time, Linear)
	}

	rec := map[string]bool{"search": true}
	if v := Classify(0, rec, nil, binary); v.Time != Exponential {
		t.Errorf("binary plus recursion: time = %s, want %s", v.Time, Exponential)
	}
}

func TestClassify_SpaceIndependentOfTime(t *testing.T) {
	structures := map[StructureTag]bool{StructureArray: true}
	idioms := Idioms{LinearithmicSort: true}

	v := Classify(2, nil, structures, idioms)
	if v.Time != Linearithmic {
		t.Errorf("time = %s, want %s", v.Time, Linearithmic)
	}
	if v.Space != Linear {
		t.Errorf("space = %s, want %s", v.Space, Linear)
	}
}

func TestPolyLabel(t *testing.T) {
	tests := []struct {
		k    int
		want Label
	}{
		{0, Linear},
		{1, Linear},
		{2, Quadratic},
		{3, "O(n^3)"},
		{7, "O(n^7)"},
	}

	for _, tt := range tests {
		if got := PolyLabel(tt.k); got != tt.want {
			t.Errorf("PolyLabel(%d) = %s, want %s", tt.k, got, tt.want)
		}
	}
}
