package analysis

import "testing"

func TestFindStructures(t *testing.T) {
	tests := []struct {
		name string
		span string
		want []StructureTag
	}{
		{
			name: "array literal",
			span: "const seen = [];\nseen.push(x);",
			want: []StructureTag{StructureArray},
		},
		{
			name: "new Array",
			span: "let buf = new Array(16);",
			want: []StructureTag{StructureArray},
		},
		{
			name: "python list",
			span: "items = list(range(10))",
			want: []StructureTag{StructureArray},
		},
		{
			name: "object literal",
			span: "const counts = {};\ncounts[key] = 1;",
			want: []StructureTag{StructureMap},
		},
		{
			name: "new Map",
			span: "const index = new Map();",
			want: []StructureTag{StructureMap},
		},
		{
			name: "python dict",
			span: "lookup = dict()",
			want: []StructureTag{StructureMap},
		},
		{
			name: "new Set",
			span: "const unique = new Set();",
			want: []StructureTag{StructureSet},
		},
		{
			name: "python frozenset",
			span: "banned = frozenset(words)",
			want: []StructureTag{StructureSet},
		},
		{
			name: "stack pair",
			span: "stack.push(v);\nconst top = stack.pop();",
			want: []StructureTag{StructureStack},
		},
		{
			name: "python stack pair",
			span: "stack.append(v)\ntop = stack.pop()",
			want: []StructureTag{StructureStack},
		},
		{
			name: "push alone is not a stack",
			span: "out.push(v);",
			want: nil,
		},
		{
			name: "enqueue dequeue pair",
			span: "q.enqueue(job);\nnext = q.dequeue();",
			want: []StructureTag{StructureQueue},
		},
		{
			name: "push shift queue",
			span: "q.push(job);\nconst next = q.shift();",
			want: []StructureTag{StructureQueue},
		},
		{
			name: "deque popleft",
			span: "q.append(job)\nnext = q.popleft()",
			want: []StructureTag{StructureQueue},
		},
		{
			name: "linked list token",
			span: "const head = new ListNode(1);",
			want: []StructureTag{StructureTree},
		},
		{
			name: "tree node token",
			span: "root = TreeNode(5)",
			want: []StructureTag{StructureTree},
		},
		{
			name: "nothing",
			span: "return a + b;",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindStructures(tt.span)
			for _, tag := range tt.want {
				if !got[tag] {
					t.Errorf("missing tag %s in %v", tag, got)
				}
			}
			if len(got) != len(tt.want) {
				t.Errorf("got %v, want exactly %v", got, tt.want)
			}
		})
	}
}

func TestFindStructures_PresenceNotCount(t *testing.T) {
	span := "a = []\nb = []\nc = []"

	got := FindStructures(span)
	if !got[StructureArray] {
		t.Fatalf("array tag missing: %v", got)
	}
	if len(got) != 1 {
		t.Errorf("tags are presence flags, got %v", got)
	}
}
