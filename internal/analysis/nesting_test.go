package analysis

import "testing"

func TestEstimateDepth(t *testing.T) {
	tests := []struct {
		name string
		span string
		want int
	}{
		{
			name: "no loops",
			span: "let x = 1;\nreturn x;",
			want: 0,
		},
		{
			name: "single for",
			span: "for (let i = 0; i < n; i++) {\n  sum += i;\n}",
			want: 1,
		},
		{
			name: "nested for",
			span: "for (let i = 0; i < n; i++) {\n  for (let j = 0; j < n; j++) {\n    grid[i][j] = 0;\n  }\n}",
			want: 2,
		},
		{
			name: "triple nesting",
			span: "for (a) {\n  for (b) {\n    for (c) {\n      work();\n    }\n  }\n}",
			want: 3,
		},
		{
			name: "sequential loops stay flat",
			span: "for (a) {\n  one();\n}\nfor (b) {\n  two();\n}",
			want: 1,
		},
		{
			name: "while",
			span: "while (queue.length) {\n  step();\n}",
			want: 1,
		},
		{
			name: "do block",
			span: "do {\n  tick();\n}",
			want: 1,
		},
		{
			// The trailing while line of a do-while raises the depth a
			// second time before its brace closes the first. Known
			// over-count, kept as is.
			name: "do while tail counts again",
			span: "do {\n  tick();\n} while (alive);",
			want: 2,
		},
		{
			name: "forEach callback",
			span: "items.forEach(item => {\n  use(item);\n});",
			want: 1,
		},
		{
			name: "map inside for",
			span: "for (const row of rows) {\n  row.map(cell => {\n    paint(cell);\n  });\n}",
			want: 2,
		},
		{
			name: "filter and reduce",
			span: "const kept = xs.filter(x => x > 0);\nconst sum = kept.reduce((a, b) => a + b, 0);",
			want: 2,
		},
		{
			name: "two loop tokens on one line count once",
			span: "for (a) { for (b) {\n    work();\n  }\n}",
			want: 1,
		},
		{
			name: "python nested loops",
			span: "for x in xs:\n    for y in ys:\n        pair(x, y)",
			want: 2,
		},
		{
			name: "closing braces floor at zero",
			span: "}\n}\nfor (a) {\n  go();\n}",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateDepth(tt.span); got != tt.want {
				t.Errorf("EstimateDepth = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateDepth_EmptySpan(t *testing.T) {
	if got := EstimateDepth(""); got != 0 {
		t.Errorf("EstimateDepth(\"\") = %d, want 0", got)
	}
}
