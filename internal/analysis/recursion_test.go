package analysis

import "testing"

func TestFindRecursive_SelfCall(t *testing.T) {
	span := "function fib(n) {\n  if (n < 2) return n;\n  return fib(n - 1) + fib(n - 2);\n}"

	got := FindRecursive(span)
	if !got["fib"] {
		t.Errorf("fib should be recursive, got %v", got)
	}
}

func TestFindRecursive_NoSelfCall(t *testing.T) {
	span := "function add(a, b) {\n  return a + b;\n}"

	got := FindRecursive(span)
	if len(got) != 0 {
		t.Errorf("expected no recursive names, got %v", got)
	}
}

func TestFindRecursive_PythonDef(t *testing.T) {
	span := "def walk(node):\n    if node is None:\n        return\n    walk(node.next)"

	got := FindRecursive(span)
	if !got["walk"] {
		t.Errorf("walk should be recursive, got %v", got)
	}
}

func TestFindRecursive_DeclarationAloneDoesNotCount(t *testing.T) {
	// The name followed by its own parameter list is the declaration,
	// not a call.
	span := "function solo(x) {\n  return x * 2;\n}"

	got := FindRecursive(span)
	if got["solo"] {
		t.Errorf("solo should not be recursive, got %v", got)
	}
}

func TestFindRecursive_LaterCallSiteOnly(t *testing.T) {
	// A call that appears before a same-named declaration further down
	// still counts for the earlier declaration, and the later
	// declaration is judged from its own offset.
	span := "function f() {\n  g();\n}\nfunction g() {\n  f();\n}"

	got := FindRecursive(span)
	if !got["f"] {
		t.Errorf("f sees a later f( occurrence, got %v", got)
	}
	if got["g"] {
		t.Errorf("g has no g( occurrence after its declaration, got %v", got)
	}
}

func TestFindRecursive_SubstringCollision(t *testing.T) {
	// Purely textual matching: any identifier ending in the name
	// triggers a hit. Accepted imprecision.
	span := "def f(x):\n    return off(x)"

	got := FindRecursive(span)
	if !got["f"] {
		t.Errorf("substring hit expected, got %v", got)
	}
}
