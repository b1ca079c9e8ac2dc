package store

import (
	"testing"
	"time"

	"bigo/internal/analysis"
)

func sampleRecord(doc, name string, line int, label analysis.Label) Record {
	return Record{
		Key: Key{Doc: doc, Name: name, StartLine: line},
		Verdict: analysis.Verdict{
			Time:  label,
			Space: analysis.Constant,
		},
		CapturedAt: time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()

	rec := sampleRecord("src/a.js", "pairs", 3, analysis.Quadratic)
	if err := s.Put(rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := s.Get(rec.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("record not found")
	}
	if got.Time != analysis.Quadratic {
		t.Errorf("time = %s, want %s", got.Time, analysis.Quadratic)
	}

	_, ok, err = s.Get(Key{Doc: "src/a.js", Name: "missing", StartLine: 0})
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Error("expected miss for unknown key")
	}
}

func TestMemoryStore_OverwriteSameKey(t *testing.T) {
	s := NewMemoryStore()

	if err := s.Put(sampleRecord("a.js", "f", 0, analysis.Linear)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(sampleRecord("a.js", "f", 0, analysis.Quadratic)); err != nil {
		t.Fatalf("put again: %v", err)
	}

	n, err := s.Len()
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 1 {
		t.Errorf("len = %d, want 1", n)
	}

	got, _, err := s.Get(Key{Doc: "a.js", Name: "f", StartLine: 0})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Time != analysis.Quadratic {
		t.Errorf("re-analysis should overwrite, time = %s", got.Time)
	}
}

func TestMemoryStore_ListOrder(t *testing.T) {
	s := NewMemoryStore()

	for _, rec := range []Record{
		sampleRecord("b.js", "later", 10, analysis.Linear),
		sampleRecord("a.js", "second", 5, analysis.Linear),
		sampleRecord("a.js", "first", 0, analysis.Linear),
		sampleRecord("a.js", "alpha", 5, analysis.Linear),
	} {
		if err := s.Put(rec); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	recs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	wantOrder := []string{"first", "alpha", "second", "later"}
	if len(recs) != len(wantOrder) {
		t.Fatalf("got %d records, want %d", len(recs), len(wantOrder))
	}
	for i, name := range wantOrder {
		if recs[i].Name != name {
			t.Errorf("recs[%d] = %s, want %s", i, recs[i].Name, name)
		}
	}
}

func TestMemoryStore_ListIsDeterministic(t *testing.T) {
	s := NewMemoryStore()
	for _, rec := range []Record{
		sampleRecord("z.py", "c", 2, analysis.Linear),
		sampleRecord("a.py", "b", 1, analysis.Linear),
		sampleRecord("m.py", "a", 0, analysis.Linear),
	} {
		if err := s.Put(rec); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	first, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	second, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("ordering changed between calls: %+v vs %+v", first, second)
		}
	}
}
