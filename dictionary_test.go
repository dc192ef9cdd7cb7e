package thirdvm

import "testing"

func TestDictionaryIdZeroIsUnbound(t *testing.T) {
	d := newDictionary()
	if got := d.Len(); got != 1 {
		t.Fatalf("Len() after newDictionary = %d, want 1", got)
	}
	if _, ok := d.Find(""); ok {
		t.Fatalf("Find(\"\") unexpectedly found an id")
	}
}

func TestDictionaryAddNativeAssignsSequentialIds(t *testing.T) {
	d := newDictionary()
	ret := d.AddNative("return", func(*Process) {}, false)
	lit := d.AddNative("lit.i32", func(*Process) {}, false)
	if ret != 1 {
		t.Fatalf("first AddNative id = %d, want 1", ret)
	}
	if lit != 2 {
		t.Fatalf("second AddNative id = %d, want 2", lit)
	}
	if got, ok := d.Find("return"); !ok || got != ret {
		t.Errorf("Find(%q) = %d,%v, want %d,true", "return", got, ok, ret)
	}
}

func TestDictionaryAddInterpretedRecordsStart(t *testing.T) {
	d := newDictionary()
	id := d.AddInterpreted("square", 42)
	fn := d.At(id)
	if fn.IsNative() {
		t.Fatalf("interpreted function reports IsNative")
	}
	if fn.Start != 42 {
		t.Errorf("Start = %d, want 42", fn.Start)
	}
}

func TestDictionarySetImmediateAndLocalCount(t *testing.T) {
	d := newDictionary()
	id := d.AddInterpreted("loop", 0)
	d.SetImmediate(id)
	d.SetLocalCount(id, 3)
	fn := d.At(id)
	if !fn.IsImmediate {
		t.Error("expected IsImmediate after SetImmediate")
	}
	if fn.LocalCount != 3 {
		t.Errorf("LocalCount = %d, want 3", fn.LocalCount)
	}
}

func TestDictionaryRedefinitionShadowsWithoutDeletingOldId(t *testing.T) {
	d := newDictionary()
	first := d.AddInterpreted("dup", 0)
	second := d.AddInterpreted("dup", 10)
	if got, ok := d.Find("dup"); !ok || got != second {
		t.Fatalf("Find(\"dup\") = %d,%v, want %d,true", got, ok, second)
	}
	if first == second {
		t.Fatal("redefinition reused the old id")
	}
	if d.At(first).Start != 0 {
		t.Error("old binding's function entry was mutated by redefinition")
	}
}
