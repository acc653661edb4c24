package engine

import "testing"

func TestRunSeedDeterminism(t *testing.T) {
	r1, _ := NewRunSeed("alpha-seed")
	r2, _ := NewRunSeed("alpha-seed")
	if a, b := r1.Stream("x").Intn(1000000), r2.Stream("x").Intn(1000000); a != b {
		t.Fatalf("streams differ: %d vs %d", a, b)
	}
	if a, b := r1.Stream("x").Child("y").Intn(1000000), r2.Stream("x").Child("y").Intn(1000000); a != b {
		t.Fatalf("child streams differ: %d vs %d", a, b)
	}
}

func TestDistinctLabelsDiverge(t *testing.T) {
	seed, _ := NewRunSeed("label-seed")
	a := seed.Stream("events")
	b := seed.Stream("customers")
	same := 0
	for i := 0; i < 16; i++ {
		if a.Intn(1000) == b.Intn(1000) {
			same++
		}
	}
	if same == 16 {
		t.Fatalf("differently labelled streams should not track each other")
	}
}

func TestEmptySeedRejected(t *testing.T) {
	if _, err := NewRunSeed(""); err == nil {
		t.Fatalf("empty seed text should be rejected")
	}
}

func TestFloat64Range(t *testing.T) {
	seed, _ := NewRunSeed("float-seed")
	s := seed.Stream("f")
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of [0,1): %v", v)
		}
	}
}
