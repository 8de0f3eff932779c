package face

import (
	"errors"
	"testing"
)

func TestMatchScore_Euclidean(t *testing.T) {
	probe := Embedding{3, 0}
	reference := Embedding{0, 4}

	got, err := MatchScore(probe, reference)
	if err != nil {
		t.Fatalf("MatchScore returned error: %v", err)
	}
	if got != 5 {
		t.Errorf("MatchScore = %v, want 5", got)
	}
}

func TestMatchScore_Identical(t *testing.T) {
	e := Embedding{0.1, -0.2, 0.3}
	got, err := MatchScore(e, e)
	if err != nil {
		t.Fatalf("MatchScore returned error: %v", err)
	}
	if got != 0 {
		t.Errorf("MatchScore of identical embeddings = %v, want 0", got)
	}
}

func TestMatchScore_NoReference(t *testing.T) {
	_, err := MatchScore(Embedding{1, 2}, nil)
	if !errors.Is(err, ErrNoReferenceEmbedding) {
		t.Errorf("expected ErrNoReferenceEmbedding, got %v", err)
	}
}

func TestMatchScore_DimensionMismatch(t *testing.T) {
	_, err := MatchScore(Embedding{1, 2}, Embedding{1, 2, 3})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSamePerson_Threshold(t *testing.T) {
	cases := []struct {
		distance float64
		want     bool
	}{
		{0.0, true},
		{0.3, true},
		{0.55, true}, // boundary is inclusive
		{0.551, false},
		{0.8, false},
	}
	for _, c := range cases {
		if got := SamePerson(c.distance); got != c.want {
			t.Errorf("SamePerson(%v) = %v, want %v", c.distance, got, c.want)
		}
	}
}

func TestIdentify_PicksClosestMatch(t *testing.T) {
	probe := Embedding{1, 0, 0}
	candidates := []Candidate{
		{EmployeeID: "emp-a", Embedding: Embedding{1, 0.5, 0}},  // distance 0.5
		{EmployeeID: "emp-b", Embedding: Embedding{1, 0.1, 0}},  // distance 0.1
		{EmployeeID: "emp-c", Embedding: Embedding{0, 0, 0}},    // distance 1.0
		{EmployeeID: "emp-unenrolled", Embedding: nil},          // skipped
		{EmployeeID: "emp-othermodel", Embedding: Embedding{1}}, // skipped
	}

	id, distance, ok := Identify(probe, candidates)
	if !ok {
		t.Fatal("Identify should have found a match")
	}
	if id != "emp-b" {
		t.Errorf("Identify picked %q, want emp-b", id)
	}
	if distance <= 0.09 || distance >= 0.11 {
		t.Errorf("Identify distance = %v, want ~0.1", distance)
	}
}

func TestIdentify_NoMatchBelowThreshold(t *testing.T) {
	probe := Embedding{1, 0, 0}
	candidates := []Candidate{
		{EmployeeID: "emp-a", Embedding: Embedding{0, 1, 0}}, // distance ~1.41
	}

	if _, _, ok := Identify(probe, candidates); ok {
		t.Error("Identify should not match when every candidate is above the threshold")
	}
}

func TestIdentify_EmptyCandidates(t *testing.T) {
	if _, _, ok := Identify(Embedding{1}, nil); ok {
		t.Error("Identify with no candidates should not match")
	}
}
