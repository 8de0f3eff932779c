// Package face compares fixed-length face embeddings produced by an
// external detection/extraction capability. The package never touches
// images itself; it only scores embeddings against each other.
package face

import (
	"errors"
	"math"
)

// MatchThreshold is the maximum Euclidean distance between two embeddings
// still accepted as "same person". It is the single most sensitive security
// parameter in the system: both the open-set login identification and the
// in-flow re-verification use this constant. Whether re-verification ought
// to be stricter than identification is an open tuning question; keeping
// one named constant makes that a deliberate decision rather than two
// drifting magic numbers.
const MatchThreshold = 0.55

// Embedding is a fixed-length numeric vector representing a detected face.
type Embedding []float64

var (
	// ErrNoFaceDetected means the upstream capability found no face in the
	// frame. Retryable: the caller re-samples.
	ErrNoFaceDetected = errors.New("no face detected in frame")

	// ErrNoReferenceEmbedding means the employee record has no enrolled
	// face. Fatal for the identification attempt.
	ErrNoReferenceEmbedding = errors.New("employee has no reference face embedding")

	// ErrDimensionMismatch means the two embeddings come from different
	// models and cannot be compared.
	ErrDimensionMismatch = errors.New("embedding dimensions do not match")
)

// MatchScore returns the Euclidean distance between probe and reference in
// embedding space. Lower is more similar.
func MatchScore(probe, reference Embedding) (float64, error) {
	if len(reference) == 0 {
		return 0, ErrNoReferenceEmbedding
	}
	if len(probe) != len(reference) {
		return 0, ErrDimensionMismatch
	}

	var sum float64
	for i := range probe {
		d := probe[i] - reference[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// SamePerson reports whether a match distance is accepted. The threshold
// is inclusive: a distance of exactly MatchThreshold passes.
func SamePerson(distance float64) bool {
	return distance <= MatchThreshold
}

// Candidate is one enrolled employee considered during open-set
// identification.
type Candidate struct {
	EmployeeID string
	Embedding  Embedding
}

// Identify scans probe against every candidate and returns the closest
// match, if any candidate passes the threshold. Candidates without an
// enrolled embedding or with a mismatched dimension are skipped rather
// than failing the whole scan. A non-match here is not an error: the
// login flow simply keeps sampling.
func Identify(probe Embedding, candidates []Candidate) (employeeID string, distance float64, ok bool) {
	best := math.MaxFloat64
	for _, c := range candidates {
		d, err := MatchScore(probe, c.Embedding)
		if err != nil {
			continue
		}
		if d < best {
			best = d
			employeeID = c.EmployeeID
		}
	}
	if employeeID == "" || !SamePerson(best) {
		return "", 0, false
	}
	return employeeID, best, true
}
