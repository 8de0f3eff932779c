package verification

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/verification"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/face"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/geo"
)

// Sampling constants for the verification flow.
const (
	SampleInterval  = 2500 * time.Millisecond
	PositionTimeout = 10 * time.Second
)

// GeolocationProvider yields the employee's current position fix.
type GeolocationProvider interface {
	CurrentPosition(ctx context.Context) (geo.Coordinate, error)
}

// Camera is the exclusive frame source for one flow. Acquire is called
// only after the geofence check passes; Release always runs on exit.
type Camera interface {
	Acquire(ctx context.Context) error
	Frame(ctx context.Context) ([]byte, error)
	Release()
}

// FaceDetector extracts a face embedding from a frame. Returns
// face.ErrNoFaceDetected when the frame holds no usable face.
type FaceDetector interface {
	Detect(ctx context.Context, frame []byte) (face.Embedding, error)
}

// Recorder persists the attendance record once identity is re-verified.
type Recorder interface {
	Record(ctx context.Context, position geo.Coordinate, frame []byte) (attendance.RecordResponse, error)
}

// Result is the terminal outcome of one flow run.
type Result struct {
	State          verification.State
	Message        string
	DistanceMeters float64
	Record         *attendance.RecordResponse
	Err            error
}

// Flow orchestrates one verification cycle: geofence gate, then frame
// sampling with identity re-verification, then at most one recording.
//
// The geofence check strictly precedes any camera activity. A detected
// face that does not match the session-bound reference is a security
// failure and ends the flow immediately; it is never retried, unlike
// the no-face case which just keeps sampling.
type Flow struct {
	Geolocation GeolocationProvider
	Camera      Camera
	Detector    FaceDetector
	Recorder    Recorder

	// Reference is the already-identified employee's enrolled embedding.
	// Matching here is re-verification, not open-set identification.
	Reference face.Embedding

	Center       geo.Coordinate
	RadiusMeters float64

	// Interval and Timeout default to SampleInterval / PositionTimeout.
	Interval time.Duration
	Timeout  time.Duration

	// OnHint receives user-facing sampling hints (no terminal effect).
	OnHint func(hint string)

	recording atomic.Bool
}

// Run drives the flow to a terminal state. Cancelling ctx stops
// sampling and releases the camera; an in-flight recording is not
// rolled back.
func (f *Flow) Run(ctx context.Context) Result {
	interval := f.Interval
	if interval <= 0 {
		interval = SampleInterval
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = PositionTimeout
	}

	posCtx, cancel := context.WithTimeout(ctx, timeout)
	position, err := f.Geolocation.CurrentPosition(posCtx)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return Result{State: verification.StateCancelled}
		}
		return Result{
			State:   verification.StateFailed,
			Message: "could not obtain your position",
			Err:     attendance.ErrPositionUnavailable,
		}
	}

	distance := geo.RoundedDistanceMeters(position, f.Center)
	if !geo.WithinRadius(position, f.Center, f.RadiusMeters) {
		return Result{
			State:          verification.StateLocationAbort,
			DistanceMeters: distance,
			Message:        fmt.Sprintf("you are %.0fm from the location; allowed radius is %.0fm", distance, f.RadiusMeters),
		}
	}

	if err := f.Camera.Acquire(ctx); err != nil {
		return Result{
			State:          verification.StateFailed,
			DistanceMeters: distance,
			Message:        "could not access the camera",
			Err:            err,
		}
	}
	defer f.Camera.Release()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Result{State: verification.StateCancelled, DistanceMeters: distance}
		case <-ticker.C:
			if result, done := f.sample(ctx, position, distance); done {
				return result
			}
		}
	}
}

func (f *Flow) sample(ctx context.Context, position geo.Coordinate, distance float64) (Result, bool) {
	frame, err := f.Camera.Frame(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Result{State: verification.StateCancelled, DistanceMeters: distance}, true
		}
		f.hint("waiting for camera frame")
		return Result{}, false
	}

	embedding, err := f.Detector.Detect(ctx, frame)
	if err != nil {
		if errors.Is(err, face.ErrNoFaceDetected) {
			f.hint("no face detected, hold still")
			return Result{}, false
		}
		if ctx.Err() != nil {
			return Result{State: verification.StateCancelled, DistanceMeters: distance}, true
		}
		f.hint("could not read the frame, retrying")
		return Result{}, false
	}

	matchDistance, err := face.MatchScore(embedding, f.Reference)
	if err != nil {
		return Result{
			State:          verification.StateFailed,
			DistanceMeters: distance,
			Message:        "face verification is not available for this employee",
			Err:            err,
		}, true
	}

	if !face.SamePerson(matchDistance) {
		return Result{
			State:          verification.StateSecurityAbort,
			DistanceMeters: distance,
			Message:        "identity mismatch",
			Err:            verification.ErrIdentityMismatch,
		}, true
	}

	// A second tick must not start a second recording while one is
	// pending.
	if !f.recording.CompareAndSwap(false, true) {
		return Result{}, false
	}

	record, err := f.Recorder.Record(ctx, position, frame)
	if err != nil {
		return Result{
			State:          verification.StateFailed,
			DistanceMeters: distance,
			Message:        "could not save the attendance record",
			Err:            err,
		}, true
	}

	return Result{
		State:          verification.StateSuccess,
		DistanceMeters: distance,
		Message:        record.PunctualityMessage,
		Record:         &record,
	}, true
}

func (f *Flow) hint(hint string) {
	if f.OnHint != nil {
		f.OnHint(hint)
	}
}
