package verification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/verification"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/face"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/geo"
)

const testInterval = 2 * time.Millisecond

var (
	center = geo.Coordinate{Latitude: -23.550520, Longitude: -46.633308}

	// ~50m and ~150m north of center.
	nearCenter = geo.Coordinate{Latitude: -23.550520 + 0.000450, Longitude: -46.633308}
	farAway    = geo.Coordinate{Latitude: -23.550520 + 0.001349, Longitude: -46.633308}
)

type fakeGeo struct {
	position geo.Coordinate
	err      error
}

func (g fakeGeo) CurrentPosition(ctx context.Context) (geo.Coordinate, error) {
	return g.position, g.err
}

type fakeCamera struct {
	mu       sync.Mutex
	frames   [][]byte
	acquired bool
	released bool
}

func (c *fakeCamera) Acquire(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.acquired = true
	return nil
}

func (c *fakeCamera) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = true
}

// Frame replays the configured frames, then repeats the last one.
func (c *fakeCamera) Frame(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil, errors.New("no frames configured")
	}
	frame := c.frames[0]
	if len(c.frames) > 1 {
		c.frames = c.frames[1:]
	}
	return frame, nil
}

// fakeDetector maps frame bytes to canned embeddings.
type fakeDetector struct {
	embeddings map[string]face.Embedding
}

func (d fakeDetector) Detect(ctx context.Context, frame []byte) (face.Embedding, error) {
	embedding, ok := d.embeddings[string(frame)]
	if !ok {
		return nil, face.ErrNoFaceDetected
	}
	return embedding, nil
}

type fakeRecorder struct {
	mu       sync.Mutex
	calls    int
	response attendance.RecordResponse
	err      error
}

func (r *fakeRecorder) Record(ctx context.Context, position geo.Coordinate, frame []byte) (attendance.RecordResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return attendance.RecordResponse{}, r.err
	}
	return r.response, nil
}

func (r *fakeRecorder) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// reference embedding at the origin; matchingFace is 0.3 away, and
// strangerFace is 0.8 away, straddling the 0.55 threshold.
var (
	reference    = face.Embedding{0, 0, 0, 0}
	matchingFace = face.Embedding{0.3, 0, 0, 0}
	strangerFace = face.Embedding{0.8, 0, 0, 0}
)

func newTestFlow(camera *fakeCamera, detector fakeDetector, recorder *fakeRecorder) *Flow {
	return &Flow{
		Geolocation:  fakeGeo{position: nearCenter},
		Camera:       camera,
		Detector:     detector,
		Recorder:     recorder,
		Reference:    reference,
		Center:       center,
		RadiusMeters: 100,
		Interval:     testInterval,
	}
}

func TestFlow_SuccessProducesExactlyOneRecord(t *testing.T) {
	camera := &fakeCamera{frames: [][]byte{[]byte("match")}}
	detector := fakeDetector{embeddings: map[string]face.Embedding{"match": matchingFace}}
	recorder := &fakeRecorder{response: attendance.RecordResponse{
		ID:                "rec-1",
		Type:              string(attendance.EventEntry),
		Verified:          true,
		Score:             100,
		PunctualityStatus: string(attendance.StatusPerfect),
	}}

	flow := newTestFlow(camera, detector, recorder)
	result := flow.Run(context.Background())

	assert.Equal(t, verification.StateSuccess, result.State)
	require.NotNil(t, result.Record)
	assert.Equal(t, string(attendance.EventEntry), result.Record.Type)
	assert.True(t, result.Record.Verified)
	assert.Equal(t, 100, result.Record.Score)
	assert.InDelta(t, 50, result.DistanceMeters, 2)
	assert.Equal(t, 1, recorder.callCount())
	assert.True(t, camera.released)
}

func TestFlow_OutsideRadiusNeverOpensCamera(t *testing.T) {
	camera := &fakeCamera{frames: [][]byte{[]byte("match")}}
	recorder := &fakeRecorder{}

	flow := newTestFlow(camera, fakeDetector{}, recorder)
	flow.Geolocation = fakeGeo{position: farAway}

	result := flow.Run(context.Background())

	assert.Equal(t, verification.StateLocationAbort, result.State)
	assert.InDelta(t, 150, result.DistanceMeters, 2)
	assert.Contains(t, result.Message, "allowed radius")
	assert.Nil(t, result.Record)
	assert.Equal(t, 0, recorder.callCount())
	assert.False(t, camera.acquired)
}

func TestFlow_IdentityMismatchIsFatal(t *testing.T) {
	camera := &fakeCamera{frames: [][]byte{[]byte("stranger")}}
	detector := fakeDetector{embeddings: map[string]face.Embedding{"stranger": strangerFace}}
	recorder := &fakeRecorder{}

	flow := newTestFlow(camera, detector, recorder)
	result := flow.Run(context.Background())

	assert.Equal(t, verification.StateSecurityAbort, result.State)
	assert.ErrorIs(t, result.Err, verification.ErrIdentityMismatch)
	assert.Nil(t, result.Record)
	assert.Equal(t, 0, recorder.callCount())
	assert.True(t, camera.released)
}

func TestFlow_NoFaceKeepsSampling(t *testing.T) {
	camera := &fakeCamera{frames: [][]byte{
		[]byte("empty"), []byte("empty"), []byte("empty"), []byte("match"),
	}}
	detector := fakeDetector{embeddings: map[string]face.Embedding{"match": matchingFace}}
	recorder := &fakeRecorder{response: attendance.RecordResponse{ID: "rec-1"}}

	var hints []string
	var hintsMu sync.Mutex

	flow := newTestFlow(camera, detector, recorder)
	flow.OnHint = func(hint string) {
		hintsMu.Lock()
		hints = append(hints, hint)
		hintsMu.Unlock()
	}

	result := flow.Run(context.Background())

	assert.Equal(t, verification.StateSuccess, result.State)
	assert.Equal(t, 1, recorder.callCount())
	hintsMu.Lock()
	assert.NotEmpty(t, hints)
	hintsMu.Unlock()
}

func TestFlow_CancelReleasesCameraWithoutRecording(t *testing.T) {
	camera := &fakeCamera{frames: [][]byte{[]byte("empty")}}
	recorder := &fakeRecorder{}

	flow := newTestFlow(camera, fakeDetector{}, recorder)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * testInterval)
		cancel()
	}()

	result := flow.Run(ctx)

	assert.Equal(t, verification.StateCancelled, result.State)
	assert.Nil(t, result.Record)
	assert.Equal(t, 0, recorder.callCount())
	assert.True(t, camera.released)
}

func TestFlow_PositionErrorFailsBeforeCamera(t *testing.T) {
	camera := &fakeCamera{frames: [][]byte{[]byte("match")}}
	recorder := &fakeRecorder{}

	flow := newTestFlow(camera, fakeDetector{}, recorder)
	flow.Geolocation = fakeGeo{err: errors.New("gps timeout")}
	flow.Timeout = 10 * time.Millisecond

	result := flow.Run(context.Background())

	assert.Equal(t, verification.StateFailed, result.State)
	assert.ErrorIs(t, result.Err, attendance.ErrPositionUnavailable)
	assert.False(t, camera.acquired)
}

func TestFlow_PersistenceErrorSurfaces(t *testing.T) {
	camera := &fakeCamera{frames: [][]byte{[]byte("match")}}
	detector := fakeDetector{embeddings: map[string]face.Embedding{"match": matchingFace}}
	recorder := &fakeRecorder{err: errors.New("connection reset")}

	flow := newTestFlow(camera, detector, recorder)
	result := flow.Run(context.Background())

	assert.Equal(t, verification.StateFailed, result.State)
	assert.Error(t, result.Err)
	assert.Equal(t, 1, recorder.callCount())
	assert.True(t, camera.released)
}

func TestFlow_BoundaryMatchDistanceIsAccepted(t *testing.T) {
	camera := &fakeCamera{frames: [][]byte{[]byte("edge")}}
	detector := fakeDetector{embeddings: map[string]face.Embedding{
		"edge": {face.MatchThreshold, 0, 0, 0},
	}}
	recorder := &fakeRecorder{response: attendance.RecordResponse{ID: "rec-1"}}

	flow := newTestFlow(camera, detector, recorder)
	result := flow.Run(context.Background())

	assert.Equal(t, verification.StateSuccess, result.State)
	assert.Equal(t, 1, recorder.callCount())
}
