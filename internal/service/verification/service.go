package verification

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pontocerto/pontocerto-backend-go/internal/domain/attendance"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/employee"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/location"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/shift"
	"github.com/pontocerto/pontocerto-backend-go/internal/domain/verification"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/face"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/geo"
	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/sse"
	attendanceservice "github.com/pontocerto/pontocerto-backend-go/internal/service/attendance"
)

// Sessions that stop receiving frames are cancelled after this long;
// finished sessions are forgotten after retentionPeriod.
const (
	staleAfter      = 60 * time.Second
	retentionPeriod = 10 * time.Minute
)

// framePayload is the wire format of one submitted frame. The client
// extracts the embedding on-device and ships it with the photo
// snapshot; the server never runs face detection itself.
type framePayload struct {
	Embedding   []float64 `json:"embedding"`
	PhotoBase64 string    `json:"photo_base64"`
}

func parseFrame(frame []byte) (face.Embedding, []byte, error) {
	var payload framePayload
	if err := json.Unmarshal(frame, &payload); err != nil {
		return nil, nil, face.ErrNoFaceDetected
	}
	if len(payload.Embedding) == 0 {
		return nil, nil, face.ErrNoFaceDetected
	}

	var photo []byte
	if payload.PhotoBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(payload.PhotoBase64)
		if err == nil {
			photo = decoded
		}
	}

	return face.Embedding(payload.Embedding), photo, nil
}

// frameDetector adapts submitted frame payloads to the flow's
// FaceDetector interface.
type frameDetector struct{}

func (frameDetector) Detect(ctx context.Context, frame []byte) (face.Embedding, error) {
	embedding, _, err := parseFrame(frame)
	return embedding, err
}

// frameCamera feeds client-submitted frames into the flow. Capacity one
// with drop-oldest semantics: only the latest unprocessed frame matters.
type frameCamera struct {
	frames chan []byte
}

func newFrameCamera() *frameCamera {
	return &frameCamera{frames: make(chan []byte, 1)}
}

func (c *frameCamera) Acquire(ctx context.Context) error { return nil }
func (c *frameCamera) Release()                          {}

func (c *frameCamera) Frame(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case frame := <-c.frames:
		return frame, nil
	}
}

func (c *frameCamera) push(frame []byte) {
	select {
	case <-c.frames:
	default:
	}
	select {
	case c.frames <- frame:
	default:
	}
}

// staticPosition replays the fix the client obtained when starting the
// flow; the 10s timeout applies to providers that fetch one lazily.
type staticPosition struct {
	position geo.Coordinate
}

func (p staticPosition) CurrentPosition(ctx context.Context) (geo.Coordinate, error) {
	return p.position, nil
}

type session struct {
	id         string
	employeeID string
	companyID  string
	camera     *frameCamera
	cancel     context.CancelFunc

	mu          sync.Mutex
	state       verification.State
	message     string
	distance    float64
	record      *attendance.RecordResponse
	lastFrameAt time.Time
	finishedAt  time.Time
}

func (s *session) snapshot() verification.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return verification.SessionResponse{
		SessionID:      s.id,
		State:          s.state,
		Message:        s.message,
		DistanceMeters: s.distance,
		Record:         s.record,
	}
}

type VerificationServiceImpl struct {
	employeeRepo      employee.EmployeeRepository
	locationRepo      location.LocationRepository
	shiftRepo         shift.ShiftRepository
	recordRepo        attendance.RecordRepository
	attendanceService attendance.AttendanceService
	hub               *sse.Hub

	// Interval overrides the sampling interval in tests; zero means the
	// flow default.
	Interval time.Duration

	mu         sync.Mutex
	sessions   map[string]*session
	byEmployee map[string]string
}

func NewVerificationService(
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
	shiftRepo shift.ShiftRepository,
	recordRepo attendance.RecordRepository,
	attendanceService attendance.AttendanceService,
	hub *sse.Hub,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		employeeRepo:      employeeRepo,
		locationRepo:      locationRepo,
		shiftRepo:         shiftRepo,
		recordRepo:        recordRepo,
		attendanceService: attendanceService,
		hub:               hub,
		sessions:          make(map[string]*session),
		byEmployee:        make(map[string]string),
	}
}

// Start implements verification.VerificationService.
func (v *VerificationServiceImpl) Start(ctx context.Context, req verification.StartRequest) (verification.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return verification.SessionResponse{}, err
	}

	token, tokenClaims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return verification.SessionResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := tokenClaims["company_id"].(string)
	if !ok || companyID == "" {
		return verification.SessionResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}
	employeeID, ok := tokenClaims["employee_id"].(string)
	if !ok || employeeID == "" {
		return verification.SessionResponse{}, attendance.ErrNotIdentified
	}

	emp, err := v.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return verification.SessionResponse{}, employee.ErrEmployeeNotFound
		}
		return verification.SessionResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Enrolled() {
		return verification.SessionResponse{}, employee.ErrNotEnrolled
	}

	loc, err := v.locationRepo.GetByID(ctx, req.LocationID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return verification.SessionResponse{}, attendance.ErrMissingLocation
		}
		return verification.SessionResponse{}, fmt.Errorf("failed to get location: %w", err)
	}

	sh, err := v.shiftRepo.GetByID(ctx, req.ShiftID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return verification.SessionResponse{}, attendance.ErrMissingShift
		}
		return verification.SessionResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	sessionID, err := uuid.NewV7()
	if err != nil {
		return verification.SessionResponse{}, fmt.Errorf("failed to generate session ID: %w", err)
	}

	v.mu.Lock()
	if existingID, active := v.byEmployee[employeeID]; active {
		if existing, ok := v.sessions[existingID]; ok && !existing.snapshotState().Terminal() {
			v.mu.Unlock()
			return verification.SessionResponse{}, verification.ErrSessionActive
		}
	}

	sess := &session{
		id:          sessionID.String(),
		employeeID:  employeeID,
		companyID:   companyID,
		camera:      newFrameCamera(),
		state:       verification.StateSampling,
		lastFrameAt: time.Now(),
	}
	v.sessions[sess.id] = sess
	v.byEmployee[employeeID] = sess.id
	v.mu.Unlock()

	flowCtx, cancel := context.WithCancel(jwtauth.NewContext(context.Background(), token, nil))
	sess.cancel = cancel

	flow := &Flow{
		Geolocation:  staticPosition{position: geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}},
		Camera:       sess.camera,
		Detector:     frameDetector{},
		Recorder:     v.recorder(emp, loc, sh),
		Reference:    emp.ReferenceEmbedding,
		Center:       loc.Coordinate,
		RadiusMeters: float64(loc.RadiusMeters),
		Interval:     v.Interval,
		OnHint: func(hint string) {
			sess.mu.Lock()
			sess.message = hint
			sess.mu.Unlock()
		},
	}

	go v.runFlow(flowCtx, cancel, sess, flow)

	return sess.snapshot(), nil
}

func (s *session) snapshotState() verification.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (v *VerificationServiceImpl) recorder(emp employee.Employee, loc location.Location, sh shift.Shift) Recorder {
	return recorderFunc(func(ctx context.Context, position geo.Coordinate, frame []byte) (attendance.RecordResponse, error) {
		today := time.Now().Format("2006-01-02")
		todays, err := v.recordRepo.ListByEmployeeAndDate(ctx, emp.ID, today, emp.CompanyID)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to list today's records: %w", err)
		}

		_, photo, err := parseFrame(frame)
		if err != nil {
			photo = nil
		}

		return v.attendanceService.Record(ctx, attendance.RecordRequest{
			EmployeeID: emp.ID,
			LocationID: loc.ID,
			ShiftID:    sh.ID,
			Type:       attendanceservice.NextAction(todays),
			Latitude:   position.Latitude,
			Longitude:  position.Longitude,
			Photo:      photo,
			Verified:   true,
		})
	})
}

type recorderFunc func(ctx context.Context, position geo.Coordinate, frame []byte) (attendance.RecordResponse, error)

func (f recorderFunc) Record(ctx context.Context, position geo.Coordinate, frame []byte) (attendance.RecordResponse, error) {
	return f(ctx, position, frame)
}

func (v *VerificationServiceImpl) runFlow(ctx context.Context, cancel context.CancelFunc, sess *session, flow *Flow) {
	defer cancel()

	result := flow.Run(ctx)

	sess.mu.Lock()
	sess.state = result.State
	sess.message = result.Message
	sess.distance = result.DistanceMeters
	sess.record = result.Record
	sess.finishedAt = time.Now()
	sess.mu.Unlock()

	v.mu.Lock()
	if v.byEmployee[sess.employeeID] == sess.id {
		delete(v.byEmployee, sess.employeeID)
	}
	v.mu.Unlock()

	if result.Err != nil {
		slog.Warn("Verification flow ended with error",
			"session_id", sess.id,
			"employee_id", sess.employeeID,
			"state", result.State,
			"error", result.Err,
		)
	}

	v.hub.Publish(sess.companyID, sse.Event{
		CompanyID: sess.companyID,
		Event:     "verification.finished",
		Data:      sess.snapshot(),
	})
}

// SubmitFrame implements verification.VerificationService.
func (v *VerificationServiceImpl) SubmitFrame(ctx context.Context, sessionID string, frame []byte) (verification.SessionResponse, error) {
	sess, err := v.get(sessionID)
	if err != nil {
		return verification.SessionResponse{}, err
	}

	if !sess.snapshotState().Terminal() {
		sess.camera.push(frame)
		sess.mu.Lock()
		sess.lastFrameAt = time.Now()
		sess.mu.Unlock()
	}

	return sess.snapshot(), nil
}

// Status implements verification.VerificationService.
func (v *VerificationServiceImpl) Status(ctx context.Context, sessionID string) (verification.SessionResponse, error) {
	sess, err := v.get(sessionID)
	if err != nil {
		return verification.SessionResponse{}, err
	}
	return sess.snapshot(), nil
}

// Cancel implements verification.VerificationService.
func (v *VerificationServiceImpl) Cancel(ctx context.Context, sessionID string) error {
	sess, err := v.get(sessionID)
	if err != nil {
		return err
	}

	if sess.cancel != nil {
		sess.cancel()
	}
	return nil
}

// CleanupStale implements verification.VerificationService. Cancels
// sampling sessions whose client went silent and drops finished
// sessions past the retention period.
func (v *VerificationServiceImpl) CleanupStale(ctx context.Context) error {
	now := time.Now()

	v.mu.Lock()
	var stale []*session
	for id, sess := range v.sessions {
		sess.mu.Lock()
		terminal := sess.state.Terminal()
		silent := now.Sub(sess.lastFrameAt) > staleAfter
		expired := terminal && now.Sub(sess.finishedAt) > retentionPeriod
		sess.mu.Unlock()

		if expired {
			delete(v.sessions, id)
			continue
		}
		if !terminal && silent {
			stale = append(stale, sess)
		}
	}
	v.mu.Unlock()

	for _, sess := range stale {
		slog.Info("Cancelling stale verification session", "session_id", sess.id, "employee_id", sess.employeeID)
		if sess.cancel != nil {
			sess.cancel()
		}
	}

	return nil
}

func (v *VerificationServiceImpl) get(sessionID string) (*session, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	sess, ok := v.sessions[sessionID]
	if !ok {
		return nil, verification.ErrSessionNotFound
	}
	return sess, nil
}
