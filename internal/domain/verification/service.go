package verification

import "context"

// VerificationService exposes the continuous verification loop over HTTP:
// the client starts a session with a position fix, streams camera frames
// into it and polls (or subscribes) for the terminal outcome.
type VerificationService interface {
	// Start gates the geofence and opens a sampling session. Returns a
	// LOCATION_ABORT session immediately when the fix is outside the
	// radius; the camera is never engaged in that case.
	Start(ctx context.Context, req StartRequest) (SessionResponse, error)

	// SubmitFrame feeds one camera frame into the session. Older
	// unprocessed frames are dropped; only the latest matters.
	SubmitFrame(ctx context.Context, sessionID string, frame []byte) (SessionResponse, error)

	// Status returns the current session snapshot.
	Status(ctx context.Context, sessionID string) (SessionResponse, error)

	// Cancel stops sampling and releases the session without recording.
	Cancel(ctx context.Context, sessionID string) error

	// CleanupStale cancels sessions that stopped receiving frames. Run
	// by the scheduler.
	CleanupStale(ctx context.Context) error
}
