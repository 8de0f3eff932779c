package auth

import "context"

// AuthService defines authentication for company admins and employees.
type AuthService interface {
	// Register creates a company and its owner account in one
	// transaction.
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)

	// Login authenticates a company admin by email and password.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle authenticates an admin via a verified Google
	// account previously linked to a user.
	LoginWithGoogle(ctx context.Context, googleID string, email string) (TokenResponse, error)

	// IdentifyEmployee runs open-set facial identification against every
	// enrolled employee of the company. Uses the same match threshold as
	// the in-flow re-verification.
	IdentifyEmployee(ctx context.Context, req IdentifyRequest) (IdentifyResponse, error)

	// LoginEmployeeWithPIN is the camera-less fallback.
	LoginEmployeeWithPIN(ctx context.Context, req PINLoginRequest) (TokenResponse, error)

	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
