package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrCompanyNotFound     = errors.New("company not found")

	// ErrFaceNotRecognized means the open-set identification scan found no
	// enrolled employee within the match threshold. Retryable: the client
	// keeps sampling frames.
	ErrFaceNotRecognized = errors.New("face not recognized")
)
