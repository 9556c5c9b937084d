package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrConnectionFailure = fmt.Errorf("connection failure")
	ErrAlreadyConnected  = fmt.Errorf("already connected")
	ErrConnectInProgress = fmt.Errorf("connect already in progress")
	ErrConnectionClosed  = fmt.Errorf("connection closed")

	ErrMalformedPayload = fmt.Errorf("malformed payload")
	ErrUnknownStatus    = fmt.Errorf("unknown message status")

	ErrInvalidIdentity     = fmt.Errorf("invalid identity")
	ErrRegistrationPending = fmt.Errorf("registration already pending")
	ErrSessionClosed       = fmt.Errorf("session closed")
)
