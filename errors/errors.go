package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrInvalidChannelKind = fmt.Errorf("channel kind cannot host a bridge thread")
	ErrCapacityExhausted  = fmt.Errorf("room id space exhausted")
	ErrRoomNotFound       = fmt.Errorf("room not found")
	ErrChannelCreation    = fmt.Errorf("bridge thread creation failed")
	ErrChannelGone        = fmt.Errorf("channel no longer exists")
	ErrTransientSend      = fmt.Errorf("transient relay send failure")
)
