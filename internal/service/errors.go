package service

import "errors"

var (
	ErrConcurrentModification = errors.New("sync state modified during sync")
	ErrSessionTimeout         = errors.New("sync session timed out")
	ErrSessionInterrupted     = errors.New("sync session interrupted")
	ErrWorkerNotStopped       = errors.New("sync worker did not stop after cancellation")

	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidFrequency    = errors.New("sync frequency must be positive")
	ErrEmptyTitle          = errors.New("file title is empty")
	ErrFileRemoved         = errors.New("file is removed locally")
	ErrSyncInProgress      = errors.New("sync already in progress")
)
