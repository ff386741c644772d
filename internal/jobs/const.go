package jobs

import (
	"errors"
)

var (
	ErrSyncInProgress = errors.New("a synchronization is already running")
)
