package metrics

const Namespace = "scm_gateway"

const (
	CacheTypeRedis  = "redis"
	CacheTypeMemory = "memory"
)

const (
	CacheOperationTypeGet    = "get"
	CacheOperationTypeSet    = "set"
	CacheOperationTypeDelete = "delete"
)

// Sync record outcomes.
const (
	SyncResultEmitted   = "emitted"
	SyncResultUnchanged = "unchanged"
	SyncResultSkipped   = "skipped"
)

// Pickup outcomes.
const (
	PickupResultComplete = "complete"
	PickupResultPending  = "pending"
)
