package model

import "time"

// SyncMetadata tracks the health and status of directory synchronization
type SyncMetadata struct {
	LastSyncSuccess time.Time // Last successful full sync
	LastSyncAttempt time.Time // Last sync attempt (success or failure)
	TeamCount       int       // Number of teams at last successful sync
	ChannelCount    int       // Number of channels at last successful sync
	UserCount       int       // Number of users at last successful sync
}
