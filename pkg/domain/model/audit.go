package model

import "time"

// Audit holds the lifecycle metadata every synchronized entity carries.
// CreatedAt/CreatedBy are written exactly once at first creation;
// ModifiedAt/ModifiedBy are rewritten on every update.
type Audit struct {
	CreatedAt  time.Time
	CreatedBy  string
	ModifiedAt time.Time
	ModifiedBy string
}
