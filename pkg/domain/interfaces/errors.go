package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by any repository backend when the requested
// entity does not exist. Callers decide whether absence means "create".
var ErrNotFound = goerr.New("entity not found")
