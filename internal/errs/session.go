package errs

import "errors"

var (
	// StorageError wraps failures of the backing session store on write
	// paths. Read paths fail closed instead of surfacing it.
	StorageError = errors.New("session store unavailable")
)
