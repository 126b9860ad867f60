package errors

import "errors"

// ErrOptimisticLock signals that a versioned row was modified by another
// operation between read and write.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")
