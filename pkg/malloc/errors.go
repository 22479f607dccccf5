package malloc

import "github.com/haborym/bucketalloc/internal/pagesource"

// FatalError is the only named error type this package surfaces, and it is
// always delivered via panic, never a return value: precondition violations
// and OS resource exhaustion are both treated as programmer errors with no
// recovery path. FatalError specifically marks the resource exhaustion case
// (a failed OS mapping); precondition violations panic through
// internal/debug.Assert instead, with a plain error value.
type FatalError = pagesource.FatalError
