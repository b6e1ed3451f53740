package appraisal

import "errors"

// ErrMissingSubject rejects a run submitted without a subject
// property. Every other input gap degrades to a not-computed report
// section instead of an error.
var ErrMissingSubject = errors.New("appraisal: missing subject property")
