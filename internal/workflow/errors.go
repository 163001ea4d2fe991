// Package workflow implements the per-product verification workflow as a
// 4-node state graph (init → classify → referee? → finalize). Products that
// cannot be judged short-circuit from init straight to finalize with a
// sentinel outcome.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrInitFailed     = errors.New("verification setup failed")
	ErrClassifyFailed = errors.New("classification failed")
	ErrRefereeFailed  = errors.New("referee review failed")
	ErrFinalizeFailed = errors.New("finalization failed")
)
