// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiment

import "errors"

// ErrSearchFailed wraps backend failures during a run.
var ErrSearchFailed = errors.New("search failed")
