// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNothingToRun is returned by NewServer when the API is disabled and no
// workers were given.
var errNothingToRun = errors.New("no HTTP server or workers to run")
