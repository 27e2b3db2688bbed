// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-pass-sync API handlers.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation. Keeping them
// in one place keeps the wording consistent throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidFrequency is returned when a sync frequency is not a valid
	// Go duration such as "30m".
	MsgInvalidFrequency = "invalid frequency, expected a duration such as 30m"

	// MsgInvalidLimit is returned when the logs limit is not a non-negative
	// integer.
	MsgInvalidLimit = "invalid limit"

	// MsgInternalServerError replaces the message of any error mapped to 500
	// so storage details do not leak to API clients.
	MsgInternalServerError = "internal server error"
)
