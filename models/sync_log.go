// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
	"time"
)

// SyncLogFlags is a bit set describing how a session ran.
type SyncLogFlags uint32

const (
	// SyncLogManual marks a session started by the user.
	SyncLogManual SyncLogFlags = 1 << iota
	// SyncLogNotConnected marks a session whose connectivity check failed.
	SyncLogNotConnected
)

// SyncLogRecord is the persisted journal of one sync session.
type SyncLogRecord struct {
	ID           int64        `json:"id"`
	ProviderID   int64        `json:"provider_id"`
	Account      string       `json:"account"`
	ProviderType ProviderType `json:"provider_type"`
	Flags        SyncLogFlags `json:"flags"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"`
	Entries      []string     `json:"entries,omitempty"`
	Conflicts    []string     `json:"conflicts,omitempty"`
	Failures     []string     `json:"failures,omitempty"`
}

// NewSyncLogRecord starts a log for a session against p.
func NewSyncLogRecord(p Provider, manual bool, start time.Time) *SyncLogRecord {
	rec := &SyncLogRecord{
		ProviderID:   p.ID,
		Account:      p.Account,
		ProviderType: p.Type,
		StartTime:    start,
	}
	if manual {
		rec.Flags |= SyncLogManual
	}
	return rec
}

func (r *SyncLogRecord) AddEntry(format string, args ...any) {
	r.Entries = append(r.Entries, fmt.Sprintf(format, args...))
}

func (r *SyncLogRecord) AddConflictFile(description string) {
	r.Conflicts = append(r.Conflicts, description)
}

func (r *SyncLogRecord) AddFailure(err error) {
	if err == nil {
		return
	}
	r.Failures = append(r.Failures, err.Error())
}

func (r *SyncLogRecord) SetNotConnected() {
	r.Flags |= SyncLogNotConnected
}

func (r *SyncLogRecord) IsManual() bool {
	return r.Flags&SyncLogManual != 0
}

func (r *SyncLogRecord) IsNotConnected() bool {
	return r.Flags&SyncLogNotConnected != 0
}

// Succeeded reports whether the session finished connected and without
// failures.
func (r *SyncLogRecord) Succeeded() bool {
	return !r.IsNotConnected() && len(r.Failures) == 0
}

// Duration is zero until the session has ended.
func (r *SyncLogRecord) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// Summary renders the log as human readable text.
func (r *SyncLogRecord) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%s)", r.ProviderType, r.Account, r.StartTime.Format(time.DateTime))
	if r.IsManual() {
		sb.WriteString(" manual")
	}
	if r.IsNotConnected() {
		sb.WriteString(" not connected")
	}
	for _, e := range r.Entries {
		sb.WriteString("\n  ")
		sb.WriteString(e)
	}
	for _, c := range r.Conflicts {
		sb.WriteString("\n  conflict: ")
		sb.WriteString(c)
	}
	for _, f := range r.Failures {
		sb.WriteString("\n  failure: ")
		sb.WriteString(f)
	}
	return sb.String()
}
