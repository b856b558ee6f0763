package domain

import (
	"strings"
	"time"
)

type HealthStatus string

const (
	HealthStatusOnline  HealthStatus = "online"
	HealthStatusOffline HealthStatus = "offline"
	HealthStatusError   HealthStatus = "error"
	HealthStatusUnknown HealthStatus = "unknown"
)

type ShiftState string

const (
	ShiftStateOpen    ShiftState = "open"
	ShiftStateClosed  ShiftState = "closed"
	ShiftStateUnknown ShiftState = "unknown"
)

type DeviceHealth struct {
	Status     HealthStatus
	LastSeenAt *time.Time
	LastError  string
	ShiftState ShiftState
	UpdatedAt  time.Time
}

func UnknownHealth() DeviceHealth {
	return DeviceHealth{
		Status:     HealthStatusUnknown,
		ShiftState: ShiftStateUnknown,
	}
}

// HealthReport is the outcome of one contact attempt with a device.
type HealthReport struct {
	Status       HealthStatus
	ShiftState   *ShiftState
	ErrorMessage string
}

func OnlineReport(shift *ShiftState) HealthReport {
	return HealthReport{Status: HealthStatusOnline, ShiftState: shift}
}

func ErrorReport(message string) HealthReport {
	return HealthReport{Status: HealthStatusError, ErrorMessage: message}
}

func (r HealthReport) Validate() error {
	switch r.Status {
	case HealthStatusOnline, HealthStatusOffline, HealthStatusError, HealthStatusUnknown:
	default:
		return newValidationError("status", "unknown health status %q", r.Status)
	}
	if r.ShiftState != nil {
		switch *r.ShiftState {
		case ShiftStateOpen, ShiftStateClosed, ShiftStateUnknown:
		default:
			return newValidationError("shiftState", "unknown shift state %q", *r.ShiftState)
		}
	}
	return nil
}

// Apply overwrites status, message and timestamp as a whole. LastSeenAt only
// moves on successful contact and the shift state survives reports that do
// not carry one.
func (h DeviceHealth) Apply(report HealthReport, now time.Time) DeviceHealth {
	next := DeviceHealth{
		Status:     report.Status,
		LastError:  report.ErrorMessage,
		LastSeenAt: h.LastSeenAt,
		ShiftState: h.ShiftState,
		UpdatedAt:  now,
	}
	if report.Status == HealthStatusOnline {
		seen := now
		next.LastSeenAt = &seen
	}
	if report.ShiftState != nil {
		next.ShiftState = *report.ShiftState
	}
	if next.ShiftState == "" {
		next.ShiftState = ShiftStateUnknown
	}
	return next
}

// ParseShiftState maps register vocabulary onto ShiftState.
func ParseShiftState(raw string) (ShiftState, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "opened", "open", "expired":
		return ShiftStateOpen, true
	case "closed":
		return ShiftStateClosed, true
	default:
		return "", false
	}
}
