package models

// HighestDayNone is the date reported for the highest spending day when there
// are no expenses at all.
const HighestDayNone = "N/A"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
