package models

// Supported sheet file types
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionSheetFile  = 0644
)
