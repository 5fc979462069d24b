package model

// Privilege codes checked by middleware.RequirePrivilege.
const (
	PrivMeasurementWrite  = "measurement:write"
	PrivMeasurementDelete = "measurement:delete"
	PrivDataExport        = "data:export"
	PrivUnitManage        = "unit:manage"
	PrivUserManage        = "user:manage"
	PrivDataSeed          = "data:seed"
)

// AllPrivileges is granted to admins.
var AllPrivileges = []string{
	PrivMeasurementWrite,
	PrivMeasurementDelete,
	PrivDataExport,
	PrivUnitManage,
	PrivUserManage,
	PrivDataSeed,
}

var engineerPrivileges = []string{
	PrivMeasurementWrite,
	PrivMeasurementDelete,
	PrivDataExport,
}
