package authz

// Permission is a named capability granted to a role via the static table
// below.
type Permission string

const (
	PermCollegeManage    Permission = "college_manage"
	PermFacultyManage    Permission = "faculty_manage"
	PermFacultyRead      Permission = "faculty_read"
	PermFacultyEdit      Permission = "faculty_edit"
	PermDepartmentManage Permission = "department_manage"
	PermDepartmentRead   Permission = "department_read"
	PermDepartmentEdit   Permission = "department_edit"
	PermUserManage       Permission = "user_manage"
	PermNewsManage       Permission = "news_manage"
	PermNewsCreate       Permission = "news_create"
	PermNewsEdit         Permission = "news_edit"
	PermFilesManage      Permission = "files_manage"
	PermFilesUpload      Permission = "files_upload"
	PermAIHouseManage    Permission = "ai_house_manage"
	PermProjectsManage   Permission = "projects_manage"
	PermEventsManage     Permission = "events_manage"
	PermIncubatorManage  Permission = "incubator_manage"
	PermStartupsManage   Permission = "startups_manage"
	PermProgramsManage   Permission = "programs_manage"
	PermReadOnly         Permission = "read_only"
)

// rolePermissions maps each role to its granted permission set. super_admin is
// intentionally absent: it short-circuits every check before the lookup.
var rolePermissions = map[Role][]Permission{
	RoleCollegeAdmin: {
		PermCollegeManage,
		PermFacultyManage,
		PermDepartmentManage,
		PermUserManage,
		PermNewsManage,
		PermFilesManage,
	},
	RoleFacultyAdmin: {
		PermFacultyRead,
		PermFacultyEdit,
		PermDepartmentManage,
		PermNewsManage,
		PermFilesManage,
	},
	RoleDepartmentAdmin: {
		PermDepartmentRead,
		PermDepartmentEdit,
		PermNewsCreate,
		PermNewsEdit,
		PermFilesManage,
	},
	RoleAIHouseAdmin: {
		PermAIHouseManage,
		PermProjectsManage,
		PermEventsManage,
	},
	RoleIncubatorAdmin: {
		PermIncubatorManage,
		PermStartupsManage,
		PermProgramsManage,
	},
	RoleEditor: {
		PermNewsCreate,
		PermNewsEdit,
		PermFilesUpload,
	},
	RoleViewer: {
		PermReadOnly,
	},
}

// PermissionsForRole returns the static permission set granted to a role. An
// unrecognized role yields nil.
func PermissionsForRole(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}
