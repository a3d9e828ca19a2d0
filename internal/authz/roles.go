package authz

// Role classifies a user's administrative scope. The set is fixed by the
// backend; unknown values resolve to an empty permission set.
type Role string

const (
	RoleSuperAdmin      Role = "super_admin"
	RoleCollegeAdmin    Role = "college_admin"
	RoleFacultyAdmin    Role = "faculty_admin"
	RoleDepartmentAdmin Role = "department_admin"
	RoleAIHouseAdmin    Role = "ai_house_admin"
	RoleIncubatorAdmin  Role = "incubator_admin"
	RoleEditor          Role = "editor"
	RoleViewer          Role = "viewer"
)

// Roles lists every role the backend can assign.
var Roles = []Role{
	RoleSuperAdmin,
	RoleCollegeAdmin,
	RoleFacultyAdmin,
	RoleDepartmentAdmin,
	RoleAIHouseAdmin,
	RoleIncubatorAdmin,
	RoleEditor,
	RoleViewer,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}
