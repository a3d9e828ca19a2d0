// Package authz evaluates role and scope based access rules. Every function
// is pure: the static permission table is the only input besides the
// arguments, so callers can check access without a server or storage round
// trip. The backend performs its own authoritative checks; this package only
// mirrors them so the client can hide or disable what a user cannot touch.
package authz

// ResourceType names the scoped resource families the portal manages.
type ResourceType string

const (
	ResourceCollege    ResourceType = "college"
	ResourceFaculty    ResourceType = "faculty"
	ResourceDepartment ResourceType = "department"
	ResourceNews       ResourceType = "news"
	ResourceFiles      ResourceType = "files"
)

// Scope carries the organizational identifiers attached to a user or a
// resource. Empty means not scoped.
type Scope struct {
	CollegeID string
	FacultyID string
}

// HasPermission reports whether a role holding the user scope may exercise
// perm against the resource scope.
//
// super_admin always passes. Otherwise the permission must be in the role's
// static set, the resource college (when given) must match the user's, and
// the resource faculty (when given) must match the user's unless the role is
// college_admin, which spans every faculty in its college.
func HasPermission(role Role, perm Permission, user, resource Scope) bool {
	if role == RoleSuperAdmin {
		return true
	}

	granted := false
	for _, p := range rolePermissions[role] {
		if p == perm {
			granted = true
			break
		}
	}
	if !granted {
		return false
	}

	if resource.CollegeID != "" && user.CollegeID != resource.CollegeID {
		return false
	}
	if resource.FacultyID != "" && user.FacultyID != resource.FacultyID && role != RoleCollegeAdmin {
		return false
	}
	return true
}

// CanAccessResource reports whether a role holding the user scope may access
// a resource of the given type. Unknown resource types are denied.
func CanAccessResource(role Role, resourceType ResourceType, user, resource Scope) bool {
	if role == RoleSuperAdmin {
		return true
	}

	switch resourceType {
	case ResourceCollege:
		return role == RoleCollegeAdmin && user.CollegeID == resource.CollegeID

	case ResourceFaculty:
		return (role == RoleCollegeAdmin && user.CollegeID == resource.CollegeID) ||
			(role == RoleFacultyAdmin && user.FacultyID == resource.FacultyID)

	case ResourceDepartment:
		return role == RoleCollegeAdmin || role == RoleFacultyAdmin || role == RoleDepartmentAdmin

	case ResourceNews, ResourceFiles:
		switch role {
		case RoleCollegeAdmin, RoleFacultyAdmin, RoleDepartmentAdmin, RoleEditor:
			return true
		}
		return false

	default:
		return false
	}
}
