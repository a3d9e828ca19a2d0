package authz

import "testing"

func TestSuperAdminAlwaysPasses(t *testing.T) {
	perms := []Permission{PermCollegeManage, PermNewsCreate, PermReadOnly, Permission("made_up")}
	for _, perm := range perms {
		if !HasPermission(RoleSuperAdmin, perm, Scope{}, Scope{CollegeID: "c9", FacultyID: "f9"}) {
			t.Fatalf("super_admin denied %q", perm)
		}
	}
	for _, rt := range []ResourceType{ResourceCollege, ResourceFaculty, ResourceNews, ResourceType("weird")} {
		if !CanAccessResource(RoleSuperAdmin, rt, Scope{}, Scope{}) {
			t.Fatalf("super_admin denied resource %q", rt)
		}
	}
}

func TestPermissionOutsideStaticSetDenied(t *testing.T) {
	for role, granted := range rolePermissions {
		set := make(map[Permission]struct{}, len(granted))
		for _, p := range granted {
			set[p] = struct{}{}
		}
		for _, perm := range allPermissions() {
			_, inSet := set[perm]
			got := HasPermission(role, perm, Scope{}, Scope{})
			if got != inSet {
				t.Fatalf("HasPermission(%s, %s)=%v, want %v", role, perm, got, inSet)
			}
		}
	}
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	for _, perm := range allPermissions() {
		if HasPermission(Role("registrar"), perm, Scope{}, Scope{}) {
			t.Fatalf("unknown role granted %q", perm)
		}
	}
	if got := PermissionsForRole(Role("registrar")); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}

func TestCollegeScopeCheck(t *testing.T) {
	user := Scope{CollegeID: "c1", FacultyID: "f1"}

	if !HasPermission(RoleCollegeAdmin, PermNewsManage, user, Scope{CollegeID: "c1"}) {
		t.Fatal("matching college denied")
	}
	if HasPermission(RoleCollegeAdmin, PermNewsManage, user, Scope{CollegeID: "c2"}) {
		t.Fatal("foreign college allowed")
	}
	// Unscoped resource passes on the permission alone.
	if !HasPermission(RoleCollegeAdmin, PermNewsManage, user, Scope{}) {
		t.Fatal("unscoped resource denied")
	}
}

func TestFacultyScopeCheck(t *testing.T) {
	user := Scope{CollegeID: "c1", FacultyID: "f1"}

	cases := []struct {
		name     string
		role     Role
		resource Scope
		want     bool
	}{
		{"faculty_admin matching faculty", RoleFacultyAdmin, Scope{FacultyID: "f1"}, true},
		{"faculty_admin unscoped", RoleFacultyAdmin, Scope{}, true},
		{"faculty_admin foreign faculty", RoleFacultyAdmin, Scope{FacultyID: "f2"}, false},
		{"college_admin bypasses faculty scope", RoleCollegeAdmin, Scope{FacultyID: "f2"}, true},
	}
	for _, tc := range cases {
		perm := PermFacultyEdit
		if tc.role == RoleCollegeAdmin {
			perm = PermFacultyManage
		}
		if got := HasPermission(tc.role, perm, user, tc.resource); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanAccessResource(t *testing.T) {
	cases := []struct {
		name     string
		role     Role
		rt       ResourceType
		user     Scope
		resource Scope
		want     bool
	}{
		{"college admin own college", RoleCollegeAdmin, ResourceCollege, Scope{CollegeID: "c1"}, Scope{CollegeID: "c1"}, true},
		{"college admin foreign college", RoleCollegeAdmin, ResourceCollege, Scope{CollegeID: "c1"}, Scope{CollegeID: "c2"}, false},
		{"faculty admin cannot manage college", RoleFacultyAdmin, ResourceCollege, Scope{FacultyID: "f1"}, Scope{}, false},
		{"faculty via college admin", RoleCollegeAdmin, ResourceFaculty, Scope{CollegeID: "c1"}, Scope{CollegeID: "c1"}, true},
		{"faculty via faculty admin", RoleFacultyAdmin, ResourceFaculty, Scope{FacultyID: "f1"}, Scope{FacultyID: "f1"}, true},
		{"faculty foreign faculty admin", RoleFacultyAdmin, ResourceFaculty, Scope{FacultyID: "f1"}, Scope{FacultyID: "f2"}, false},
		{"department by department admin", RoleDepartmentAdmin, ResourceDepartment, Scope{}, Scope{}, true},
		{"department by editor", RoleEditor, ResourceDepartment, Scope{}, Scope{}, false},
		{"news by editor", RoleEditor, ResourceNews, Scope{}, Scope{}, true},
		{"news by viewer", RoleViewer, ResourceNews, Scope{}, Scope{}, false},
		{"files by ai house admin", RoleAIHouseAdmin, ResourceFiles, Scope{}, Scope{}, false},
		{"unknown resource type", RoleCollegeAdmin, ResourceType("library"), Scope{}, Scope{}, false},
	}
	for _, tc := range cases {
		if got := CanAccessResource(tc.role, tc.rt, tc.user, tc.resource); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func allPermissions() []Permission {
	return []Permission{
		PermCollegeManage, PermFacultyManage, PermFacultyRead, PermFacultyEdit,
		PermDepartmentManage, PermDepartmentRead, PermDepartmentEdit,
		PermUserManage, PermNewsManage, PermNewsCreate, PermNewsEdit,
		PermFilesManage, PermFilesUpload, PermAIHouseManage, PermProjectsManage,
		PermEventsManage, PermIncubatorManage, PermStartupsManage,
		PermProgramsManage, PermReadOnly,
	}
}
