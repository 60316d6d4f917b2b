package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openpark/server/internal/world"
)

func writeRoles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStaffRoles(t *testing.T) {
	path := writeRoles(t, `
roles:
  - role: mechanic
    name_format: "Wrench %d"
    salary: 2000
    hire_x: 4
    hire_y: 7
  - role: guard
    salary: 1200
`)
	table, err := LoadStaffRoles(path)
	if err != nil {
		t.Fatalf("LoadStaffRoles: %v", err)
	}

	mech := table.Role(world.PersonMechanic)
	if mech.NameFormat != "Wrench %d" || mech.Salary != 2000 {
		t.Fatalf("mechanic = %+v", mech)
	}
	if mech.HirePos.X != 4 || mech.HirePos.Y != 7 {
		t.Fatalf("mechanic hire pos = %+v", mech.HirePos)
	}

	// No name_format: title-cased role name plus the ordinal.
	guard := table.Role(world.PersonGuard)
	if guard.NameFormat != "Guard %d" {
		t.Fatalf("guard name format = %q", guard.NameFormat)
	}
	if guard.Salary != 1200 {
		t.Fatalf("guard salary = %d", guard.Salary)
	}

	// Roles absent from the file keep their defaults.
	def := world.DefaultRoleTable().Role(world.PersonHandyman)
	if table.Role(world.PersonHandyman) != def {
		t.Fatalf("handyman = %+v, want default", table.Role(world.PersonHandyman))
	}
}

func TestLoadStaffRolesErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown role",
			content: `
roles:
  - role: janitor
    salary: 500
`,
			wantErr: "unknown role",
		},
		{
			name: "duplicate role",
			content: `
roles:
  - role: guard
    salary: 500
  - role: guard
    salary: 600
`,
			wantErr: "defined twice",
		},
		{
			name: "zero salary",
			content: `
roles:
  - role: mechanic
    salary: 0
`,
			wantErr: "positive salary",
		},
		{
			name:    "bad yaml",
			content: "roles: [",
			wantErr: "parse roles",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeRoles(t, tc.content)
			_, err := LoadStaffRoles(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadStaffRolesMissingFileReturnsDefaults(t *testing.T) {
	table, err := LoadStaffRoles(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("missing file did not error")
	}
	if table != world.DefaultRoleTable() {
		t.Fatal("missing file did not fall back to defaults")
	}
}
