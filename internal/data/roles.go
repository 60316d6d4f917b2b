// Package data loads the YAML-defined game tables. Only the staff role
// table exists so far; ride and shop tables will join it.
package data

import (
	"fmt"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/openpark/server/internal/world"
)

// roleEntry is one role definition in roles.yaml.
type roleEntry struct {
	Role       string `yaml:"role"`        // mechanic, handyman, guard, entertainer
	NameFormat string `yaml:"name_format"` // display-name template with one %d
	Salary     int64  `yaml:"salary"`      // monthly wage per head
	HireX      int16  `yaml:"hire_x"`
	HireY      int16  `yaml:"hire_y"`
}

type rolesFile struct {
	Roles []roleEntry `yaml:"roles"`
}

var roleTypes = map[string]world.PersonType{
	"mechanic":    world.PersonMechanic,
	"handyman":    world.PersonHandyman,
	"guard":       world.PersonGuard,
	"entertainer": world.PersonEntertainer,
}

// LoadStaffRoles reads the role table from YAML. Roles missing from the
// file keep their built-in defaults; a role named twice is an error.
func LoadStaffRoles(path string) (world.RoleTable, error) {
	table := world.DefaultRoleTable()

	raw, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("read roles %s: %w", path, err)
	}
	var file rolesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return table, fmt.Errorf("parse roles %s: %w", path, err)
	}

	titler := cases.Title(language.English)
	seen := make(map[string]bool, len(file.Roles))
	for _, e := range file.Roles {
		t, ok := roleTypes[e.Role]
		if !ok {
			return table, fmt.Errorf("roles %s: unknown role %q", path, e.Role)
		}
		if seen[e.Role] {
			return table, fmt.Errorf("roles %s: role %q defined twice", path, e.Role)
		}
		seen[e.Role] = true

		info := world.RoleInfo{
			NameFormat: e.NameFormat,
			Salary:     e.Salary,
			HirePos:    world.XYZ16{X: e.HireX, Y: e.HireY},
		}
		if info.NameFormat == "" {
			info.NameFormat = titler.String(e.Role) + " %d"
		}
		if info.Salary <= 0 {
			return table, fmt.Errorf("roles %s: role %q needs a positive salary", path, e.Role)
		}
		table.SetRole(t, info)
	}
	return table, nil
}
