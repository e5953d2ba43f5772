// Package refdata is the static reference data behind the form: the skill
// catalog per department and the manager directory. It is read-only once
// loaded.
package refdata

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	onboarding "github.com/reoring/onboarding"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Department is a selectable department with its ordered skill catalog.
type Department struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Manager is one entry of the manager directory.
type Manager struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
}

// Reference is the loaded catalog and directory.
type Reference struct {
	departments []Department
	managers    []Manager
	byDept      map[string]int
}

type rawManager struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Department string `yaml:"department"`
}

type rawFile struct {
	Departments []Department `yaml:"departments"`
	Managers    []rawManager `yaml:"managers"`
}

// ErrInvalidReference reports reference data that cannot back the form.
var ErrInvalidReference = errors.New("refdata: invalid reference data")

// Default returns the embedded reference data.
func Default() *Reference {
	r, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("refdata: embedded defaults: %v", err))
	}
	return r
}

// Load reads reference data from a YAML (or JSON) file.
func Load(path string) (*Reference, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refdata: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and checks reference data.
func Parse(data []byte) (*Reference, error) {
	var raw rawFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	r := &Reference{byDept: make(map[string]int, len(raw.Departments))}
	for _, d := range raw.Departments {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: department without name", ErrInvalidReference)
		}
		if _, dup := r.byDept[name]; dup {
			return nil, fmt.Errorf("%w: duplicate department %q", ErrInvalidReference, name)
		}
		r.byDept[name] = len(r.departments)
		r.departments = append(r.departments, Department{Name: name, Skills: slices.Clone(d.Skills)})
	}
	seen := map[uuid.UUID]bool{}
	for _, m := range raw.Managers {
		id, err := uuid.Parse(m.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: manager %q: %v", ErrInvalidReference, m.Name, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate manager id %s", ErrInvalidReference, id)
		}
		seen[id] = true
		if _, ok := r.byDept[m.Department]; !ok {
			return nil, fmt.Errorf("%w: manager %q references unknown department %q", ErrInvalidReference, m.Name, m.Department)
		}
		r.managers = append(r.managers, Manager{ID: id, Name: strings.TrimSpace(m.Name), Department: m.Department})
	}
	return r, nil
}

// Departments returns the departments in catalog order.
func (r *Reference) Departments() []Department {
	out := make([]Department, len(r.departments))
	for i, d := range r.departments {
		out[i] = Department{Name: d.Name, Skills: slices.Clone(d.Skills)}
	}
	return out
}

// DepartmentNames returns the department keys in catalog order.
func (r *Reference) DepartmentNames() []string {
	out := make([]string, len(r.departments))
	for i, d := range r.departments {
		out[i] = d.Name
	}
	return out
}

// HasDepartment reports whether name is a known department key.
func (r *Reference) HasDepartment(name string) bool {
	_, ok := r.byDept[name]
	return ok
}

// Skills returns the ordered catalog for a department; nil when unknown or empty.
func (r *Reference) Skills(department string) []string {
	i, ok := r.byDept[department]
	if !ok {
		return nil
	}
	return slices.Clone(r.departments[i].Skills)
}

// SkillAvailable reports whether skill is in the department's catalog.
func (r *Reference) SkillAvailable(department, skill string) bool {
	i, ok := r.byDept[department]
	if !ok {
		return false
	}
	return slices.Contains(r.departments[i].Skills, skill)
}

// Managers returns the whole directory.
func (r *Reference) Managers() []Manager { return slices.Clone(r.managers) }

// ManagersFor returns the directory subset for a department.
func (r *Reference) ManagersFor(department string) []Manager {
	var out []Manager
	for _, m := range r.managers {
		if m.Department == department {
			out = append(out, m)
		}
	}
	return out
}

// Manager looks a manager up by name.
func (r *Reference) Manager(name string) (Manager, bool) {
	for _, m := range r.managers {
		if m.Name == name {
			return m, true
		}
	}
	return Manager{}, false
}

// ManagerInDepartment reports whether the named manager belongs to department.
func (r *Reference) ManagerInDepartment(name, department string) bool {
	for _, m := range r.managers {
		if m.Name == name && m.Department == department {
			return true
		}
	}
	return false
}

// WithReference stores the reference data used by validators and the resolver.
func WithReference(ctx context.Context, r *Reference) context.Context {
	return onboarding.WithService[*Reference](ctx, r)
}

var fallback = Default()

// From returns the reference data stored in ctx, or the embedded defaults.
func From(ctx context.Context) *Reference {
	if r, ok := onboarding.Service[*Reference](ctx); ok && r != nil {
		return r
	}
	return fallback
}
