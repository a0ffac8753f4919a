// Package profile loads named dialect profiles from YAML.
//
// A profile derives a dialect from one of the built-in families and
// overrides some of its capabilities, which is how engines speaking a
// close variant of a family (CockroachDB, TiDB, Turso) are described:
//
//	profiles:
//	  - name: cockroach
//	    family: postgres
//	    capabilities:
//	      row_locking: basic
//	      nulls_ordering: true
//
// Unknown families, keys and capability values are load errors.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/mssql"
	"github.com/zoobzio/sqlkit/mysql"
	"github.com/zoobzio/sqlkit/postgres"
	"github.com/zoobzio/sqlkit/sqlite"
)

// Family names accepted in a profile.
const (
	FamilyPostgres = "postgres"
	FamilyMySQL    = "mysql"
	FamilyMariaDB  = "mariadb"
	FamilySQLite   = "sqlite"
	FamilyMSSQL    = "mssql"
)

// File is the document layout read by Load.
type File struct {
	Profiles []Schema `json:"profiles" yaml:"profiles"`
}

// Schema declares one profile.
type Schema struct {
	Capabilities *CapabilitiesSchema `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Name         string              `json:"name" yaml:"name"`
	Family       string              `json:"family" yaml:"family"`
}

// CapabilitiesSchema holds capability overrides. Nil fields keep the
// family's value.
//
//nolint:govet // fieldalignment: grouped as in the YAML document
type CapabilitiesSchema struct {
	Returning      *string `json:"returning,omitempty" yaml:"returning,omitempty"`           // none | clause | output
	Upsert         *string `json:"upsert,omitempty" yaml:"upsert,omitempty"`                 // none | on_conflict | on_duplicate_key
	RowLocking     *string `json:"row_locking,omitempty" yaml:"row_locking,omitempty"`       // none | basic | full
	JSONOperators  *string `json:"json_operators,omitempty" yaml:"json_operators,omitempty"` // none | arrow | function
	WindowFuncs    *bool   `json:"window_functions,omitempty" yaml:"window_functions,omitempty"`
	NullsOrdering  *bool   `json:"nulls_ordering,omitempty" yaml:"nulls_ordering,omitempty"`
	FullOuterJoin  *bool   `json:"full_outer_join,omitempty" yaml:"full_outer_join,omitempty"`
	DistinctOn     *bool   `json:"distinct_on,omitempty" yaml:"distinct_on,omitempty"`
	Arrays         *bool   `json:"arrays,omitempty" yaml:"arrays,omitempty"`
	UpdateLimit    *bool   `json:"update_limit,omitempty" yaml:"update_limit,omitempty"`
	DeleteLimit    *bool   `json:"delete_limit,omitempty" yaml:"delete_limit,omitempty"`
}

// Set is an immutable collection of loaded profiles.
type Set struct {
	dialects map[string]render.Dialect
}

// Get returns the named profile.
func (s *Set) Get(name string) (render.Dialect, bool) {
	d, ok := s.dialects[name]
	return d, ok
}

// Names returns the profile names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.dialects))
	for n := range s.dialects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load reads a YAML profile document.
func Load(r io.Reader) (*Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &Set{dialects: map[string]render.Dialect{}}, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return Build(f)
}

// LoadFile reads a YAML profile document from path.
func LoadFile(path string) (*Set, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Build converts a decoded document to a Set.
func Build(f File) (*Set, error) {
	s := &Set{dialects: make(map[string]render.Dialect, len(f.Profiles))}
	for i, p := range f.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d: name is required", i)
		}
		if _, dup := s.dialects[p.Name]; dup {
			return nil, fmt.Errorf("profile %q: defined more than once", p.Name)
		}
		d, err := p.Dialect()
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		s.dialects[p.Name] = d
	}
	return s, nil
}

// Dialect builds the dialect the schema describes.
func (p Schema) Dialect() (render.Dialect, error) {
	var desc render.Descriptor
	switch strings.ToLower(p.Family) {
	case FamilyPostgres:
		desc = postgres.Descriptor
	case FamilyMySQL:
		desc = mysql.Descriptor
	case FamilyMariaDB:
		desc = mysql.MariaDBDescriptor
	case FamilySQLite:
		desc = sqlite.Descriptor
	case FamilyMSSQL:
		desc = mssql.Descriptor
	case "":
		return nil, fmt.Errorf("family is required")
	default:
		return nil, fmt.Errorf("unknown family %q", p.Family)
	}

	if p.Name != "" {
		desc.Name = p.Name
	}
	if p.Capabilities != nil {
		caps, err := p.Capabilities.apply(desc.Capabilities)
		if err != nil {
			return nil, err
		}
		desc.Capabilities = caps
	}

	switch strings.ToLower(p.Family) {
	case FamilyPostgres:
		return postgres.WithDescriptor(desc), nil
	case FamilyMySQL, FamilyMariaDB:
		return mysql.WithDescriptor(desc), nil
	case FamilySQLite:
		return sqlite.WithDescriptor(desc), nil
	default:
		return mssql.WithDescriptor(desc), nil
	}
}

func (c *CapabilitiesSchema) apply(caps render.Capabilities) (render.Capabilities, error) {
	if c.Returning != nil {
		switch *c.Returning {
		case "none":
			caps.Returning = render.ReturningNone
		case "clause":
			caps.Returning = render.ReturningClause
		case "output":
			caps.Returning = render.ReturningOutput
		default:
			return caps, fmt.Errorf("invalid returning %q", *c.Returning)
		}
		on := caps.Returning != render.ReturningNone
		caps.ReturningOnInsert = on
		caps.ReturningOnUpdate = on
		caps.ReturningOnDelete = on
	}
	if c.Upsert != nil {
		switch *c.Upsert {
		case "none":
			caps.Upsert = render.UpsertNone
		case "on_conflict":
			caps.Upsert = render.UpsertOnConflict
		case "on_duplicate_key":
			caps.Upsert = render.UpsertOnDuplicateKey
		default:
			return caps, fmt.Errorf("invalid upsert %q", *c.Upsert)
		}
	}
	if c.RowLocking != nil {
		switch *c.RowLocking {
		case "none":
			caps.RowLocking = render.RowLockingNone
		case "basic":
			caps.RowLocking = render.RowLockingBasic
		case "full":
			caps.RowLocking = render.RowLockingFull
		default:
			return caps, fmt.Errorf("invalid row_locking %q", *c.RowLocking)
		}
	}
	if c.JSONOperators != nil {
		switch *c.JSONOperators {
		case "none":
			caps.JSON = render.JSONNone
		case "arrow":
			caps.JSON = render.JSONArrow
		case "function":
			caps.JSON = render.JSONFunction
		default:
			return caps, fmt.Errorf("invalid json_operators %q", *c.JSONOperators)
		}
	}

	for _, o := range []struct {
		v   *bool
		dst *bool
	}{
		{c.WindowFuncs, &caps.WindowFunctions},
		{c.NullsOrdering, &caps.NullsOrdering},
		{c.FullOuterJoin, &caps.FullOuterJoin},
		{c.DistinctOn, &caps.DistinctOn},
		{c.Arrays, &caps.Arrays},
		{c.UpdateLimit, &caps.UpdateLimit},
		{c.DeleteLimit, &caps.DeleteLimit},
	} {
		if o.v != nil {
			*o.dst = *o.v
		}
	}
	return caps, nil
}
