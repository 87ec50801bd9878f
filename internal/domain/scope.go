package domain

// Scope limits a read to a set of site or plant ids. The zero value is
// unrestricted.
type Scope struct {
	Restricted bool
	SiteIDs    []string
}

// Unrestricted is the scope of internal staff.
var Unrestricted = Scope{}

// Restrict returns a scope that only admits ids. An empty list admits
// nothing.
func Restrict(ids []string) Scope {
	cp := make([]string, len(ids))
	copy(cp, ids)
	return Scope{Restricted: true, SiteIDs: cp}
}

// Allows reports whether id is visible under s.
func (s Scope) Allows(id string) bool {
	if !s.Restricted {
		return true
	}
	for _, sid := range s.SiteIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// Empty reports whether s admits nothing.
func (s Scope) Empty() bool {
	return s.Restricted && len(s.SiteIDs) == 0
}

// Narrow intersects s with a single requested id. An empty id keeps s.
func (s Scope) Narrow(id string) Scope {
	if id == "" {
		return s
	}
	if !s.Allows(id) {
		return Restrict(nil)
	}
	return Restrict([]string{id})
}
