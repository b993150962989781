package access

import "sort"

// HasPermission reports whether the named role holds the given permission on
// the given resource. Unknown roles, resources without an entry in the role's
// permission map, and absent permissions all deny. It never errors.
func HasPermission(role string, resource Resource, permission Permission) bool {
	r, ok := roles[role]
	if !ok {
		return false
	}
	set, ok := r.Permissions[resource]
	if !ok {
		return false
	}
	return set.Has(permission)
}

// CheckAccess is the authorization gate used by every protected operation.
// It has the same contract as HasPermission but additionally degrades to deny
// on any internal fault: an access check must fail closed, never propagate.
func CheckAccess(role string, resource Resource, permission Permission) (allowed bool) {
	defer func() {
		if recover() != nil {
			allowed = false
		}
	}()
	return HasPermission(role, resource, permission)
}

// RolePermissions returns a copy of the full permission map for a role, for
// introspection and menu construction. Unknown roles get an empty map. The
// copy keeps the policy table immutable regardless of what callers do with
// the result.
func RolePermissions(role string) map[Resource]PermissionSet {
	r, ok := roles[role]
	if !ok {
		return map[Resource]PermissionSet{}
	}
	out := make(map[Resource]PermissionSet, len(r.Permissions))
	for resource, set := range r.Permissions {
		copied := make(PermissionSet, len(set))
		for p := range set {
			copied[p] = struct{}{}
		}
		out[resource] = copied
	}
	return out
}

// RoleByName returns the role definition for a role identifier.
func RoleByName(name string) (Role, bool) {
	r, ok := roles[name]
	return r, ok
}

// RoleNames returns the defined role identifiers in sorted order.
func RoleNames() []string {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KnownRole reports whether the identifier names a defined role.
func KnownRole(name string) bool {
	_, ok := roles[name]
	return ok
}
