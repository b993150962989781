// Package access implements role-based access control for the KYC service.
//
// The authorization policy is a static role table defined once at process start
// and immutable thereafter. It is deliberately represented as data rather than
// branching logic so the policy can be audited and tested exhaustively
// (5 roles x 7 resources x 5 permissions).
package access

// Permission identifies an action a role may perform on a resource.
type Permission string

const (
	PermissionRead    Permission = "read"
	PermissionWrite   Permission = "write"
	PermissionDelete  Permission = "delete"
	PermissionApprove Permission = "approve"
	PermissionAdmin   Permission = "admin"
)

// Permissions lists every defined permission. Checks are set-membership tests,
// not a hierarchy: admin does not imply the others unless granted explicitly.
var Permissions = []Permission{
	PermissionRead,
	PermissionWrite,
	PermissionDelete,
	PermissionApprove,
	PermissionAdmin,
}

// Resource identifies a protected object class.
type Resource string

const (
	ResourceCustomer    Resource = "customer"
	ResourceRisk        Resource = "risk"
	ResourceAlert       Resource = "alert"
	ResourceTransaction Resource = "transaction"
	ResourceAudit       Resource = "audit"
	ResourceUser        Resource = "user"
	ResourceSystem      Resource = "system"
)

// Resources lists every protected resource.
var Resources = []Resource{
	ResourceCustomer,
	ResourceRisk,
	ResourceAlert,
	ResourceTransaction,
	ResourceAudit,
	ResourceUser,
	ResourceSystem,
}

// PermissionSet is the set of permissions a role holds on one resource.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a PermissionSet from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given permission.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Role is a named bundle of per-resource permission sets. A resource missing
// from Permissions is denied for every permission (default-deny).
type Role struct {
	Name        string
	DisplayName string
	Description string
	Permissions map[Resource]PermissionSet
}

// allPermissions grants every permission on every resource.
func allPermissions() map[Resource]PermissionSet {
	grants := make(map[Resource]PermissionSet, len(Resources))
	for _, r := range Resources {
		grants[r] = NewPermissionSet(Permissions...)
	}
	return grants
}

// roles is the authorization policy. It is the single source of truth for
// every access decision in the system.
var roles = map[string]Role{
	"admin": {
		Name:        "admin",
		DisplayName: "Admin",
		Description: "Full system access",
		Permissions: allPermissions(),
	},
	"compliance_officer": {
		Name:        "compliance_officer",
		DisplayName: "Compliance Officer",
		Description: "Compliance monitoring and approval",
		Permissions: map[Resource]PermissionSet{
			ResourceCustomer:    NewPermissionSet(PermissionRead, PermissionWrite, PermissionApprove),
			ResourceRisk:        NewPermissionSet(PermissionRead, PermissionWrite, PermissionApprove),
			ResourceAlert:       NewPermissionSet(PermissionRead, PermissionWrite, PermissionApprove),
			ResourceTransaction: NewPermissionSet(PermissionRead, PermissionWrite),
			ResourceAudit:       NewPermissionSet(PermissionRead),
		},
	},
	"kyc_analyst": {
		Name:        "kyc_analyst",
		DisplayName: "KYC Analyst",
		Description: "Customer onboarding and verification",
		Permissions: map[Resource]PermissionSet{
			ResourceCustomer:    NewPermissionSet(PermissionRead, PermissionWrite),
			ResourceRisk:        NewPermissionSet(PermissionRead),
			ResourceAlert:       NewPermissionSet(PermissionRead, PermissionWrite),
			ResourceTransaction: NewPermissionSet(PermissionRead),
		},
	},
	"risk_officer": {
		Name:        "risk_officer",
		DisplayName: "Risk Officer",
		Description: "Risk assessment and monitoring",
		Permissions: map[Resource]PermissionSet{
			ResourceCustomer:    NewPermissionSet(PermissionRead),
			ResourceRisk:        NewPermissionSet(PermissionRead, PermissionWrite, PermissionApprove),
			ResourceAlert:       NewPermissionSet(PermissionRead, PermissionWrite),
			ResourceTransaction: NewPermissionSet(PermissionRead, PermissionWrite),
		},
	},
	"supervisor": {
		Name:        "supervisor",
		DisplayName: "Supervisor",
		Description: "Team supervision and task management",
		Permissions: map[Resource]PermissionSet{
			ResourceCustomer:    NewPermissionSet(PermissionRead),
			ResourceRisk:        NewPermissionSet(PermissionRead),
			ResourceAlert:       NewPermissionSet(PermissionRead, PermissionApprove),
			ResourceTransaction: NewPermissionSet(PermissionRead),
			ResourceAudit:       NewPermissionSet(PermissionRead),
		},
	},
}
