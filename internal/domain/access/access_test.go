package access_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkyc/kyc/internal/domain/access"
)

// grants mirrors the product's authorization policy, restated independently so
// the exhaustive test below fails if the role table drifts.
var grants = map[string]map[access.Resource][]access.Permission{
	"admin": {
		access.ResourceCustomer:    {access.PermissionRead, access.PermissionWrite, access.PermissionDelete, access.PermissionApprove, access.PermissionAdmin},
		access.ResourceRisk:        {access.PermissionRead, access.PermissionWrite, access.PermissionDelete, access.PermissionApprove, access.PermissionAdmin},
		access.ResourceAlert:       {access.PermissionRead, access.PermissionWrite, access.PermissionDelete, access.PermissionApprove, access.PermissionAdmin},
		access.ResourceTransaction: {access.PermissionRead, access.PermissionWrite, access.PermissionDelete, access.PermissionApprove, access.PermissionAdmin},
		access.ResourceAudit:       {access.PermissionRead, access.PermissionWrite, access.PermissionDelete, access.PermissionApprove, access.PermissionAdmin},
		access.ResourceUser:        {access.PermissionRead, access.PermissionWrite, access.PermissionDelete, access.PermissionApprove, access.PermissionAdmin},
		access.ResourceSystem:      {access.PermissionRead, access.PermissionWrite, access.PermissionDelete, access.PermissionApprove, access.PermissionAdmin},
	},
	"compliance_officer": {
		access.ResourceCustomer:    {access.PermissionRead, access.PermissionWrite, access.PermissionApprove},
		access.ResourceRisk:        {access.PermissionRead, access.PermissionWrite, access.PermissionApprove},
		access.ResourceAlert:       {access.PermissionRead, access.PermissionWrite, access.PermissionApprove},
		access.ResourceTransaction: {access.PermissionRead, access.PermissionWrite},
		access.ResourceAudit:       {access.PermissionRead},
	},
	"kyc_analyst": {
		access.ResourceCustomer:    {access.PermissionRead, access.PermissionWrite},
		access.ResourceRisk:        {access.PermissionRead},
		access.ResourceAlert:       {access.PermissionRead, access.PermissionWrite},
		access.ResourceTransaction: {access.PermissionRead},
	},
	"risk_officer": {
		access.ResourceCustomer:    {access.PermissionRead},
		access.ResourceRisk:        {access.PermissionRead, access.PermissionWrite, access.PermissionApprove},
		access.ResourceAlert:       {access.PermissionRead, access.PermissionWrite},
		access.ResourceTransaction: {access.PermissionRead, access.PermissionWrite},
	},
	"supervisor": {
		access.ResourceCustomer:    {access.PermissionRead},
		access.ResourceRisk:        {access.PermissionRead},
		access.ResourceAlert:       {access.PermissionRead, access.PermissionApprove},
		access.ResourceTransaction: {access.PermissionRead},
		access.ResourceAudit:       {access.PermissionRead},
	},
}

func granted(role string, resource access.Resource, permission access.Permission) bool {
	for _, p := range grants[role][resource] {
		if p == permission {
			return true
		}
	}
	return false
}

// TestCheckAccess_Exhaustive walks every (role, resource, permission)
// combination in the policy: 5 roles x 7 resources x 5 permissions.
func TestCheckAccess_Exhaustive(t *testing.T) {
	combinations := 0
	for role := range grants {
		for _, resource := range access.Resources {
			for _, permission := range access.Permissions {
				combinations++
				want := granted(role, resource, permission)
				name := fmt.Sprintf("%s/%s/%s", role, resource, permission)
				assert.Equal(t, want, access.HasPermission(role, resource, permission), "HasPermission %s", name)
				assert.Equal(t, want, access.CheckAccess(role, resource, permission), "CheckAccess %s", name)
			}
		}
	}
	assert.Equal(t, 175, combinations)
}

func TestCheckAccess_UnknownRole(t *testing.T) {
	for _, role := range []string{"", "auditor", "Admin", "ADMIN", "kyc-analyst", "root"} {
		for _, resource := range access.Resources {
			for _, permission := range access.Permissions {
				assert.False(t, access.CheckAccess(role, resource, permission),
					"unknown role %q must deny %s/%s", role, resource, permission)
			}
		}
	}
}

func TestCheckAccess_UnknownResourceAndPermission(t *testing.T) {
	assert.False(t, access.CheckAccess("admin", access.Resource("ledger"), access.PermissionRead))
	assert.False(t, access.CheckAccess("kyc_analyst", access.ResourceCustomer, access.Permission("export")))
}

func TestCheckAccess_Scenarios(t *testing.T) {
	// risk_officer may write transactions but has no audit grant at all.
	assert.True(t, access.CheckAccess("risk_officer", access.ResourceTransaction, access.PermissionWrite))
	assert.False(t, access.CheckAccess("risk_officer", access.ResourceAudit, access.PermissionRead))

	// supervisor approves alerts without being able to edit them.
	assert.True(t, access.CheckAccess("supervisor", access.ResourceAlert, access.PermissionApprove))
	assert.False(t, access.CheckAccess("supervisor", access.ResourceAlert, access.PermissionWrite))
}

func TestRolePermissions_UnknownRole(t *testing.T) {
	perms := access.RolePermissions("nobody")
	require.NotNil(t, perms)
	assert.Empty(t, perms)
}

func TestRolePermissions_ReturnsCopy(t *testing.T) {
	perms := access.RolePermissions("kyc_analyst")
	require.True(t, perms[access.ResourceCustomer].Has(access.PermissionWrite))

	// Mutating the returned map must not poison the policy table.
	perms[access.ResourceAudit] = access.NewPermissionSet(access.PermissionAdmin)
	delete(perms[access.ResourceCustomer], access.PermissionWrite)

	assert.False(t, access.CheckAccess("kyc_analyst", access.ResourceAudit, access.PermissionAdmin))
	assert.True(t, access.CheckAccess("kyc_analyst", access.ResourceCustomer, access.PermissionWrite))
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, []string{"admin", "compliance_officer", "kyc_analyst", "risk_officer", "supervisor"}, access.RoleNames())
	assert.True(t, access.KnownRole("compliance_officer"))
	assert.False(t, access.KnownRole("compliance"))
}
