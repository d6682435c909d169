package domain

import "testing"

func TestRoleSet_Allows(t *testing.T) {
	if !AllowAuthenticated.Allows(RoleOperator) {
		t.Fatal("pass-through set must admit any role")
	}
	if !AllowGovernance.Allows(RoleGovernance) {
		t.Fatal("governance must be admitted to AllowGovernance")
	}
	if AllowGovernance.Allows(RoleSubManager) {
		t.Fatal("sub-manager must not be admitted to AllowGovernance")
	}
	if AllowAudit.Allows(RoleOperator) {
		t.Fatal("operator must not be admitted to AllowAudit")
	}
	if !AllowAudit.Allows(RoleAuditor) {
		t.Fatal("auditor must be admitted to AllowAudit")
	}
	if AllowOperationsFull.Allows(RoleAuditor) {
		t.Fatal("auditor must not be admitted to AllowOperationsFull")
	}
}

func TestAllowedRoles_UnknownOperationDeniesAll(t *testing.T) {
	set := AllowedRoles(Operation("unknown.op"))
	for _, r := range []Role{RoleGovernance, RoleSubManager, RoleSocialGroup, RoleAuditor, RoleOperator} {
		if set.Allows(r) {
			t.Fatalf("unknown operation admitted role %s", r)
		}
	}
}

func TestCapabilities_RegisterUserIsGovernanceOnly(t *testing.T) {
	set := AllowedRoles(OpRegisterUser)
	if !set.Allows(RoleGovernance) {
		t.Fatal("governance must register users")
	}
	for _, r := range []Role{RoleSubManager, RoleSocialGroup, RoleAuditor, RoleOperator} {
		if set.Allows(r) {
			t.Fatalf("role %s must not register users", r)
		}
	}
}

func TestCapabilities_OnlyUserAdministrationIsRestricted(t *testing.T) {
	for op, set := range Capabilities {
		if op == OpRegisterUser {
			continue
		}
		for _, r := range []Role{RoleGovernance, RoleSubManager, RoleSocialGroup, RoleAuditor, RoleOperator} {
			if !set.Allows(r) {
				t.Fatalf("%s must admit role %s", op, r)
			}
		}
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleAuditor.Valid() {
		t.Fatal("AUDITOR should be valid")
	}
	if Role("ADMIN").Valid() {
		t.Fatal("ADMIN should not be valid")
	}
}
