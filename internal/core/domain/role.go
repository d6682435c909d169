package domain

// Role is the access level of a user inside its organization.
type Role string

const (
	RoleGovernance  Role = "GOBERNANZA"
	RoleSubManager  Role = "SUBGERENTE"
	RoleSocialGroup Role = "GRUPO_SOCIAL"
	RoleAuditor     Role = "AUDITOR"
	RoleOperator    Role = "OPERADOR"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleGovernance, RoleSubManager, RoleSocialGroup, RoleAuditor, RoleOperator:
		return true
	}
	return false
}

// RoleSet is an explicit allow-list of roles. A nil set admits every
// authenticated user.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Allows reports whether role is a member of the set.
func (s RoleSet) Allows(role Role) bool {
	if s == nil {
		return true
	}
	_, ok := s[role]
	return ok
}

// Predefined allow-sets. They are independent compositions, not a ranking:
// each protected operation picks one explicitly in Capabilities.
var (
	AllowGovernance     = NewRoleSet(RoleGovernance)
	AllowManagement     = NewRoleSet(RoleGovernance, RoleSubManager)
	AllowOperationsFull = NewRoleSet(RoleGovernance, RoleSubManager, RoleSocialGroup)
	AllowAudit          = NewRoleSet(RoleGovernance, RoleSubManager, RoleSocialGroup, RoleAuditor)

	// AllowAuthenticated is the pass-through set.
	AllowAuthenticated RoleSet = nil
)

// Operation names a protected use case.
type Operation string

const (
	OpRegisterUser        Operation = "auth.register_user"
	OpListObjectives      Operation = "dashboard.list_objectives"
	OpCreateObjective     Operation = "dashboard.create_objective"
	OpUpdateObjective     Operation = "dashboard.update_objective"
	OpFinancialSummary    Operation = "dashboard.financial_summary"
	OpCreateTransaction   Operation = "dashboard.create_transaction"
	OpListProjects        Operation = "dashboard.list_projects"
	OpCreateProject       Operation = "dashboard.create_project"
	OpImpactMetrics       Operation = "dashboard.impact_metrics"
	OpInbox               Operation = "operations.inbox"
	OpTicketDetail        Operation = "operations.ticket_detail"
	OpAssignTicket        Operation = "operations.assign_ticket"
	OpTransferTicket      Operation = "operations.transfer_ticket"
	OpRegisterExpense     Operation = "operations.register_expense"
	OpCoverageSuggestions Operation = "operations.coverage_suggestions"
)

// Capabilities maps every protected operation to the roles allowed to call
// it. Tenant scoping already confines every dashboard and operations call to
// the caller's organization, so only user administration narrows the role
// set. Adding a new Role means reviewing every entry here.
var Capabilities = map[Operation]RoleSet{
	OpRegisterUser:        AllowGovernance,
	OpListObjectives:      AllowAuthenticated,
	OpCreateObjective:     AllowAuthenticated,
	OpUpdateObjective:     AllowAuthenticated,
	OpFinancialSummary:    AllowAuthenticated,
	OpCreateTransaction:   AllowAuthenticated,
	OpListProjects:        AllowAuthenticated,
	OpCreateProject:       AllowAuthenticated,
	OpImpactMetrics:       AllowAuthenticated,
	OpInbox:               AllowAuthenticated,
	OpTicketDetail:        AllowAuthenticated,
	OpAssignTicket:        AllowAuthenticated,
	OpTransferTicket:      AllowAuthenticated,
	OpRegisterExpense:     AllowAuthenticated,
	OpCoverageSuggestions: AllowAuthenticated,
}

// AllowedRoles returns the allow-set declared for op. Unknown operations get
// an empty, non-nil set so that they deny everyone.
func AllowedRoles(op Operation) RoleSet {
	set, ok := Capabilities[op]
	if !ok {
		return RoleSet{}
	}
	return set
}
