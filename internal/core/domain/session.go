package domain

// Role is the role a session acts with. It is selected outside the core and
// carried explicitly on every call instead of living in process-wide state.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleViewer     Role = "VIEWER"
)

// Permission is a key checked against the role store.
type Permission string

const (
	PermCustomersView        Permission = "customers.view"
	PermCustomersCreate      Permission = "customers.create"
	PermCustomersSync        Permission = "customers.sync"
	PermCustomersMerge       Permission = "customers.merge"
	PermCustomersDelete      Permission = "customers.delete"
	PermCustomersImport      Permission = "customers.import"
	PermLedgersView          Permission = "ledgers.view"
	PermLedgersCreate        Permission = "ledgers.create"
	PermReconciliationView   Permission = "reconciliation.view"
	PermReconciliationMatch  Permission = "reconciliation.match"
	PermReconciliationFinish Permission = "reconciliation.finish"
	PermReconciliationImport Permission = "reconciliation.import"
	PermAuditView            Permission = "audit.view"
)

// SessionContext identifies who is acting and with which role.
type SessionContext struct {
	UserID string `json:"userID"`
	Role   Role   `json:"role"`
}
