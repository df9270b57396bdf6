// Package rbac maps roles to resource/action permissions with casbin.
// Policies are seeded in code: the role set of a university back office is
// small and fixed, so there is no policy CRUD surface.
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// Role names carried in the JWT role claim.
const (
	RoleAdmin     = "ADMIN"
	RoleHR        = "HR_OFFICER"
	RoleRegistrar = "REGISTRAR"
	RoleFinance   = "FINANCE_OFFICER"
	RoleStaff     = "STAFF"
)

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{RoleAdmin, "campus", "*"},
		{RoleAdmin, "employee", "*"},
		{RoleAdmin, "student", "*"},
		{RoleAdmin, "leave", "*"},
		{RoleAdmin, "transfer", "*"},
		{RoleAdmin, "admission", "*"},
		{RoleAdmin, "payroll", "*"},
		{RoleAdmin, "certification", "*"},
		{RoleAdmin, "finance", "*"},

		{RoleHR, "employee", "read"},
		{RoleHR, "employee", "create"},
		{RoleHR, "employee", "update"},
		{RoleHR, "leave", "read"},
		{RoleHR, "leave", "approve"},
		{RoleHR, "transfer", "read"},
		{RoleHR, "transfer", "approve"},
		{RoleHR, "payroll", "read"},
		{RoleHR, "payroll", "create"},
		{RoleHR, "payroll", "process"},

		{RoleRegistrar, "student", "*"},
		{RoleRegistrar, "admission", "*"},
		{RoleRegistrar, "transfer", "*"},
		{RoleRegistrar, "certification", "*"},

		{RoleFinance, "finance", "*"},
		{RoleFinance, "payroll", "read"},
		{RoleFinance, "payroll", "approve"},
		{RoleFinance, "payroll", "pay"},
		{RoleFinance, "certification", "read"},

		{RoleStaff, "leave", "read"},
		{RoleStaff, "leave", "create"},
		{RoleStaff, "leave", "cancel"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
