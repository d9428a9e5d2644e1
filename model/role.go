package model

type RoleAlias string

const (
	Administrator RoleAlias = "administrator"
	Editor        RoleAlias = "editor"
	Author        RoleAlias = "author"
	Contributor   RoleAlias = "contributor"
	Subscriber    RoleAlias = "subscriber"
)

func (r RoleAlias) IsValid() bool {
	switch r {
	case Administrator, Editor, Author, Contributor, Subscriber:
		return true
	}
	return false
}

func (r RoleAlias) String() string {
	return string(r)
}

// EditableRoles lists the roles an operator can pick on the settings form
func EditableRoles() []RoleAlias {
	return []RoleAlias{Administrator, Editor, Author, Contributor, Subscriber}
}

// Permission aliases checked by the admin API
const (
	PermMaintenanceView   = "maintenance.view"
	PermMaintenanceManage = "maintenance.manage"
	PermUpdatesNotify     = "updates.notify"
)
