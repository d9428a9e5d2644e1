package auth

import (
	"sync"

	"gitlab.com/paramountdax-exchange/site_maintenance/model"
)

// Cache godoc
type Cache struct {
	// list of permissions for each role
	roles map[string]map[string]bool
	// read write lock on data
	lock *sync.RWMutex
}

var cache *Cache

func init() {
	cache = &Cache{
		roles: make(map[string]map[string]bool),
		lock:  &sync.RWMutex{},
	}
	SetAll(FormatRolePermissions(DefaultRolePermissions()))
}

// DefaultRolePermissions grants every admin permission to administrators
func DefaultRolePermissions() map[string][]string {
	return map[string][]string{
		model.Administrator.String(): {
			model.PermMaintenanceView,
			model.PermMaintenanceManage,
			model.PermUpdatesNotify,
		},
	}
}

// HasPerm godoc
func HasPerm(role, perm string) (hasPerm bool) {
	cache.lock.RLock()
	if role, ok := cache.roles[role]; ok {
		hasPerm = role[perm]
	}
	cache.lock.RUnlock()
	return
}

// HasAnyPerm returns true if one of the roles grants the permission
func HasAnyPerm(roles []string, perm string) bool {
	for _, role := range roles {
		if HasPerm(role, perm) {
			return true
		}
	}
	return false
}

// SetAll godoc
func SetAll(roles map[string]map[string]bool) {
	cache.lock.Lock()
	cache.roles = roles
	cache.lock.Unlock()
}

// FormatRolePermissions turns a role to permission list mapping into the cached lookup
func FormatRolePermissions(permissions map[string][]string) map[string]map[string]bool {
	roles := make(map[string]map[string]bool)
	for role, perms := range permissions {
		if _, ok := roles[role]; !ok {
			roles[role] = make(map[string]bool)
		}
		for _, perm := range perms {
			roles[role][perm] = true
		}
	}
	return roles
}
