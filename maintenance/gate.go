package maintenance

// IsBypassed returns true if the requester holds at least one of the allowed roles
func IsBypassed(userRoles, allowedRoles []string) bool {
	if len(userRoles) == 0 || len(allowedRoles) == 0 {
		return false
	}
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = struct{}{}
	}
	for _, role := range userRoles {
		if _, ok := allowed[role]; ok {
			return true
		}
	}
	return false
}
