package domain

// RequiresApproval reports whether a new booking must go through the
// approval workflow: only in restricted zones, and only when the
// requester holds neither the facility nor the admin role.
func RequiresApproval(zoneRestricted bool, roles []string) bool {
	if !zoneRestricted {
		return false
	}
	for _, role := range roles {
		if role == RoleFacility || role == RoleAdmin {
			return false
		}
	}
	return true
}

// PickApprover selects an approver deterministically: the candidate
// with the smallest identifier. Returns false when there are none.
func PickApprover(candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c < best {
			best = c
		}
	}
	return best, true
}
