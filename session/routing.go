package session

import "github.com/dcode-github/dormdash/models"

// DashboardFor is the page a role lands on after authenticating or
// switching roles.
func DashboardFor(role models.Role) models.Page {
	switch role {
	case models.Landlord:
		return models.LandlordDashboard
	case models.Agent:
		return models.AgentDashboard
	case models.Admin:
		return models.AdminDashboard
	default:
		return models.HomePage
	}
}

// Guard returns the identity when it is present and holds the required role.
// An empty required role admits any authenticated identity. When Guard
// reports false the caller renders the auth view in place of the page.
func Guard(store *Store, required models.Role) (*models.Identity, bool) {
	id := store.Identity()
	if id == nil {
		return nil, false
	}
	if required != "" && id.Role != required {
		return nil, false
	}
	return id, true
}
