package models

type Page string

const (
	HomePage           Page = "home"
	SearchPage         Page = "search"
	PropertyDetailPage Page = "property-detail"
	LandlordDashboard  Page = "landlord-dashboard"
	AgentDashboard     Page = "agent-dashboard"
	AdminDashboard     Page = "admin-dashboard"
	AuthPage           Page = "auth"
	BoostingPage       Page = "boosting"
	ProfilePage        Page = "profile"
)

var pagePaths = map[Page]string{
	HomePage:           "/",
	SearchPage:         "/search",
	PropertyDetailPage: "/properties",
	LandlordDashboard:  "/dashboard/landlord",
	AgentDashboard:     "/dashboard/agent",
	AdminDashboard:     "/dashboard/admin",
	AuthPage:           "/auth",
	BoostingPage:       "/boosting",
	ProfilePage:        "/profile",
}

// Path is the shell route that renders the page.
func (p Page) Path() string {
	if path, ok := pagePaths[p]; ok {
		return path
	}
	return "/"
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient notification shown next to a view.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

func Success(text string) Notice { return Notice{Level: NoticeSuccess, Text: text} }

func Failure(text string) Notice { return Notice{Level: NoticeError, Text: text} }

// View is the document every shell route renders.
type View struct {
	Page    Page     `json:"page"`
	Data    any      `json:"data,omitempty"`
	Notices []Notice `json:"notices,omitempty"`
}
