package models

// Session is the client-side view of the signed-in user.
type Session struct {
	LoggedIn    bool   `json:"logged_in"`
	Email       string `json:"email,omitempty"`
	Verified    bool   `json:"verified"`
	DisplayName string `json:"display_name,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// LoggedOutSession is the state every failure converges to.
func LoggedOutSession() Session {
	return Session{}
}
