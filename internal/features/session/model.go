package session

// Session is the subset of AccountSessionInfo the read path needs: the
// language the session's notifications should be rendered in.
type Session struct {
	ID       string `bson:"_id"`
	Language string `bson:"language"`
}

// DefaultLanguage is used when a session document has no language set.
const DefaultLanguage = "es"
