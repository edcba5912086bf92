// Package security carries the per-request SecurityContext attached by
// the auth and session guards, mirroring the teacher's pattern of
// stashing request-scoped values with gin.Context.Set/Get.
package security

import "github.com/gin-gonic/gin"

const contextKey = "security_context"

// Context is built once per request by the auth guard and enriched by
// the session guard. It never outlives the request.
type Context struct {
	UserID        string
	BusinessID    string
	SessionID     string
	AccountTypeID string
	Language      string
}

// DefaultLanguage is used until the session guard resolves one.
const DefaultLanguage = "es"

func New(userID, businessID, sessionID, accountTypeID string) *Context {
	return &Context{
		UserID:        userID,
		BusinessID:    businessID,
		SessionID:     sessionID,
		AccountTypeID: accountTypeID,
		Language:      DefaultLanguage,
	}
}

// Attach stores the context on the gin request.
func Attach(c *gin.Context, sc *Context) {
	c.Set(contextKey, sc)
}

// FromGin retrieves the context attached by the auth guard, if any.
func FromGin(c *gin.Context) (*Context, bool) {
	val, exists := c.Get(contextKey)
	if !exists {
		return nil, false
	}
	sc, ok := val.(*Context)
	return sc, ok
}
