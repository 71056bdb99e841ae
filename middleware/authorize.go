package middleware

import (
	"context"

	"petcare/services/access"

	"github.com/gin-gonic/gin"
)

const requestContextKey = "requestContext"

// Authorizer builds a RequestContext for one operation.
type Authorizer interface {
	Run(ctx context.Context, credential string, op access.Operation) (access.RequestContext, error)
}

// Authorize runs the access pipeline for op and stores the resulting
// RequestContext on the gin context. Any failure aborts the request.
func Authorize(authorizer Authorizer, op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ""
		if !op.IsPublic {
			credential = access.BearerCredential(c.GetHeader("Authorization"))
		}

		rc, err := authorizer.Run(c.Request.Context(), credential, op)
		if err != nil {
			RespondError(c, err)
			return
		}

		c.Set(requestContextKey, rc)
		if rc.Authenticated() {
			c.Set("principalID", rc.PrincipalID())
		}
		c.Next()
	}
}

// RequestContextFrom returns the context Authorize stored, or an empty one.
func RequestContextFrom(c *gin.Context) access.RequestContext {
	if v, exists := c.Get(requestContextKey); exists {
		if rc, ok := v.(access.RequestContext); ok {
			return rc
		}
	}
	return access.RequestContext{}
}
