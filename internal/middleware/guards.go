package middleware

import "github.com/gin-gonic/gin"

// Guard inspects the request and returns an error to stop it.
type Guard func(c *gin.Context) error

// Guards runs each guard in order as a single handler. The first failing
// guard aborts the chain and the remaining ones are skipped.
func Guards(guards ...Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if runGuards(c, guards) {
			c.Next()
		}
	}
}

// Chain wraps controller so it only runs after every guard passed.
func Chain(controller gin.HandlerFunc, guards ...Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if runGuards(c, guards) {
			controller(c)
		}
	}
}

func runGuards(c *gin.Context, guards []Guard) bool {
	for _, guard := range guards {
		if c.IsAborted() {
			return false
		}
		if err := guard(c); err != nil {
			Abort(c, err)
			return false
		}
	}
	return !c.IsAborted()
}
