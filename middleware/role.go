// middleware/role.go
package middleware

import (
	"net/http"
	"net/url"

	"cursos/models"
	"cursos/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Access is the audience a route is exposed to.
type Access int

const (
	// Public routes are open to everyone.
	Public Access = iota
	// AnonymousOnly routes (login, register, reset) send signed-in users home.
	AnonymousOnly
	// Private routes need any signed-in role.
	Private
	AdminOnly
	TeacherOnly
	StudentOnly
)

// allows reports whether a signed-in role may use a route of the given access.
func allows(role models.Role, access Access) bool {
	switch access {
	case Public, Private:
		return true
	case AnonymousOnly:
		return false
	case AdminOnly:
		return role == models.RoleAdmin
	case TeacherOnly:
		return role == models.RoleTeacher
	case StudentOnly:
		return role == models.RoleStudent
	}
	return false
}

// LoginPath is the login route carrying a return target.
func LoginPath(returnTo string) string {
	return "/login?redirect=" + url.QueryEscape(returnTo)
}

func redirect(c *gin.Context, target string) {
	c.Redirect(http.StatusSeeOther, target)
	c.Abort()
}

// Gate exposes a route group to the roles access allows. A session whose role
// cannot be parsed is corrupt: it is cleared and the visitor is sent to login.
func Gate(provider *session.Provider, access Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := provider.Get(c)
		role, err := sess.Role()
		if err != nil {
			zap.L().Warn("Clearing session with unrecognized role", zap.String("role", sess.RoleName()))
			provider.Clear(c, "unrecognized role")
			redirect(c, "/login")
			return
		}

		switch role {
		case models.RoleAnonymous:
			if access == Public || access == AnonymousOnly {
				c.Next()
				return
			}
			redirect(c, LoginPath(c.Request.URL.RequestURI()))
		case models.RoleAdmin, models.RoleTeacher, models.RoleStudent:
			if !allows(role, access) {
				redirect(c, "/")
				return
			}
			c.Next()
		}
	}
}

// Home sends "/" to the visitor's landing page; anonymous visitors get the catalog.
func Home(provider *session.Provider, catalog gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := provider.Get(c)
		role, err := sess.Role()
		if err != nil {
			provider.Clear(c, "unrecognized role")
			redirect(c, "/login")
			return
		}
		switch role {
		case models.RoleAnonymous:
			catalog(c)
		case models.RoleAdmin, models.RoleTeacher, models.RoleStudent:
			redirect(c, role.LandingPath())
		}
	}
}
