// File: handlers/nav.go
package handlers

import (
	"net/http"

	"cursos/models"
	"cursos/services/session"

	"github.com/gin-gonic/gin"
)

// MenuItem is one entry of the navigation bar.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var (
	publicMenu = []MenuItem{
		{Label: "Courses", Path: "/courses"},
		{Label: "Sign in", Path: "/login"},
		{Label: "Register", Path: "/register"},
	}
	accountMenu = []MenuItem{
		{Label: "Profile", Path: "/profile"},
		{Label: "Sign out", Path: "/logout"},
	}
)

// Menu returns the navigation entries of a role.
func Menu(role models.Role) []MenuItem {
	var items []MenuItem
	switch role {
	case models.RoleAnonymous:
		return publicMenu
	case models.RoleAdmin:
		items = []MenuItem{
			{Label: "Users", Path: "/admin/users"},
			{Label: "Categories", Path: "/admin/categories"},
			{Label: "Audit log", Path: "/admin/logs"},
			{Label: "Register teacher", Path: "/registerteacher"},
		}
	case models.RoleTeacher:
		items = []MenuItem{
			{Label: "My courses", Path: "/teacher/courses"},
		}
	case models.RoleStudent:
		items = []MenuItem{
			{Label: "Courses", Path: "/courses"},
			{Label: "My courses", Path: "/student/my-courses"},
		}
	}
	return append(items, accountMenu...)
}

// NavHandler returns the menu and the signed-in user for the current session.
func NavHandler(sessions *session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Get(c)
		role, err := sess.Role()
		if err != nil {
			sessions.Clear(c, "unrecognized role")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		data := gin.H{"role": role.String(), "menu": Menu(role)}
		if sess != nil {
			data["user"] = gin.H{"id": sess.User.ID, "name": sess.User.Name, "lastName": sess.User.LastName}
		}
		c.JSON(http.StatusOK, View{Data: data})
	}
}
