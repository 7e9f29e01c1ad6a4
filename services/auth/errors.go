package auth

import (
	"errors"
	"net/http"

	"cursos/models"
	"cursos/services/backend"
	"cursos/utils"
)

var (
	// ErrUnknownRole means the backend returned a session whose role this client cannot route.
	ErrUnknownRole = errors.New("unrecognized role in session")
	// ErrInvalidResetLink means the backend refused a reset token.
	ErrInvalidResetLink = errors.New("password reset link is invalid or expired")
)

const unreachableMessage = "Cannot reach the server."

// LoginFailure maps a login error to a status and toast. 403 means the account is locked
// and is shown for longer.
func LoginFailure(err error) (int, models.Toast) {
	switch {
	case errors.Is(err, backend.ErrUnreachable):
		return http.StatusBadGateway, models.Toast{
			Severity: models.SeverityError, Summary: "Connection error",
			Detail: unreachableMessage, Life: utils.ToastLife,
		}
	case errors.Is(err, ErrUnknownRole):
		return http.StatusForbidden, models.Toast{
			Severity: models.SeverityError, Summary: "Access error",
			Detail: "Unrecognized user role.", Life: utils.ToastLife,
		}
	case backend.StatusOf(err) == http.StatusForbidden:
		return http.StatusForbidden, models.Toast{
			Severity: models.SeverityError, Summary: "Account locked",
			Detail: backend.MessageOf(err, "Your account is locked. Contact an administrator."),
			Life:   utils.ToastLifeLong,
		}
	}
	status := backend.StatusOf(err)
	if status < 400 || status >= 500 {
		status = http.StatusUnauthorized
	}
	return status, models.Toast{
		Severity: models.SeverityError, Summary: "Login failed",
		Detail: backend.MessageOf(err, "Invalid credentials."), Life: utils.ToastLife,
	}
}
