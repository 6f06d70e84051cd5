package adaptor

import (
	"net/http"
	"strings"

	"rising-bms/internal/usecase"
	"rising-bms/pkg/locale"
	"rising-bms/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Customer     *CustomerHandler
	Project      *ProjectHandler
	Appointment  *AppointmentHandler
	Catalog      *CatalogHandler
	Request      *RequestHandler
	Notification *NotificationHandler
	Dashboard    *DashboardHandler
	Automation   *AutomationHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	resolver := &localeResolver{
		users:       service.User,
		defaultLang: config.Locale.DefaultLanguage,
	}

	return &Handler{
		Auth:         NewAuthHandler(service.Auth, config, log),
		User:         NewUserHandler(service.User, log),
		Customer:     NewCustomerHandler(service.Customer, resolver, log),
		Project:      NewProjectHandler(service.Project, resolver, log),
		Appointment:  NewAppointmentHandler(service.Appointment, resolver, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Request:      NewRequestHandler(service.Request, resolver, log),
		Notification: NewNotificationHandler(service.Notification, log),
		Dashboard:    NewDashboardHandler(service.Dashboard, resolver, log),
		Automation:   NewAutomationHandler(service.Automation, log),
	}
}

// localeResolver picks the display language for a request: explicit
// ?lang= wins, then the user's saved preference, then the default.
type localeResolver struct {
	users       usecase.UserService
	defaultLang string
}

func (lr *localeResolver) language(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang == locale.LangDE || lang == locale.LangEN {
		return lang
	}

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return lr.users.Language(r.Context(), userID)
	}

	return lr.defaultLang
}

// handleServiceError translates usecase errors into HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already registered"),
		strings.Contains(errMsg, "already taken"),
		strings.Contains(errMsg, "already converted"),
		strings.Contains(errMsg, "already cancelled"),
		strings.Contains(errMsg, "already completed"):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "invalid credentials"),
		strings.Contains(errMsg, "invalid refresh token"),
		strings.Contains(errMsg, "incorrect"):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "deactivated"),
		strings.Contains(errMsg, "privileges required"):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "is in the past"),
		strings.Contains(errMsg, "is before"),
		strings.Contains(errMsg, "is closed"),
		strings.Contains(errMsg, "is cancelled"),
		strings.Contains(errMsg, "belongs to another"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
