package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jennilaluyan/connect-in-backend/internal/app"
	"github.com/jennilaluyan/connect-in-backend/internal/common"
	"github.com/jennilaluyan/connect-in-backend/internal/domain/notification"
	"github.com/jennilaluyan/connect-in-backend/internal/http/response"
)

const defaultNotificationsPerPage = 20

type NotificationHandler struct {
	notifications *app.NotificationService
}

func NewNotificationHandler(notifications *app.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type notificationView struct {
	ID        common.UUID `json:"id"`
	Kind      string      `json:"kind"`
	Message   string      `json:"message"`
	Read      bool        `json:"read"`
	CreatedAt time.Time   `json:"created_at"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	limit, offset := pagination(r, defaultNotificationsPerPage, 50)
	events, unread, err := h.notifications.List(r.Context(), caller, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	views := make([]notificationView, 0, len(events))
	for _, event := range events {
		views = append(views, notificationView{
			ID:        event.ID,
			Kind:      string(event.Kind),
			Message:   renderMessage(event),
			Read:      event.Read,
			CreatedAt: event.CreatedAt,
		})
	}
	response.JSON(w, http.StatusOK, map[string]any{"data": views, "unread_count": unread})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.notifications.MarkAllRead(r.Context(), caller); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "all notifications marked as read"})
}

// renderMessage turns a stored event into user-facing text. Wording is
// affirmative for shortlisted and hired, sympathetic for rejected.
func renderMessage(event notification.Event) string {
	switch event.Kind {
	case notification.KindNewApplication:
		return fmt.Sprintf("%s applied to your %s posting.", event.Payload["applicant_name"], event.Payload["job_title"])
	case notification.KindStatusUpdated:
		title := event.Payload["job_title"]
		switch event.Payload["application_status"] {
		case "reviewed":
			return fmt.Sprintf("Your application for %s has been reviewed.", title)
		case "shortlisted":
			return fmt.Sprintf("Great news! You have been shortlisted for %s.", title)
		case "hired":
			return fmt.Sprintf("Congratulations! You have been hired for %s.", title)
		case "rejected":
			return fmt.Sprintf("Unfortunately your application for %s was not successful this time. Keep going, the right opportunity is out there.", title)
		default:
			return fmt.Sprintf("Your application for %s was updated.", title)
		}
	default:
		return "You have a new notification."
	}
}
