// Reminder HTTP handler.
//
// POST /reclamations/{id}/reminder sends a manual reminder to supervisors.
// A refused reminder is 409 already_resolved or 429 reminder_cooldown with
// Retry-After (seconds) and remaining_minutes in the body.
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/solrobto/reclamation-mytsinjo/internal/clock"
)

// ReminderResponse reports the reminder that was sent and when the next
// one becomes available.
type ReminderResponse struct {
	ReclamationID  uint   `json:"reclamation_id" example:"42"`
	NumeroDossier  string `json:"numero_dossier" example:"REC-20240101-00042"`
	SentAt         string `json:"sent_at" example:"2024-01-01 10:00:00"`
	AvailableAfter string `json:"available_after" example:"2024-01-01 10:30:00"`
	AutoAt         string `json:"auto_at,omitempty" example:"2024-01-01 11:00:00"`
}

// SendReminder godoc
// @ID          sendReminder
// @Summary     Send a manual reminder
// @Description Notifies supervisors that the reclamation is still waiting. Starts the cooldown and arms one automatic follow-up.
// @Tags        Reminders
// @Produce     json
//
// @Param       X-User-ID    header  int     true  "Caller id"
// @Param       X-User-Role  header  string  true  "Caller role"  Enums(agent, supervisor, admin)
// @Param       id           path    int     true  "Reclamation id"
//
// @Success     200  {object}  handlers.ReminderResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already resolved"
// @Failure     429  {object}  handlers.ErrorResponse  "Cooldown active"
// @Header      429  {integer} Retry-After  "Seconds until the cooldown ends"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reclamations/{id}/reminder [post]
func (h *Handlers) SendReminder(c *gin.Context) {
	who, authed := actor(c)
	if !authed {
		return
	}
	id, good := pathID(c)
	if !good {
		return
	}

	r, err := h.remSvc.RequestManualReminder(c.Request.Context(), id, who)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok200(c, ReminderResponse{
		ReclamationID:  r.ID,
		NumeroDossier:  r.NumeroDossier,
		SentAt:         clock.FormatPtr(r.ReminderLastSentAt),
		AvailableAfter: clock.FormatPtr(r.ReminderDisabledUntil),
		AutoAt:         clock.FormatPtr(r.ReminderAutoAt),
	})
}
