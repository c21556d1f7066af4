// Notification polling handlers.
//
//   - GET /notifications/user?since=...  status changes on the agent's own
//     reclamations after since, plus server_time for the next poll
//   - GET /notifications/pending         supervisor badge counts
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solrobto/reclamation-mytsinjo/internal/clock"
	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
)

// StatusUpdate is one status change reported to a polling agent.
type StatusUpdate struct {
	ReclamationID uint          `json:"reclamation_id" example:"42"`
	NouveauStatut domain.Status `json:"nouveau_statut" example:"EN_COURS"`
	CreatedAt     string        `json:"created_at" example:"2024-01-01 10:30:00"`
	NumeroDossier string        `json:"numero_dossier" example:"REC-20240101-00042"`
}

// UserNotificationsResponse carries the updates and the server time the
// client should send back as since on its next poll.
type UserNotificationsResponse struct {
	Updates    []StatusUpdate `json:"updates"`
	ServerTime string         `json:"server_time" example:"2024-01-01 10:31:00"`
}

// PendingNotificationsResponse carries supervisor badge counts over live
// (non-archived) reclamations.
type PendingNotificationsResponse struct {
	Pending  int64            `json:"pending" example:"4"`
	ByStatus map[string]int64 `json:"by_status"`
}

// UserNotifications godoc
// @ID          userNotifications
// @Summary     Poll status changes
// @Description Status changes on the caller's reclamations strictly after since, oldest first. Without since, or for non-agents, updates is empty. server_time is always set.
// @Tags        Notifications
// @Produce     json
//
// @Param       X-User-ID    header  int     true   "Caller id"
// @Param       X-User-Role  header  string  true   "Caller role"  Enums(agent, supervisor, admin)
// @Param       since        query   string  false  "Previous server_time (YYYY-MM-DD HH:MM:SS)"
//
// @Success     200  {object}  handlers.UserNotificationsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad since"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /notifications/user [get]
func (h *Handlers) UserNotifications(c *gin.Context) {
	who, authed := actor(c)
	if !authed {
		return
	}
	now := h.reclSvc.Now()
	resp := UserNotificationsResponse{Updates: []StatusUpdate{}, ServerTime: clock.Format(now)}

	raw := strings.TrimSpace(c.Query("since"))
	if !who.IsAgent() || raw == "" {
		ok200(c, resp)
		return
	}
	since, err := clock.Parse(raw, now.Location())
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "since must be YYYY-MM-DD HH:MM:SS")
		return
	}

	ups, err := h.reclSvc.UpdatesSince(c.Request.Context(), who.ID, since)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	for _, u := range ups {
		resp.Updates = append(resp.Updates, StatusUpdate{
			ReclamationID: u.ReclamationID,
			NouveauStatut: u.NouveauStatut,
			CreatedAt:     clock.Format(u.CreatedAt.In(now.Location())),
			NumeroDossier: u.NumeroDossier,
		})
	}
	ok200(c, resp)
}

// PendingNotifications godoc
// @ID          pendingNotifications
// @Summary     Supervisor badge counts
// @Description Number of live EN_ATTENTE reclamations, plus counts for every status.
// @Tags        Notifications
// @Produce     json
//
// @Param       X-User-ID    header  int     true  "Caller id"
// @Param       X-User-Role  header  string  true  "Caller role"  Enums(supervisor, admin)
//
// @Success     200  {object}  handlers.PendingNotificationsResponse
// @Failure     403  {object}  handlers.ErrorResponse  "Role not allowed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /notifications/pending [get]
func (h *Handlers) PendingNotifications(c *gin.Context) {
	who, authed := actor(c)
	if !authed {
		return
	}
	ctx := c.Request.Context()
	n, err := h.reclSvc.PendingCount(ctx)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	counts, err := h.reclSvc.StatusCounts(ctx, false, who)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	by := make(map[string]int64, len(counts))
	for s, v := range counts {
		by[string(s)] = v
	}
	ok200(c, PendingNotificationsResponse{Pending: n, ByStatus: by})
}
