// Reclamation HTTP handlers.
//
// This file exposes the reclamation endpoints:
//   - POST /reclamations                 (create, Idempotency-Key aware)
//   - GET  /reclamations                 (dashboard list, paginated)
//   - GET  /reclamations/{id}            (detail with history)
//   - POST /reclamations/{id}/status     (status transition)
//   - POST /reclamations/{id}/archive    (archive a TRAITEE reclamation)
//   - POST /reclamations/{id}/unarchive  (restore from the archive)
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
	"github.com/solrobto/reclamation-mytsinjo/internal/http/middleware"
	"github.com/solrobto/reclamation-mytsinjo/internal/services"
	"github.com/solrobto/reclamation-mytsinjo/internal/utils"
)

// HeaderIdempotentReplay is set to "true" on responses served from a
// previous request with the same Idempotency-Key.
const HeaderIdempotentReplay = "Idempotent-Replay"

//
// DTOs
//

// CreateReclamationRequest is the JSON payload for a new reclamation. The
// bureau is taken from the caller's account, not the body.
type CreateReclamationRequest struct {
	TypeID         uint   `json:"type_id" example:"2"`
	NumeroCompte   string `json:"numero_compte" example:"00012345678"`
	NomClient      string `json:"nom_client" example:"Rakoto Jean"`
	AncienneValeur string `json:"ancienne_valeur" example:"Lot II A 45"`
	NouvelleValeur string `json:"nouvelle_valeur" example:"Lot III B 12"`
	Motif          string `json:"motif" example:"Changement d'adresse"`
}

// UpdateStatusRequest is the JSON payload of a status transition.
type UpdateStatusRequest struct {
	Statut      domain.Status `json:"statut" binding:"required,reclamation_status" example:"EN_COURS"`
	Observation string        `json:"observation" binding:"max=2000" example:"Pris en charge"`
}

// ListReclamationsResponse wraps a dashboard page.
type ListReclamationsResponse struct {
	Reclamations []domain.Reclamation `json:"reclamations"`
	Counts       map[string]int64     `json:"counts"`
	Pagination   Pagination           `json:"pagination"`
}

// ReclamationDetailResponse is a reclamation with its status history
// (newest first) and the reminders fired for it (oldest first).
type ReclamationDetailResponse struct {
	Reclamation *services.ReclamationView `json:"reclamation"`
	History     []domain.StatusHistory    `json:"history"`
	Reminders   []domain.ReminderLog      `json:"reminders"`
}

//
// Handlers
//

// CreateReclamation godoc
// @ID          createReclamation
// @Summary     Create a reclamation
// @Description Creates an EN_ATTENTE reclamation owned by the calling agent. A retry with the same Idempotency-Key returns the first result with 200 and Idempotent-Replay: true.
// @Tags        Reclamations
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  int     true   "Caller id"
// @Param       X-User-Role      header  string  true   "Caller role"  Enums(agent)
// @Param       Idempotency-Key  header  string  false  "Idempotency key"
// @Param       body             body    handlers.CreateReclamationRequest  true  "Reclamation"
//
// @Success     201  {object}  domain.Reclamation
// @Success     200  {object}  services.ReclamationView  "Idempotent replay"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     403  {object}  handlers.ErrorResponse  "Role not allowed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reclamations [post]
func (h *Handlers) CreateReclamation(c *gin.Context) {
	who, authed := actor(c)
	if !authed {
		return
	}
	ctx := c.Request.Context()

	if id, replay := middleware.ReplayResourceID(c); replay {
		v, err := h.reclSvc.Get(ctx, id)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.Header(HeaderIdempotentReplay, "true")
		ok200(c, v)
		return
	}

	var req CreateReclamationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	r, err := h.reclSvc.Create(ctx, services.CreateInput{
		TypeID:         req.TypeID,
		NumeroCompte:   req.NumeroCompte,
		NomClient:      req.NomClient,
		AncienneValeur: req.AncienneValeur,
		NouvelleValeur: req.NouvelleValeur,
		Motif:          req.Motif,
	}, who)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if key, has := middleware.GetIdempotencyKey(c); has && h.idem != nil {
		uid := strconv.FormatUint(uint64(who.ID), 10)
		if err := h.idem.Record(ctx, uid, middleware.IdempotencyScope(c), key, r.ID, http.StatusCreated); err != nil {
			// The reclamation exists; a lost record only weakens retry safety.
			middlewareLogger(c).Warn().Err(err).Uint("reclamation_id", r.ID).Msg("idempotency record failed")
		}
	}

	ok(c, http.StatusCreated, r)
}

// ListReclamations godoc
// @ID          listReclamations
// @Summary     List reclamations (paginated)
// @Description Dashboard list, newest first. Agents only see their own reclamations. Counts are per status over the same archived flag; for agents they cover only their own reclamations.
// @Tags        Reclamations
// @Produce     json
//
// @Param       X-User-ID    header  int     true   "Caller id"
// @Param       X-User-Role  header  string  true   "Caller role"  Enums(agent, supervisor, admin)
// @Param       statut       query   string  false  "Status filter"  Enums(EN_ATTENTE, EN_COURS, TRAITEE, REJETEE)
// @Param       bureau_id    query   int     false  "Bureau filter"
// @Param       type_id      query   int     false  "Type filter"
// @Param       search       query   string  false  "Dossier number, account or client name (case-insensitive)"
// @Param       archived     query   bool    false  "Archived reclamations instead of live ones"
// @Param       page         query   int     false  "Page number"     minimum(1) default(1)
// @Param       page_size    query   int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListReclamationsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reclamations [get]
func (h *Handlers) ListReclamations(c *gin.Context) {
	who, authed := actor(c)
	if !authed {
		return
	}
	bureauID, good := optionalUint(c, "bureau_id")
	if !good {
		return
	}
	typeID, good := optionalUint(c, "type_id")
	if !good {
		return
	}
	archived, err := utils.ParseBoolDefault(c.Query("archived"), false)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "archived must be a boolean")
		return
	}
	page, pageSize := clampPagination(c)

	ctx := c.Request.Context()
	items, total, err := h.reclSvc.List(ctx, services.ListFilter{
		Statut:   domain.Status(strings.ToUpper(strings.TrimSpace(c.Query("statut")))),
		BureauID: bureauID,
		TypeID:   typeID,
		Search:   c.Query("search"),
		Archived: archived,
		Page:     page,
		PageSize: pageSize,
	}, who)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	counts, err := h.reclSvc.StatusCounts(ctx, archived, who)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	byStatus := make(map[string]int64, len(counts))
	for s, n := range counts {
		byStatus[string(s)] = n
	}

	ok200(c, ListReclamationsResponse{
		Reclamations: items,
		Counts:       byStatus,
		Pagination:   newPagination(page, pageSize, total),
	})
}

// GetReclamation godoc
// @ID          getReclamation
// @Summary     Get a reclamation
// @Description Returns the reclamation with its reminder availability, its status history (newest first) and the reminders fired for it (oldest first).
// @Tags        Reclamations
// @Produce     json
//
// @Param       X-User-ID    header  int     true  "Caller id"
// @Param       X-User-Role  header  string  true  "Caller role"  Enums(agent, supervisor, admin)
// @Param       id           path    int     true  "Reclamation id"
//
// @Success     200  {object}  handlers.ReclamationDetailResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reclamations/{id} [get]
func (h *Handlers) GetReclamation(c *gin.Context) {
	who, authed := actor(c)
	if !authed {
		return
	}
	id, good := pathID(c)
	if !good {
		return
	}
	ctx := c.Request.Context()

	v, err := h.reclSvc.Get(ctx, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !who.CanAccess(&v.Reclamation) {
		writeServiceError(c, services.ErrForbidden)
		return
	}
	hist, err := h.reclSvc.History(ctx, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if hist == nil {
		hist = []domain.StatusHistory{}
	}
	rems, err := h.reclSvc.Reminders(ctx, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if rems == nil {
		rems = []domain.ReminderLog{}
	}
	ok200(c, ReclamationDetailResponse{Reclamation: v, History: hist, Reminders: rems})
}

// UpdateStatus godoc
// @ID          updateReclamationStatus
// @Summary     Change the status of a reclamation
// @Description Applies a status transition, records it in the history, and notifies. Moving to TRAITEE clears pending reminders.
// @Tags        Reclamations
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID    header  int     true  "Caller id"
// @Param       X-User-Role  header  string  true  "Caller role"  Enums(supervisor, admin)
// @Param       id           path    int     true  "Reclamation id"
// @Param       body         body    handlers.UpdateStatusRequest  true  "New status"
//
// @Success     200  {object}  domain.Reclamation
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or invalid status"
// @Failure     403  {object}  handlers.ErrorResponse  "Role not allowed"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reclamations/{id}/status [post]
func (h *Handlers) UpdateStatus(c *gin.Context) {
	who, authed := actor(c)
	if !authed {
		return
	}
	id, good := pathID(c)
	if !good {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeInvalidStatus, "statut must be one of EN_ATTENTE, EN_COURS, TRAITEE, REJETEE")
		return
	}

	r, err := h.reclSvc.ApplyStatusTransition(c.Request.Context(), id, req.Statut, strings.TrimSpace(req.Observation), who)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok200(c, r)
}

// ArchiveReclamation godoc
// @ID          archiveReclamation
// @Summary     Archive a reclamation
// @Description Archives a TRAITEE reclamation and records it in the history.
// @Tags        Reclamations
// @Produce     json
//
// @Param       X-User-ID    header  int     true  "Caller id"
// @Param       X-User-Role  header  string  true  "Caller role"  Enums(supervisor, admin)
// @Param       id           path    int     true  "Reclamation id"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Not TRAITEE"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reclamations/{id}/archive [post]
func (h *Handlers) ArchiveReclamation(c *gin.Context) {
	h.setArchived(c, true)
}

// UnarchiveReclamation godoc
// @ID          unarchiveReclamation
// @Summary     Restore an archived reclamation
// @Tags        Reclamations
// @Produce     json
//
// @Param       X-User-ID    header  int     true  "Caller id"
// @Param       X-User-Role  header  string  true  "Caller role"  Enums(supervisor, admin)
// @Param       id           path    int     true  "Reclamation id"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Not archived"
// @Failure     404  {object}  handlers.ErrorResponse  "Not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reclamations/{id}/unarchive [post]
func (h *Handlers) UnarchiveReclamation(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *Handlers) setArchived(c *gin.Context, archive bool) {
	who, authed := actor(c)
	if !authed {
		return
	}
	id, good := pathID(c)
	if !good {
		return
	}
	var err error
	if archive {
		err = h.reclSvc.Archive(c.Request.Context(), id, who)
	} else {
		err = h.reclSvc.Unarchive(c.Request.Context(), id, who)
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	noContent(c)
}
