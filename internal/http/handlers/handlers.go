// Package handlers exposes the reclamation REST API.
//
// Handlers are transport-thin: they bind and validate input, resolve the
// caller from the identity middleware, call the application services, and
// translate results and service errors into HTTP responses.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/solrobto/reclamation-mytsinjo/internal/domain"
	"github.com/solrobto/reclamation-mytsinjo/internal/http/middleware"
	"github.com/solrobto/reclamation-mytsinjo/internal/repo"
	"github.com/solrobto/reclamation-mytsinjo/internal/services"
	"github.com/solrobto/reclamation-mytsinjo/internal/utils"
)

//
// Service contracts (context-aware)
//

// ReclamationService is the reclamation lifecycle consumed by the handlers.
// *services.ReclamationService implements it.
type ReclamationService interface {
	Create(ctx context.Context, in services.CreateInput, actor services.Actor) (*domain.Reclamation, error)
	Get(ctx context.Context, id uint) (*services.ReclamationView, error)
	History(ctx context.Context, id uint) ([]domain.StatusHistory, error)
	Reminders(ctx context.Context, id uint) ([]domain.ReminderLog, error)
	List(ctx context.Context, f services.ListFilter, actor services.Actor) ([]domain.Reclamation, int64, error)
	ApplyStatusTransition(ctx context.Context, id uint, newStatus domain.Status, observation string, actor services.Actor) (*domain.Reclamation, error)
	Archive(ctx context.Context, id uint, actor services.Actor) error
	Unarchive(ctx context.Context, id uint, actor services.Actor) error
	UpdatesSince(ctx context.Context, ownerID uint, since time.Time) ([]repo.HistoryUpdate, error)
	PendingCount(ctx context.Context) (int64, error)
	StatusCounts(ctx context.Context, archived bool, actor services.Actor) (map[domain.Status]int64, error)
	Now() time.Time
}

// ReminderService is the manual reminder entry point.
// *services.ReminderService implements it.
type ReminderService interface {
	RequestManualReminder(ctx context.Context, id uint, actor services.Actor) (*domain.Reclamation, error)
}

// IdempotencyRecorder stores the outcome of a first attempt so retries
// with the same key replay it.
type IdempotencyRecorder interface {
	Record(ctx context.Context, userID, scope, key string, reclamationID uint, status int) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints. idem may be nil, which disables
// recording (lookups are the middleware's concern).
type Handlers struct {
	reclSvc ReclamationService
	remSvc  ReminderService
	idem    IdempotencyRecorder
}

// New constructs a Handlers bound to the given services and registers the
// custom binding validators.
func New(reclSvc ReclamationService, remSvc ReminderService, idem IdempotencyRecorder) *Handlers {
	RegisterValidators()
	return &Handlers{reclSvc: reclSvc, remSvc: remSvc, idem: idem}
}

// actor returns the caller resolved by middleware.IdentityFromHeaders.
// Routes are guarded by RequireRole, so a missing identity is a wiring bug
// reported as 401.
func actor(c *gin.Context) (services.Actor, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing identity")
		return services.Actor{}, false
	}
	return services.Actor{ID: id.UserID, Role: id.Role}, true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(n), true
}

// optionalUint parses an optional positive integer query parameter.
func optionalUint(c *gin.Context, name string) (*uint, bool) {
	v, err := utils.ParsePositiveUint(c.Query(name))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" "+err.Error())
		return nil, false
	}
	return v, true
}

//
// Pagination
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.Clamp(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
