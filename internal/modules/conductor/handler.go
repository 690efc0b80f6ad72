package conductor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"surveyhub/internal/domain"
	"surveyhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/conductors")
	{
		group.POST("/register", h.Register)
		group.GET("/current", h.GetCurrent)
		group.GET("/:id", h.GetByID)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.GET("", h.List)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	conductor, err := h.service.Register(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			response.Error(c, http.StatusConflict, "ALREADY_REGISTERED", "User is already registered as a conductor")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register conductor")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"conductor": conductor})
}

func (h *Handler) GetCurrent(c *gin.Context) {
	conductor, err := h.service.GetByUserID(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Conductor profile not found for current user")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch conductor")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conductor": conductor})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conductor ID")
		return
	}

	conductor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Conductor not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch conductor")
		return
	}

	if !h.canAccess(c, conductor) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conductor": conductor})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conductor ID")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Conductor not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch conductor")
		return
	}
	if !h.canAccess(c, existing) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		return
	}

	conductor, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update conductor")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conductor": conductor})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conductor ID")
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Conductor not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch conductor")
		return
	}
	if !h.canAccess(c, existing) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete conductor")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	conductors, total, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list conductors")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conductors": conductors, "total": total, "page": page, "limit": limit})
}

// canAccess: profiles are visible to their owner and to admins.
func (h *Handler) canAccess(c *gin.Context, conductor *domain.Conductor) bool {
	if conductor.UserID == c.GetInt64("user_id") {
		return true
	}
	if roles, ok := c.Get("roles"); ok {
		if names, ok := roles.([]string); ok {
			for _, name := range names {
				if name == domain.RoleAdmin {
					return true
				}
			}
		}
	}
	return false
}
