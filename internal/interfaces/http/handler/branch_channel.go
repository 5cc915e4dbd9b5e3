package handler

import (
	channelapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/channel"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BranchChannelHandler handles branch sales channel API endpoints
type BranchChannelHandler struct {
	BaseHandler
	branchChannelService *channelapp.BranchChannelService
}

// NewBranchChannelHandler creates a new BranchChannelHandler
func NewBranchChannelHandler(branchChannelService *channelapp.BranchChannelService) *BranchChannelHandler {
	return &BranchChannelHandler{
		branchChannelService: branchChannelService,
	}
}

// Create godoc
// @Summary      Register a sales channel for a branch
// @Tags         channels
// @Accept       json
// @Produce      json
// @Param        request body channelapp.CreateBranchChannelRequest true "Branch channel creation request"
// @Success      201 {object} dto.Response{data=channelapp.BranchChannelResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /channels/branch-channels [post]
func (h *BranchChannelHandler) Create(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	var req channelapp.CreateBranchChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	bc, err := h.branchChannelService.Create(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bc)
}

// List godoc
// @Summary      List branch sales channels
// @Tags         channels
// @Produce      json
// @Param        branch_id query string false "Filter by branch" format(uuid)
// @Success      200 {object} dto.Response{data=[]channelapp.BranchChannelResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /channels/branch-channels [get]
func (h *BranchChannelHandler) List(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid branch ID format")
			return
		}
		branchID = &parsed
	}

	channels, err := h.branchChannelService.List(c.Request.Context(), restaurantID, branchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, channels)
}

// SetActive godoc
// @Summary      Activate or deactivate a branch sales channel
// @Tags         channels
// @Accept       json
// @Produce      json
// @Param        id path string true "Branch channel ID" format(uuid)
// @Param        request body channelapp.SetBranchChannelActiveRequest true "Active toggle"
// @Success      200 {object} dto.Response{data=channelapp.BranchChannelResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /channels/branch-channels/{id}/active [patch]
func (h *BranchChannelHandler) SetActive(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid branch channel ID format")
		return
	}

	var req channelapp.SetBranchChannelActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	bc, err := h.branchChannelService.SetActive(c.Request.Context(), restaurantID, id, req.IsActive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bc)
}
