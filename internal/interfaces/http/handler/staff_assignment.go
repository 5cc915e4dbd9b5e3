package handler

import (
	identityapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StaffAssignmentHandler handles staff role assignment API endpoints
type StaffAssignmentHandler struct {
	BaseHandler
	assignmentService *identityapp.AssignmentService
}

// NewStaffAssignmentHandler creates a new StaffAssignmentHandler
func NewStaffAssignmentHandler(assignmentService *identityapp.AssignmentService) *StaffAssignmentHandler {
	return &StaffAssignmentHandler{
		assignmentService: assignmentService,
	}
}

// Validate godoc
// @Summary      Check an assignment for role conflicts without saving
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        request body identityapp.ValidateAssignmentRequest true "Assignment to validate"
// @Success      200 {object} dto.Response{data=identityapp.ValidateAssignmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/assignments/validate [post]
func (h *StaffAssignmentHandler) Validate(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	var req identityapp.ValidateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.assignmentService.Validate(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Save godoc
// @Summary      Create or reactivate a staff assignment
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        request body identityapp.SaveAssignmentRequest true "Assignment to save"
// @Success      201 {object} dto.Response{data=identityapp.AssignmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/assignments [post]
func (h *StaffAssignmentHandler) Save(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	var req identityapp.SaveAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	assignment, err := h.assignmentService.Save(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, assignment)
}

// ListByUser godoc
// @Summary      List assignments of a staff user
// @Tags         assignments
// @Produce      json
// @Param        user_id query string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]identityapp.AssignmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/assignments [get]
func (h *StaffAssignmentHandler) ListByUser(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing user ID")
		return
	}

	assignments, err := h.assignmentService.ListByUser(c.Request.Context(), restaurantID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, assignments)
}

// Deactivate godoc
// @Summary      Deactivate a staff assignment
// @Tags         assignments
// @Produce      json
// @Param        id path string true "Assignment ID" format(uuid)
// @Success      200 {object} dto.Response{data=identityapp.AssignmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/assignments/{id} [delete]
func (h *StaffAssignmentHandler) Deactivate(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	assignment, err := h.assignmentService.Deactivate(c.Request.Context(), restaurantID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, assignment)
}
