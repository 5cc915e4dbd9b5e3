package handler

import (
	catalogapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AttributeHandler handles attribute catalog API endpoints
type AttributeHandler struct {
	BaseHandler
	attributeService *catalogapp.AttributeService
}

// NewAttributeHandler creates a new AttributeHandler
func NewAttributeHandler(attributeService *catalogapp.AttributeService) *AttributeHandler {
	return &AttributeHandler{
		attributeService: attributeService,
	}
}

// Create godoc
// @Summary      Create a new attribute
// @Description  Create an attribute with optional initial values
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateAttributeRequest true "Attribute creation request"
// @Success      201 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes [post]
func (h *AttributeHandler) Create(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	var req catalogapp.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if userID, err := getUserID(c); err == nil && userID != uuid.Nil {
		req.CreatedBy = &userID
	}

	attribute, err := h.attributeService.Create(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, attribute)
}

// List godoc
// @Summary      List attributes
// @Description  List the restaurant's attributes, optionally only active ones
// @Tags         attributes
// @Produce      json
// @Param        only_active query bool false "Only return active attributes"
// @Success      200 {object} dto.Response{data=[]catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes [get]
func (h *AttributeHandler) List(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	onlyActive := c.Query("only_active") == "true"

	attributes, err := h.attributeService.List(c.Request.Context(), restaurantID, onlyActive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attributes)
}

// GetByID godoc
// @Summary      Get attribute by ID
// @Description  Retrieve an attribute with its values in display order
// @Tags         attributes
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id} [get]
func (h *AttributeHandler) GetByID(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	attribute, err := h.attributeService.Get(c.Request.Context(), restaurantID, attributeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attribute)
}

// Update godoc
// @Summary      Rename an attribute
// @Description  Change an attribute's name; the name must stay unique within the restaurant
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        request body catalogapp.UpdateAttributeRequest true "Attribute update request"
// @Success      200 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id} [put]
func (h *AttributeHandler) Update(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	var req catalogapp.UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	attribute, err := h.attributeService.Update(c.Request.Context(), restaurantID, attributeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attribute)
}

// Delete godoc
// @Summary      Delete an attribute
// @Description  Delete an attribute with its values; variants referencing it are flagged invalid
// @Tags         attributes
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id} [delete]
func (h *AttributeHandler) Delete(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	if err := h.attributeService.Delete(c.Request.Context(), restaurantID, attributeID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddValue godoc
// @Summary      Add a value to an attribute
// @Description  Append a value; it is placed at the end of the display order
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        request body catalogapp.CreateValueRequest true "Value creation request"
// @Success      201 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id}/values [post]
func (h *AttributeHandler) AddValue(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	var req catalogapp.CreateValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	attribute, err := h.attributeService.AddValue(c.Request.Context(), restaurantID, attributeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, attribute)
}

// UpdateValue godoc
// @Summary      Relabel an attribute value
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        value_id path string true "Value ID" format(uuid)
// @Param        request body catalogapp.UpdateValueRequest true "Value update request"
// @Success      200 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id}/values/{value_id} [put]
func (h *AttributeHandler) UpdateValue(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	valueID, err := uuid.Parse(c.Param("value_id"))
	if err != nil {
		h.BadRequest(c, "Invalid value ID format")
		return
	}

	var req catalogapp.UpdateValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	attribute, err := h.attributeService.UpdateValue(c.Request.Context(), restaurantID, attributeID, valueID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attribute)
}

// DeleteValue godoc
// @Summary      Delete an attribute value
// @Description  Delete a value; variants selecting it are flagged invalid
// @Tags         attributes
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        value_id path string true "Value ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id}/values/{value_id} [delete]
func (h *AttributeHandler) DeleteValue(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	valueID, err := uuid.Parse(c.Param("value_id"))
	if err != nil {
		h.BadRequest(c, "Invalid value ID format")
		return
	}

	if err := h.attributeService.DeleteValue(c.Request.Context(), restaurantID, attributeID, valueID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListValues godoc
// @Summary      List values of an attribute
// @Tags         attributes
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        only_active query bool false "Only return active values"
// @Success      200 {object} dto.Response{data=[]catalogapp.AttributeValueResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id}/values [get]
func (h *AttributeHandler) ListValues(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	onlyActive := c.Query("only_active") == "true"

	values, err := h.attributeService.ListValues(c.Request.Context(), restaurantID, attributeID, onlyActive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, values)
}

// SwapValueOrder godoc
// @Summary      Swap the display order of two values
// @Description  Exchange the sort positions of two values of the same attribute
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        request body catalogapp.SwapValueOrderRequest true "Swap request"
// @Success      200 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id}/values/swap-order [post]
func (h *AttributeHandler) SwapValueOrder(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	var req catalogapp.SwapValueOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	attribute, err := h.attributeService.SwapValueOrder(c.Request.Context(), restaurantID, attributeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attribute)
}

// SetActiveRequest toggles an attribute's active state
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetActive godoc
// @Summary      Activate or deactivate an attribute
// @Description  Inactive attributes are rejected by new generation runs; existing variants stay untouched
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        request body SetActiveRequest true "Active state"
// @Success      200 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id}/active [put]
func (h *AttributeHandler) SetActive(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	attribute, err := h.attributeService.SetActive(c.Request.Context(), restaurantID, attributeID, req.IsActive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attribute)
}

// SetValueActiveRequest toggles a value's active state
type SetValueActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetValueActive godoc
// @Summary      Activate or deactivate a value
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id path string true "Attribute ID" format(uuid)
// @Param        value_id path string true "Value ID" format(uuid)
// @Param        request body SetValueActiveRequest true "Active state"
// @Success      200 {object} dto.Response{data=catalogapp.AttributeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/attributes/{id}/values/{value_id}/active [put]
func (h *AttributeHandler) SetValueActive(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	attributeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID format")
		return
	}

	valueID, err := uuid.Parse(c.Param("value_id"))
	if err != nil {
		h.BadRequest(c, "Invalid value ID format")
		return
	}

	var req SetValueActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	attribute, err := h.attributeService.SetValueActive(c.Request.Context(), restaurantID, attributeID, valueID, req.IsActive)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attribute)
}
