package handler

import (
	channelapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/channel"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChannelPriceHandler handles channel price write and resolution endpoints
type ChannelPriceHandler struct {
	BaseHandler
	priceService *channelapp.PriceService
}

// NewChannelPriceHandler creates a new ChannelPriceHandler
func NewChannelPriceHandler(priceService *channelapp.PriceService) *ChannelPriceHandler {
	return &ChannelPriceHandler{
		priceService: priceService,
	}
}

// SetProductPrices godoc
// @Summary      Set channel price overrides at product level
// @Description  Applies all price writes in a single transaction. If any item fails validation, none are applied.
// @Tags         prices
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body channelapp.SetChannelPricesRequest true "Price write batch"
// @Success      200 {object} dto.Response{data=channelapp.SetChannelPricesResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/products/{id}/channel-prices [put]
func (h *ChannelPriceHandler) SetProductPrices(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req channelapp.SetChannelPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.priceService.SetProductPrices(c.Request.Context(), restaurantID, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SetVariantPrices godoc
// @Summary      Set channel price overrides at variant level
// @Description  Applies all price writes in a single transaction. If any item fails validation, none are applied.
// @Tags         prices
// @Accept       json
// @Produce      json
// @Param        id path string true "Variant ID" format(uuid)
// @Param        request body channelapp.SetChannelPricesRequest true "Price write batch"
// @Success      200 {object} dto.Response{data=channelapp.SetChannelPricesResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/variants/{id}/channel-prices [put]
func (h *ChannelPriceHandler) SetVariantPrices(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variant ID format")
		return
	}

	var req channelapp.SetChannelPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.priceService.SetVariantPrices(c.Request.Context(), restaurantID, variantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Resolve godoc
// @Summary      Resolve effective prices across a branch's channels
// @Description  Returns the effective price per active channel for a product or one of its variants.
// @Tags         prices
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        variant_id query string false "Variant ID" format(uuid)
// @Param        branch_id query string true "Branch ID" format(uuid)
// @Success      200 {object} dto.Response{data=channelapp.ResolvedPricesResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /catalog/products/{id}/channel-prices [get]
func (h *ChannelPriceHandler) Resolve(c *gin.Context) {
	restaurantID, err := getRestaurantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid restaurant ID")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing branch ID")
		return
	}

	var variantID *uuid.UUID
	if raw := c.Query("variant_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid variant ID format")
			return
		}
		variantID = &parsed
	}

	prices, err := h.priceService.GetChannelPrices(c.Request.Context(), restaurantID, productID, variantID, branchID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, prices)
}
