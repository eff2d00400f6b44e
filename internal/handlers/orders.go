package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"photo-template-backend/internal/models"
	"photo-template-backend/internal/services"
)

const orderSubmittedMessage = "Order submitted successfully!"

type OrdersHandler struct {
	orders         *services.OrderService
	maxUploadBytes int64
}

func NewOrdersHandler(orders *services.OrderService, maxUploadBytes int64) *OrdersHandler {
	return &OrdersHandler{
		orders:         orders,
		maxUploadBytes: maxUploadBytes,
	}
}

// SubmitOrder godoc
// @Summary     Submit an order
// @Description Accepts customer details, a template name and a photo. The photo is stored under a fresh name and the order is recorded.
// @Description
// @Description `address` must be a JSON object encoded as a string, e.g. `{"city":"X"}`.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Param       name     formData string true "Customer name"
// @Param       email    formData string true "Customer email"
// @Param       address  formData string true "JSON-encoded address object"
// @Param       template formData string true "Template file name"
// @Param       photo    formData file   true "Photo to place on the template"
// @Success     200 {object} models.SubmitOrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) SubmitOrder(c *gin.Context) {
	if err := parseMultipart(c, h.maxUploadBytes); err != nil {
		respondError(c, err)
		return
	}
	defer cleanupForm(c)

	photo, closePhoto, err := formUpload(c, "photo")
	if err != nil {
		respondError(c, err)
		return
	}
	defer closePhoto()

	order, err := h.orders.Submit(c.Request.Context(), models.SubmitOrderInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Address:  c.PostForm("address"),
		Template: c.PostForm("template"),
		Photo:    photo,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SubmitOrderResponse{
		Message: orderSubmittedMessage,
		OrderID: order.ID.String(),
		Order:   order,
	})
}

// GetOrder godoc
// @Summary     Get an order
// @Description Returns a previously submitted order.
// @Tags        orders
// @Produce     json
// @Param       id path string true "Order ID (UUID)"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid order id", models.ErrMalformedInput))
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
