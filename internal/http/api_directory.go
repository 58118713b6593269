package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"threadboard/internal/domain"
)

type cityRequest struct {
	Name string `json:"name" binding:"required"`
}

type customerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Zip   string `json:"zip"`
}

func (h *Handler) listCities(c *gin.Context) {
	cities, err := h.directory.ListCities(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]CityResponse, len(cities))
	for i, city := range cities {
		resp[i] = CityResponse{ID: city.ID, Name: city.Name}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	city, err := h.directory.CreateCity(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("city", "create")
	c.JSON(http.StatusCreated, CityResponse{ID: city.ID, Name: city.Name})
}

func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.directory.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]CustomerResponse, len(customers))
	for i := range customers {
		resp[i] = customerToResponse(customers[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	customer, err := h.directory.CreateCustomer(c.Request.Context(), domain.Customer{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Zip:   req.Zip,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.metrics.Write("customer", "create")
	c.JSON(http.StatusCreated, customerToResponse(*customer))
}

func customerToResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		Zip:   c.Zip,
	}
}
