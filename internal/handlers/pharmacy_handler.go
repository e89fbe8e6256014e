package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/dto"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/httpresp"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/profile"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/stats"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/stock"
)

type PharmacyUseCases struct {
	Stats         *stats.GetPharmacyStats
	Stock         *stock.ListStock
	Inventory     *stock.Inventory
	OfflineOrder  *stock.ProcessOfflineOrder
	Orders        *stock.ListOrders
	Prescriptions *prescription.ListForPharmacy
	UpdateStatus  *prescription.UpdateStatus
	Profiles      *profile.PharmacyProfiles
}

type PharmacyHandler struct {
	uc  PharmacyUseCases
	log zerolog.Logger
}

func NewPharmacyHandler(uc PharmacyUseCases, log zerolog.Logger) *PharmacyHandler {
	return &PharmacyHandler{uc: uc, log: log}
}

func (h *PharmacyHandler) Stats(c *gin.Context) {
	out, err := h.uc.Stats.Execute(c.Request.Context(), currentPharmacy(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// STOCK
// ======================================================

func (h *PharmacyHandler) ListStock(c *gin.Context) {
	items, err := h.uc.Stock.Execute(c.Request.Context(), currentPharmacy(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, items)
}

func (h *PharmacyHandler) AddStock(c *gin.Context) {
	var req dto.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Medicine name and quantity are required.")
		return
	}

	item, err := h.uc.Inventory.Add(
		c.Request.Context(),
		currentUser(c),
		currentPharmacy(c),
		req.MedicineName,
		req.Quantity,
		req.Price,
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *PharmacyHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid stock data.")
		return
	}

	item, err := h.uc.Inventory.Update(c.Request.Context(), currentUser(c), currentPharmacy(c), id, stock.UpdateInput{
		MedicineName: req.MedicineName,
		Quantity:     req.Quantity,
		Price:        req.Price,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, item)
}

func (h *PharmacyHandler) AdjustStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Delta is required.")
		return
	}

	item, err := h.uc.Inventory.Adjust(c.Request.Context(), currentUser(c), currentPharmacy(c), id, req.Delta)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, item)
}

func (h *PharmacyHandler) DeleteStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Inventory.Delete(c.Request.Context(), currentUser(c), currentPharmacy(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"message": "Stock item removed"})
}

// ======================================================
// OFFLINE ORDERS
// ======================================================

func (h *PharmacyHandler) ProcessOfflineOrder(c *gin.Context) {
	var req dto.OfflineOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid order.")
		return
	}

	summary, err := h.uc.OfflineOrder.Execute(c.Request.Context(), currentUser(c), currentPharmacy(c), req.Medicines)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, summary)
}

func (h *PharmacyHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, err := h.uc.Orders.Execute(c.Request.Context(), currentPharmacy(c), limit)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, orders)
}

// ======================================================
// PRESCRIPTIONS
// ======================================================

func (h *PharmacyHandler) ListPrescriptions(c *gin.Context) {
	list, err := h.uc.Prescriptions.Execute(c.Request.Context(), currentPharmacy(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToPharmacyPrescriptions(list))
}

func (h *PharmacyHandler) UpdatePrescriptionStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePrescriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	p, err := h.uc.UpdateStatus.Execute(
		c.Request.Context(),
		currentUser(c),
		currentPharmacy(c),
		id,
		req.Status,
		req.PharmacyNotes,
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToPharmacyPrescription(p))
}

// ======================================================
// PROFILE
// ======================================================

func (h *PharmacyHandler) ProfileStatus(c *gin.Context) {
	has, err := h.uc.Profiles.Exists(c.Request.Context(), currentUser(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"hasProfile": has})
}

func (h *PharmacyHandler) CreateProfile(c *gin.Context) {
	var req dto.PharmacyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile data.")
		return
	}

	ph, err := h.uc.Profiles.Create(c.Request.Context(), currentUser(c), req.Changes())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPharmacyProfile(ph))
}

func (h *PharmacyHandler) GetProfile(c *gin.Context) {
	ph, err := h.uc.Profiles.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToPharmacyProfile(ph))
}

func (h *PharmacyHandler) UpdateProfile(c *gin.Context) {
	var req dto.PharmacyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile data.")
		return
	}

	ph, err := h.uc.Profiles.Update(c.Request.Context(), currentUser(c), req.Changes())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToPharmacyProfile(ph))
}

// All lists every registered pharmacy for the doctor's link picker.
func (h *PharmacyHandler) All(c *gin.Context) {
	list, err := h.uc.Profiles.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToPharmacyList(list))
}
