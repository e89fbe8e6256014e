package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/dto"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/httpresp"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/profile"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/stats"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/stock"
)

type DoctorUseCases struct {
	Stats        *stats.GetDoctorStats
	Appointments *appointment.ListAppointments
	UpdateStatus *appointment.UpdateAppointmentStatus
	History      *appointment.ListHistory
	Prescribe    *prescription.CreatePrescription
	Prescription *prescription.GetPrescription
	Download     *prescription.DownloadPrescription
	Profiles     *profile.DoctorProfiles
	LinkedStock  *stock.ListLinkedStock
}

type DoctorHandler struct {
	uc  DoctorUseCases
	loc *time.Location
	log zerolog.Logger
}

func NewDoctorHandler(uc DoctorUseCases, loc *time.Location, log zerolog.Logger) *DoctorHandler {
	return &DoctorHandler{uc: uc, loc: loc, log: log}
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *DoctorHandler) Stats(c *gin.Context) {
	out, err := h.uc.Stats.Execute(c.Request.Context(), currentUser(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (h *DoctorHandler) ListAppointments(c *gin.Context) {
	apps, err := h.uc.Appointments.Execute(c.Request.Context(), currentUser(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToAppointments(apps, h.loc))
}

func (h *DoctorHandler) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status is required.")
		return
	}

	ap, err := h.uc.UpdateStatus.Execute(c.Request.Context(), currentUser(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToAppointment(*ap, h.loc))
}

func (h *DoctorHandler) History(c *gin.Context) {
	apps, err := h.uc.History.Execute(c.Request.Context(), currentUser(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToHistory(apps))
}

// ======================================================
// PRESCRIPTIONS
// ======================================================

func (h *DoctorHandler) CreatePrescription(c *gin.Context) {
	var req dto.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Appointment and pharmacy are required.")
		return
	}

	p, err := h.uc.Prescribe.Execute(c.Request.Context(), currentUser(c), prescription.CreateInput{
		AppointmentID: uint(req.AppointmentID),
		PatientID:     uint(req.PatientID),
		PharmacyID:    uint(req.PharmacyID),
		Medicines:     req.Medicines,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *DoctorHandler) GetPrescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.uc.Prescription.Execute(c.Request.Context(), currentUser(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToDoctorPrescription(p))
}

func (h *DoctorHandler) DownloadPrescription(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	pdf, name, err := h.uc.Download.Execute(c.Request.Context(), currentUser(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ======================================================
// PROFILE
// ======================================================

func (h *DoctorHandler) GetProfile(c *gin.Context) {
	p, err := h.uc.Profiles.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToDoctorProfile(p))
}

func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile data.")
		return
	}

	p, err := h.uc.Profiles.Update(c.Request.Context(), currentUser(c), req.Changes())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.ToDoctorProfile(p))
}

func (h *DoctorHandler) PharmacyStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.uc.LinkedStock.Execute(c.Request.Context(), currentUser(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, items)
}
