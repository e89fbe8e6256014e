package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

type businessMapping struct {
	status  int
	message string
}

var businessCodes = map[string]businessMapping{
	"invalid_state":            {http.StatusConflict, "This status change is not allowed."},
	"invalid_status":           {http.StatusBadRequest, "Unknown status value."},
	"appointment_not_found":    {http.StatusNotFound, "Appointment not found."},
	"appointment_not_accepted": {http.StatusConflict, "Only accepted appointments can receive a prescription."},
	"patient_mismatch":         {http.StatusBadRequest, "The patient does not belong to this appointment."},
	"prescription_exists":      {http.StatusConflict, "A prescription was already issued for this appointment."},
	"prescription_not_found":   {http.StatusNotFound, "Prescription not found."},
	"prescription_dispensed":   {http.StatusConflict, "Dispensed prescriptions cannot be changed."},
	"pharmacy_not_found":       {http.StatusNotFound, "Pharmacy not found."},
	"pharmacy_not_linked":      {http.StatusForbidden, "This pharmacy is not linked to your profile."},
	"profile_not_found":        {http.StatusNotFound, "Profile not found."},
	"profile_exists":           {http.StatusConflict, "A pharmacy profile already exists for this account."},
	"no_medicines":             {http.StatusBadRequest, "Please add at least one medicine."},
	"invalid_medicine":         {http.StatusBadRequest, "Each medicine needs a name, dosage and duration."},
	"invalid_quantity":         {http.StatusBadRequest, "Quantity must be zero or positive."},
	"invalid_medicine_name":    {http.StatusBadRequest, "Medicine name is required."},
	"invalid_coordinates":      {http.StatusBadRequest, "Latitude or longitude is out of range."},
	"stock_item_not_found":     {http.StatusNotFound, "Stock item not found."},
	"stock_item_exists":        {http.StatusConflict, "This medicine is already in stock."},
	"extraction_failed":        {http.StatusUnprocessableEntity, "Could not read the prescription. Please enter the medicines manually."},
	"ai_unavailable":           {http.StatusBadGateway, "The AI service is unavailable."},
	"unsupported_file_type":    {http.StatusUnsupportedMediaType, "Only JPEG, PNG, WebP or PDF files are accepted."},
	"file_too_large":           {http.StatusRequestEntityTooLarge, "The uploaded file is too large."},
	"invalid_image":            {http.StatusBadRequest, "The uploaded file is not a readable image."},
	"storage_unavailable":      {http.StatusServiceUnavailable, "File storage is not configured."},
	"user_not_found":           {http.StatusUnauthorized, "Account not synced. Please sign in again."},
	"forbidden_role":           {http.StatusForbidden, "Your role cannot access this resource."},
	"invalid_name":             {http.StatusBadRequest, "Name is required."},
	"invalid_fee":              {http.StatusBadRequest, "Consultation fees cannot be negative."},
}

// WriteBusiness writes a business code with its mapped status and message.
func WriteBusiness(c *gin.Context, code string) {
	if m, ok := businessCodes[code]; ok {
		Write(c, m.status, code, m.message)
		return
	}
	BadRequest(c, code, code)
}

// Respond writes err as an HTTP error. Business codes map through the table above,
// everything else is logged and reported as internal_error.
func Respond(c *gin.Context, log zerolog.Logger, err error) {
	if code := CodeOf(err); code != "" {
		WriteBusiness(c, code)
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	Internal(c, "internal_error", "Something went wrong. Please try again.")
}
