package client

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) Sync(ctx context.Context, name, role, specialization string) (*User, error) {
	var u User
	err := c.mutate(ctx, http.MethodPost, "/api/auth/sync", map[string]string{
		"name":           name,
		"role":           role,
		"specialization": specialization,
	}, &u)
	if err != nil {
		return nil, err
	}
	c.Reset()
	return &u, nil
}

func (c *Client) DoctorStats(ctx context.Context) (*DoctorStats, error) {
	var out DoctorStats
	if err := c.query(ctx, KeyDoctorStats, "/api/doctor/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Appointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := c.query(ctx, KeyAppointments, "/api/doctor/appointments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id uint, status string) (*Appointment, error) {
	var out Appointment
	err := c.mutate(ctx, http.MethodPut,
		fmt.Sprintf("/api/doctor/appointments/%d", id),
		map[string]string{"status": status},
		&out,
		KeyAppointments, KeyDoctorStats, KeyPatientHistory,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) History(ctx context.Context) ([]HistoryItem, error) {
	var out []HistoryItem
	if err := c.query(ctx, KeyPatientHistory, "/api/doctor/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePrescription(ctx context.Context, in NewPrescription) (*Prescription, error) {
	var out Prescription
	err := c.mutate(ctx, http.MethodPost, "/api/doctor/prescriptions", in, &out,
		KeyAppointments, KeyDoctorStats, KeyPatientHistory,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Prescription(ctx context.Context, id uint) (*Prescription, error) {
	var out Prescription
	key := fmt.Sprintf("%s:%d", KeyPrescription, id)
	if err := c.query(ctx, key, fmt.Sprintf("/api/doctor/prescriptions/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PrescriptionPDF downloads the printable copy. It is never cached.
func (c *Client) PrescriptionPDF(ctx context.Context, id uint) ([]byte, error) {
	return c.send(ctx, http.MethodGet, fmt.Sprintf("/api/doctor/prescriptions/%d/download", id), nil, "")
}

func (c *Client) DoctorProfile(ctx context.Context) (*DoctorProfile, error) {
	var out DoctorProfile
	if err := c.query(ctx, KeyUserProfile, "/api/doctor/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDoctorProfile(ctx context.Context, in DoctorProfileUpdate) (*DoctorProfile, error) {
	var out DoctorProfile
	if err := c.mutate(ctx, http.MethodPut, "/api/doctor/profile", in, &out, KeyUserProfile); err != nil {
		return nil, err
	}
	return &out, nil
}

// LinkedPharmacyStock is the stock of a pharmacy linked to the calling doctor.
func (c *Client) LinkedPharmacyStock(ctx context.Context, pharmacyID uint) ([]StockItem, error) {
	var out []StockItem
	key := fmt.Sprintf("%s:%d", KeyPharmacyStock, pharmacyID)
	if err := c.query(ctx, key, fmt.Sprintf("/api/doctor/pharmacy/%d/stock", pharmacyID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AllPharmacies(ctx context.Context) ([]PharmacyListItem, error) {
	var out []PharmacyListItem
	if err := c.query(ctx, KeyAllPharmacies, "/api/pharmacy/all", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AuditLogs(ctx context.Context, page, limit int) (*Page[AuditLog], error) {
	var out Page[AuditLog]
	key := fmt.Sprintf("%s:%d:%d", KeyAuditLogs, page, limit)
	path := fmt.Sprintf("/api/me/audit-logs?page=%d&limit=%d", page, limit)
	if err := c.query(ctx, key, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
