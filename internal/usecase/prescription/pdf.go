package prescription

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
	"github.com/sehatsetu/sehatsetu-api/internal/timezone"
)

type DownloadPrescription struct {
	get      *GetPrescription
	timezone string
}

func NewDownloadPrescription(get *GetPrescription, tz string) *DownloadPrescription {
	return &DownloadPrescription{get: get, timezone: tz}
}

// Execute renders the doctor's prescription as a PDF and returns it with a file name.
func (uc *DownloadPrescription) Execute(
	ctx context.Context,
	doctorID uint,
	prescriptionID uint,
) ([]byte, string, error) {

	p, err := uc.get.Execute(ctx, doctorID, prescriptionID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := RenderPDF(&buf, p, timezone.Location(uc.timezone)); err != nil {
		return nil, "", fmt.Errorf("render prescription %d: %w", p.ID, err)
	}

	return buf.Bytes(), fmt.Sprintf("prescription-%d.pdf", p.ID), nil
}

var medicineColumns = []struct {
	title string
	width float64
}{
	{"#", 10},
	{"Medicine", 58},
	{"Dosage", 30},
	{"Frequency", 30},
	{"Duration", 30},
	{"Qty", 22},
}

// RenderPDF writes an A4 prescription with Patient, Doctor and Pharmacy preloaded on p.
func RenderPDF(w io.Writer, p *models.Prescription, loc *time.Location) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Prescription %d", p.ID), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "SehatSetu", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Digital prescription #"+strconv.FormatUint(uint64(p.ID), 10), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Issued "+p.CreatedAt.In(loc).Format("02 Jan 2006, 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := func(title string, rows ...string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, r := range rows {
			if r == "" {
				continue
			}
			pdf.MultiCell(0, 5, tr(r), "", "L", false)
		}
		pdf.Ln(3)
	}

	doctor := p.Doctor.Name
	if p.Doctor.Specialization != "" {
		doctor += " (" + p.Doctor.Specialization + ")"
	}
	section("Doctor", doctor)

	patient := []string{p.Patient.Name}
	if p.Patient.Gender != "" {
		patient = append(patient, "Gender: "+p.Patient.Gender)
	}
	if p.Patient.DateOfBirth != nil {
		patient = append(patient, "Date of birth: "+p.Patient.DateOfBirth.Format("02 Jan 2006"))
	}
	if p.Patient.Phone != "" {
		patient = append(patient, "Phone: "+p.Patient.Phone)
	}
	section("Patient", patient...)

	section("Pharmacy", p.Pharmacy.Name, p.Pharmacy.Address)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 240, 250)
	for _, col := range medicineColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for i, m := range p.Medicines {
		cells := []string{
			strconv.Itoa(i + 1),
			m.Name,
			m.Dosage,
			m.Frequency,
			m.Duration,
			strconv.Itoa(m.Quantity),
		}
		for j, col := range medicineColumns {
			pdf.CellFormat(col.width, 7, tr(cells[j]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	if p.Notes != "" {
		section("Notes", p.Notes)
	}

	return pdf.Output(w)
}
