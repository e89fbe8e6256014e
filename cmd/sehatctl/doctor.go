package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sehatsetu/sehatsetu-api/internal/client"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

func doctorCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Doctor workflows: appointments, prescriptions, profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Dashboard counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			s, err := g.client().DoctorStats(ctx)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), s, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "TODAY\tPENDING\tACCEPTED\n%d\t%d\t%d\n",
					s.TodaysAppointments, s.PendingRequests, s.AcceptedAppointments)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "appointments",
		Short: "List appointments, pending first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			apps, err := g.client().Appointments(ctx)
			if err != nil {
				return err
			}
			client.SortPendingFirst(apps)
			return g.print(cmd.OutOrStdout(), apps, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tDATE\tTIME\tPATIENT\tSTATUS\tREASON\tPRESCRIBE")
				for _, a := range apps {
					link, _ := a.PrescriptionLink()
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
						a.ID, a.AppointmentDate.Format("2006-01-02"), a.AppointmentTime,
						a.Patient.Name, a.Status, orDash(a.Reason), orDash(link))
				}
			})
		},
	})

	for _, status := range []string{"accepted", "rejected", "completed", "canceled"} {
		cmd.AddCommand(setAppointmentStatusCmd(g, status))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Completed appointments with their prescription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			items, err := g.client().History(ctx)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), items, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tDATE\tPATIENT\tPRESCRIPTION")
				for _, h := range items {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n",
						h.ID, h.AppointmentDate.Format("2006-01-02"), h.Patient.Name, h.PrescriptionID)
				}
			})
		},
	})

	cmd.AddCommand(prescribeCmd(g))
	cmd.AddCommand(prescriptionCmd(g))

	cmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show the doctor profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			p, err := g.client().DoctorProfile(ctx)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), p, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pharmacy-stock <pharmacy-id>",
		Short: "Stock of a linked pharmacy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			items, err := g.client().LinkedPharmacyStock(ctx, id)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), items, stockTable(items))
		},
	})

	return cmd
}

func setAppointmentStatusCmd(g *globals, status string) *cobra.Command {
	verb := map[string]string{
		"accepted":  "accept",
		"rejected":  "reject",
		"completed": "complete",
		"canceled":  "cancel",
	}[status]

	return &cobra.Command{
		Use:   verb + " <appointment-id>",
		Short: "Mark an appointment " + status,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			a, err := g.client().UpdateAppointmentStatus(ctx, id, status)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), a, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "appointment %d is now %s\n", a.ID, a.Status)
				if link, ok := a.PrescriptionLink(); ok {
					fmt.Fprintf(tw, "prescribe at %s\n", link)
				}
			})
		},
	}
}

func prescribeCmd(g *globals) *cobra.Command {
	var (
		in        client.NewPrescription
		medicines []string
	)

	cmd := &cobra.Command{
		Use:   "prescribe",
		Short: "Issue a prescription for an accepted appointment",
		Example: `  sehatctl doctor prescribe --appointment 12 --patient 7 --pharmacy 3 \
    --medicine "Paracetamol|500mg|1-0-1|5 days|10" --notes "Plenty of fluids"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, m := range medicines {
				line, err := parseMedicine(m)
				if err != nil {
					return err
				}
				in.Medicines = append(in.Medicines, line)
			}

			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			p, err := g.client().CreatePrescription(ctx, in)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), p, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "prescription %d issued (%s)\n", p.ID, p.Status)
			})
		},
	}
	cmd.Flags().UintVar(&in.AppointmentID, "appointment", 0, "appointment id")
	cmd.Flags().UintVar(&in.PatientID, "patient", 0, "patient id")
	cmd.Flags().UintVar(&in.PharmacyID, "pharmacy", 0, "fulfilling pharmacy id")
	cmd.Flags().StringArrayVar(&medicines, "medicine", nil, `medicine as "name|dosage|frequency|duration|quantity" (repeatable)`)
	cmd.Flags().StringVar(&in.Notes, "notes", "", "notes for the patient")
	_ = cmd.MarkFlagRequired("appointment")
	_ = cmd.MarkFlagRequired("pharmacy")
	return cmd
}

func prescriptionCmd(g *globals) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "prescription <id>",
		Short: "Show a prescription, or save it as PDF with --pdf",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			if out != "" {
				pdf, err := g.client().PrescriptionPDF(ctx, id)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, pdf, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes)\n", out, len(pdf))
				return nil
			}

			p, err := g.client().Prescription(ctx, id)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), p, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Patient:\t%s\nPharmacy:\t%s\nStatus:\t%s\n\n", p.Patient.Name, p.Pharmacy.Name, p.Status)
				medicineTable(tw, p.Medicines)
			})
		},
	}
	cmd.Flags().StringVar(&out, "pdf", "", "write the printable copy to this file")
	return cmd
}

func medicineTable(tw *tabwriter.Writer, lines []models.MedicineLine) {
	fmt.Fprintln(tw, "#\tMEDICINE\tDOSAGE\tFREQUENCY\tDURATION\tQTY")
	for i, m := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n",
			i, m.Name, orDash(m.Dosage), orDash(m.Frequency), orDash(m.Duration), m.Quantity)
	}
}
