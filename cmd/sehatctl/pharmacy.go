package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sehatsetu/sehatsetu-api/internal/client"
)

func pharmacyCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pharmacy",
		Short: "Pharmacy workflows: stock, prescriptions, orders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Dashboard counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			s, err := g.client().PharmacyStats(ctx)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), s, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "MEDICINES\tPENDING RX\tOUT OF STOCK\n%d\t%d\t%d\n",
					s.TotalMedicines, s.PendingPrescriptions, s.OutOfStock)
			})
		},
	})

	cmd.AddCommand(stockCmd(g))

	cmd.AddCommand(&cobra.Command{
		Use:   "prescriptions",
		Short: "Incoming prescriptions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			list, err := g.client().IncomingPrescriptions(ctx)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), list, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tCREATED\tPATIENT\tDOCTOR\tITEMS\tSTATUS")
				for _, p := range list {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
						p.ID, p.CreatedAt.Format("2006-01-02 15:04"), p.Patient.Name, p.Doctor.Name,
						len(p.Medicines), p.Status)
				}
			})
		},
	})

	var notes string
	rxStatus := &cobra.Command{
		Use:   "rx-status <id> <ready_for_pickup|dispensed>",
		Short: "Advance a prescription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			p, err := g.client().UpdatePrescriptionStatus(ctx, id, args[1], notes)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), p, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "prescription %d is now %s\n", p.ID, p.Status)
			})
		},
	}
	rxStatus.Flags().StringVar(&notes, "notes", "", "pharmacy notes")
	cmd.AddCommand(rxStatus)

	var limit int
	orders := &cobra.Command{
		Use:   "orders",
		Short: "Past offline orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			list, err := g.client().OfflineOrders(ctx, limit)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), list, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tCREATED\tSOLD\tUNAVAILABLE")
				for _, o := range list {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n",
						o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.SoldCount, o.UnavailableCount)
				}
			})
		},
	}
	orders.Flags().IntVar(&limit, "limit", 20, "number of orders")
	cmd.AddCommand(orders)

	return cmd
}

func stockCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "List stock, or manage it with a subcommand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			items, err := g.client().Stock(ctx)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), items, stockTable(items))
		},
	}

	var price float64
	add := &cobra.Command{
		Use:   "add <medicine> <quantity>",
		Short: "Add a medicine to stock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			in := client.StockInput{MedicineName: args[0], Quantity: qty}
			if cmd.Flags().Changed("price") {
				in.Price = &price
			}

			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			item, err := g.client().AddStock(ctx, in)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), item, stockTable([]client.StockItem{*item}))
		},
	}
	add.Flags().Float64Var(&price, "price", 0, "unit price")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "adjust <id> <delta>",
		Short: "Add or remove units; the quantity never drops below zero",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q", args[1])
			}

			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			item, err := g.client().AdjustStock(ctx, id, delta)
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), item, stockTable([]client.StockItem{*item}))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a stock item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			if err := g.client().DeleteStock(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stock item %d removed\n", id)
			return nil
		},
	})

	return cmd
}

func stockTable(items []client.StockItem) func(tw *tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tMEDICINE\tQTY\tPRICE")
		for _, it := range items {
			price := "-"
			if it.Price != nil {
				price = strconv.FormatFloat(*it.Price, 'f', 2, 64)
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", it.ID, it.MedicineName, it.Quantity, price)
		}
	}
}
