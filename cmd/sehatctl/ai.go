package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sehatsetu/sehatsetu-api/internal/client"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

// digitizeCmd runs the extraction, review and commit flow interactively.
func digitizeCmd(g *globals) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "digitize <image-or-pdf>",
		Short: "Read a paper prescription and sell it from stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := readFilePart(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			out := cmd.OutOrStdout()
			s := g.client().NewSession()
			if err := s.Extract(ctx, file); err != nil {
				if !s.Manual() {
					return err
				}
				fmt.Fprintf(out, "could not read the prescription (%v); enter medicines manually\n", err)
			}

			if !yes {
				if err := review(cmd, s); err != nil {
					return err
				}
			}

			summary, err := s.Commit(ctx)
			if err != nil {
				return err
			}
			return g.print(out, summary, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "%s: %d sold, %d unavailable\n\n", summary.Message, summary.SoldCount, summary.UnavailableCount)
				fmt.Fprintln(tw, "MEDICINE\tREQUESTED\tSTATUS\tREMAINING")
				for _, d := range summary.Details {
					remaining := "-"
					if d.Remaining != nil {
						remaining = strconv.Itoa(*d.Remaining)
					}
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", d.Name, d.Requested, d.Status, remaining)
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "commit the extracted rows without review")
	return cmd
}

// review reads edit commands from stdin until "commit":
//
//	add name|dosage|frequency|duration|qty
//	edit <row> name|dosage|frequency|duration|qty
//	rm <row>
func review(cmd *cobra.Command, s *client.Session) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	for {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		medicineTable(tw, s.Rows())
		_ = tw.Flush()
		fmt.Fprint(out, "\nadd | edit <row> | rm <row> | commit > ")

		if !in.Scan() {
			return fmt.Errorf("review aborted")
		}
		verb, rest, _ := strings.Cut(strings.TrimSpace(in.Text()), " ")

		var err error
		switch verb {
		case "commit":
			return nil
		case "add":
			var line models.MedicineLine
			if line, err = parseMedicine(rest); err == nil {
				err = s.EditRow(s.AddRow(), line)
			}
		case "edit":
			idx, desc, _ := strings.Cut(rest, " ")
			var row int
			if row, err = strconv.Atoi(idx); err == nil {
				var line models.MedicineLine
				if line, err = parseMedicine(desc); err == nil {
					err = s.EditRow(row, line)
				}
			}
		case "rm":
			var row int
			if row, err = strconv.Atoi(strings.TrimSpace(rest)); err == nil {
				err = s.RemoveRow(row)
			}
		default:
			err = fmt.Errorf("unknown command %q", verb)
		}
		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

func askCmd(g *globals) *cobra.Command {
	var (
		attach  string
		history string
		reset   bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the clinical assistant; the conversation is kept locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := client.OpenChatLog(history)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if reset {
				if err := log.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(out, client.InitialGreeting)
				return nil
			}

			if len(args) == 0 && attach == "" {
				for _, m := range log.Messages() {
					fmt.Fprintf(out, "[%s] %s\n\n", m.Role, m.Content)
				}
				return nil
			}

			var file *client.FilePart
			if attach != "" {
				fp, err := readFilePart(attach)
				if err != nil {
					return err
				}
				file = &fp
			}

			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			reply, err := g.client().Converse(ctx, log, strings.Join(args, " "), file)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply)
			return nil
		},
	}
	cmd.Flags().StringVar(&attach, "file", "", "attach a report (image or PDF)")
	cmd.Flags().StringVar(&history, "history", defaultHistoryPath(), "chat history file")
	cmd.Flags().BoolVar(&reset, "clear", false, "clear the stored conversation")
	return cmd
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "sehatctl", "chat.json")
}

func avatarCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-avatar <image>",
		Short: "Upload a profile picture and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := readFilePart(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd, g)
			defer cancel()

			url, err := g.client().UploadProfilePicture(ctx, file)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}
