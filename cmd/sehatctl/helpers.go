package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

func withTimeout(cmd *cobra.Command, g *globals) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), g.timeout)
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

// parseMedicine reads "name|dosage|frequency|duration|quantity". Trailing
// fields may be omitted; quantity defaults to 1.
func parseMedicine(s string) (models.MedicineLine, error) {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	line := models.MedicineLine{Name: parts[0], Quantity: 1}
	if line.Name == "" {
		return line, fmt.Errorf("medicine %q has no name", s)
	}
	if len(parts) > 1 {
		line.Dosage = parts[1]
	}
	if len(parts) > 2 {
		line.Frequency = parts[2]
	}
	if len(parts) > 3 {
		line.Duration = parts[3]
	}
	if len(parts) > 4 && parts[4] != "" {
		q, err := strconv.Atoi(parts[4])
		if err != nil {
			return line, fmt.Errorf("medicine %q: invalid quantity", s)
		}
		line.Quantity = q
	}
	return line, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
