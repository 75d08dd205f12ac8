package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lcalzada-xor/framestrip/pkg/models"
	"github.com/olekukonko/tablewriter"
)

const (
	cPurple      = "\x1b[38;5;129m"
	cLightPurple = "\x1b[38;5;141m"
	cDarkPurple  = "\x1b[38;5;93m"
	cRed         = "\x1b[38;5;196m"
	cOrange      = "\x1b[38;5;214m"
	cReset       = "\x1b[0m"
)

// Format returns the formatted result string based on the selected format
func Format(res models.Result, format string) string {
	switch format {
	case "url":
		// one line per input, for piping into other tools
		return res.Input

	case "human":
		var sb strings.Builder

		title, color := "Rewritten", cPurple
		switch {
		case res.Error != "":
			title, color = "Failed", cRed
		case res.Verify == models.VerifyBroken:
			title, color = "Rewrite Broke Parsing", cRed
		case res.Rewrites() == 0:
			title, color = "No Frame References", cOrange
		}

		sb.WriteString(fmt.Sprintf("\n%s[+] %s%s\n", color, title, cReset))
		field := func(name, value string) {
			sb.WriteString(fmt.Sprintf("    %s%-13s%s %s%s%s\n", cDarkPurple, name+":", cReset, cLightPurple, value, cReset))
		}
		field("Input", res.Input)
		if res.Output != "" {
			field("Output", res.Output)
		}
		field("Content", string(res.Content))
		field("Replacements", fmt.Sprintf("%d", res.Stats.Replacements))
		field("Bare Refs", fmt.Sprintf("%d", res.Stats.BareReferences))
		field("Bytes", fmt.Sprintf("%d -> %d", res.Stats.BytesIn, res.Stats.BytesOut))
		field("Duration", res.Duration.Round(time.Microsecond).String())
		if res.Verify != "" && res.Verify != models.VerifySkipped {
			field("Verify", string(res.Verify))
		}
		if res.Error != "" {
			sb.WriteString(fmt.Sprintf("    %s%-13s%s %s%s%s\n", cDarkPurple, "Error:", cReset, cRed, res.Error, cReset))
		}
		return sb.String()

	case "json":
		output, err := json.Marshal(res)
		if err != nil {
			// Return error as JSON instead of empty string
			return fmt.Sprintf("{\"error\":\"failed to marshal result: %v\"}", err)
		}
		return string(output)

	default:
		return res.Input
	}
}

// Table renders a summary of results.
func Table(w io.Writer, results []models.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Input", "Replacements", "Bare", "Bytes In", "Bytes Out", "Verify", "Error"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	var total models.Stats
	failed := 0
	for _, res := range results {
		table.Append([]string{
			res.Input,
			fmt.Sprintf("%d", res.Stats.Replacements),
			fmt.Sprintf("%d", res.Stats.BareReferences),
			fmt.Sprintf("%d", res.Stats.BytesIn),
			fmt.Sprintf("%d", res.Stats.BytesOut),
			string(res.Verify),
			res.Error,
		})
		total.Replacements += res.Stats.Replacements
		total.BareReferences += res.Stats.BareReferences
		total.BytesIn += res.Stats.BytesIn
		total.BytesOut += res.Stats.BytesOut
		if res.Failed() {
			failed++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Inputs %d", len(results)),
		fmt.Sprintf("%d", total.Replacements),
		fmt.Sprintf("%d", total.BareReferences),
		fmt.Sprintf("%d", total.BytesIn),
		fmt.Sprintf("%d", total.BytesOut),
		"",
		fmt.Sprintf("%d failed", failed),
	})
	table.Render()
}
