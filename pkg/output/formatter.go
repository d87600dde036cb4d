package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/254carbon/graph-validator/pkg/report"
	"github.com/254carbon/graph-validator/pkg/validate"
)

// PrintValidationReport prints a nicely formatted validation summary with colors
func PrintValidationReport(rep *report.Report) {
	// Color definitions
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Println("Dependency Graph Validation Report")
	bold.Println("==================================")
	fmt.Printf("Services: %d\n", rep.Metadata.CatalogServices)
	fmt.Printf("Graph: %d nodes, %d internal edges\n", rep.Metadata.GraphNodes, rep.Metadata.GraphEdges)
	fmt.Println()

	// Violations list
	if len(rep.Violations) > 0 {
		red.Println("VIOLATIONS:")
		for _, v := range rep.Violations {
			switch v.Severity {
			case validate.SeverityError:
				red.Printf("  [%s] %s\n", v.Severity, v.Type)
			default:
				yellow.Printf("  [%s] %s\n", v.Severity, v.Type)
			}
			cyan.Printf("    %s\n", v.Description)
		}
		fmt.Println()
	}

	// Summary with color based on outcome
	summaryColor := green
	if rep.Summary.Warnings > 0 {
		summaryColor = yellow
	}
	if rep.Summary.Errors > 0 {
		summaryColor = red
	}
	summaryColor.Printf("Summary: %d violations (%d errors, %d warnings)\n",
		rep.Metadata.TotalViolations, rep.Summary.Errors, rep.Summary.Warnings)

	if rep.Summary.Passed {
		green.Println("✓ All dependency validations passed")
	} else {
		red.Println("✗ Dependency validation failed")
	}
}
