package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/depgraph"
	"github.com/phrazzld/taskrank-api/internal/service"
	"github.com/phrazzld/taskrank-api/internal/taskfile"
)

const formatText = "text"

// parseOutputFormat returns the taskfile format for structured output, or
// an empty format for text.
func parseOutputFormat(name string) (taskfile.Format, error) {
	switch strings.ToLower(name) {
	case formatText:
		return "", nil
	case string(taskfile.FormatJSON):
		return taskfile.FormatJSON, nil
	case string(taskfile.FormatYAML):
		return taskfile.FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
	}
}

func writeScored(out io.Writer, format string, tasks []domain.ScoredTask) error {
	structured, err := parseOutputFormat(format)
	if err != nil {
		return err
	}
	if structured != "" {
		return taskfile.Encode(out, structured, map[string]interface{}{"tasks": tasks})
	}

	if len(tasks) == 0 {
		_, err := fmt.Fprintln(out, "No tasks.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tID\tTITLE\tDUE")
	for i, st := range tasks {
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\n", i+1, st.PriorityScore, orDash(st.ID), st.Title, dueText(st.DueDate))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for i, st := range tasks {
		fmt.Fprintf(out, "%d. %s\n", i+1, st.Explanation)
	}
	return nil
}

func writeExplained(out io.Writer, format string, tasks []service.ExplainedTask) error {
	structured, err := parseOutputFormat(format)
	if err != nil {
		return err
	}
	if structured != "" {
		return taskfile.Encode(out, structured, map[string]interface{}{"tasks": tasks})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tID\tURGENCY\tIMPORTANCE\tEFFORT\tDEPENDENTS")
	for i, et := range tasks {
		f := et.Factors
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%.0f\t%.0f\t%.0f\t%.0f (%d)\n",
			i+1, et.PriorityScore, orDash(et.ID), f.Urgency, f.Importance, f.Effort, f.Dependents, f.DependentsCount)
	}
	return tw.Flush()
}

func writeCycles(out io.Writer, format string, report depgraph.CycleReport) error {
	structured, err := parseOutputFormat(format)
	if err != nil {
		return err
	}
	if structured != "" {
		return taskfile.Encode(out, structured, report)
	}

	if !report.HasCycle {
		_, err := fmt.Fprintln(out, "No circular dependencies.")
		return err
	}
	_, err = fmt.Fprintf(out, "Circular dependency: %s\n", strings.Join(report.CycleNodes, " -> "))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dueText(d *domain.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}
