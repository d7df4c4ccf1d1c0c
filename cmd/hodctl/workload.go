package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	assignments "obehod_backend/internals/features/hod/assignments/service"
	"obehod_backend/internals/hodapi"
)

var workloadYear int

var workloadCmd = &cobra.Command{
	Use:   "workload <facultyId>",
	Short: "Show a faculty member's teaching workload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		v, err := assignments.LoadWorkload(ctx, client, hodapi.ID(args[0]), workloadYear)
		if err != nil {
			return fmt.Errorf("%s", hodapi.Message(err, "Failed to load workload"))
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), v)
		}
		renderWorkload(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	workloadCmd.Flags().IntVar(&workloadYear, "year", 0, "only this academic year")
}

func renderWorkload(w io.Writer, v assignments.WorkloadView) {
	name := v.FacultyID.String()
	if v.Faculty != nil && v.Faculty.Name != "" {
		name = v.Faculty.Name
	}
	heading(w, "Workload: %s", name)

	t := newTable(w, "Year", "Semester", "Courses", "Credits")
	for _, s := range v.Summary {
		t.Append([]string{itoa(s.Year), itoa(s.Semester), itoa(s.CourseCount), itoa(s.TotalCredits)})
	}
	t.SetFooter([]string{"", "Total", itoa(v.TotalCourses), itoa(v.TotalCredits)})
	t.Render()

	if len(v.Assignments) == 0 {
		return
	}
	heading(w, "Courses")
	d := newTable(w, "Code", "Course", "Credits", "Term", "Methodology", "Assessment")
	for _, a := range v.Assignments {
		d.Append([]string{
			a.CourseCode, a.CourseName, itoa(a.Credits),
			fmt.Sprintf("S%d %d", a.Semester, a.Year),
			orDash(a.TeachingMethodology), orDash(a.AssessmentMode),
		})
	}
	d.Render()
}
