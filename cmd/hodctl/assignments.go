package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	dashboard "obehod_backend/internals/features/hod/assignment_dashboard/service"
	"obehod_backend/internals/hodapi"
)

var dashFilters dashboard.Filters

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Department assignments dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		d := dashboard.New(client)
		defer d.Close()
		v := d.Load(ctx, dashFilters)
		if asJSON {
			return printJSON(cmd.OutOrStdout(), v)
		}
		renderDashboard(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	f := assignmentsCmd.Flags()
	f.IntVar(&dashFilters.Year, "year", 0, "academic year")
	f.IntVar(&dashFilters.Semester, "semester", 0, "semester number")
	f.StringVar(&dashFilters.SemesterType, "semester-type", "", "even or odd")
	f.StringVar((*string)(&dashFilters.FacultyID), "faculty", "", "faculty id")
	f.StringVar((*string)(&dashFilters.CourseID), "course", "", "course id")
}

func renderDashboard(w io.Writer, v dashboard.View) {
	if v.Stats != nil {
		heading(w, "Department")
		s := newTable(w, "Assignments", "Faculty", "Courses", "Unassigned")
		s.Append([]string{itoa(v.Stats.TotalAssignments), itoa(v.Stats.TotalFaculty), itoa(v.Stats.TotalCourses), itoa(v.Stats.UnassignedCourses)})
		s.Render()
	}

	if len(v.ActiveFilters) > 0 {
		labels := make([]string, 0, len(v.ActiveFilters))
		for _, c := range v.ActiveFilters {
			labels = append(labels, c.Label)
		}
		heading(w, "Assignments (%s)", strings.Join(labels, ", "))
	} else {
		heading(w, "Assignments")
	}

	switch v.State {
	case dashboard.StateError:
		banner(w, v.Error)
		return
	case dashboard.StateEmpty:
		banner(w, "No assignments yet.")
		return
	case dashboard.StateNoResults:
		banner(w, "No assignments match these filters.")
		return
	}

	t := newTable(w, "Course", "Faculty", "Semester", "Year", "Methodology")
	for _, a := range v.Assignments {
		t.Append([]string{courseLabel(a), facultyLabel(a), itoa(a.Semester), itoa(a.Year), orDash(a.TeachingMethodology)})
	}
	t.Render()
}

func courseLabel(a hodapi.Assignment) string {
	if a.Course != nil && a.Course.Code != "" {
		return a.Course.Code + " " + a.Course.Name
	}
	return a.CourseID.String()
}

func facultyLabel(a hodapi.Assignment) string {
	if a.Faculty != nil && a.Faculty.Name != "" {
		return a.Faculty.Name
	}
	return a.FacultyID.String()
}
