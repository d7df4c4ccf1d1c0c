package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	reports "obehod_backend/internals/features/hod/reports/service"
	"obehod_backend/internals/hodapi"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Department overview and OBE reports",
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Department counters and assignment coverage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		ov, err := reports.LoadOverview(ctx, client)
		if err != nil {
			return fmt.Errorf("%s", hodapi.Message(err, "Failed to load dashboard statistics"))
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), ov)
		}
		renderOverview(cmd.OutOrStdout(), ov)
		return nil
	},
}

var programReportCmd = &cobra.Command{
	Use:   "program <programmeId>",
	Short: "Programme attainment report as returned by the backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := client.Reports.ProgramReport(ctx, hodapi.ID(args[0]))
		if err != nil {
			return fmt.Errorf("%s", hodapi.Message(err, "Failed to load programme report"))
		}
		return printJSON(cmd.OutOrStdout(), res.Data)
	},
}

var contributionsCmd = &cobra.Command{
	Use:   "contributions <courseId>",
	Short: "A course's CLO contributions to POs and PSOs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		res, err := client.Reports.CourseContributions(ctx, hodapi.ID(args[0]))
		if err != nil {
			return fmt.Errorf("%s", hodapi.Message(err, "Failed to load course contributions"))
		}
		return printJSON(cmd.OutOrStdout(), res.Data)
	},
}

func init() {
	reportsCmd.AddCommand(overviewCmd, programReportCmd, contributionsCmd)
}

func renderOverview(w io.Writer, ov reports.Overview) {
	heading(w, "Department overview")
	t := newTable(w, "Programmes", "Courses", "Faculty", "CLOs", "Active assignments")
	s := ov.Stats
	t.Append([]string{itoa(s.TotalProgrammes), itoa(s.TotalCourses), itoa(s.TotalFaculty), itoa(s.TotalCLOs), itoa(s.ActiveAssignments)})
	t.Render()

	if ov.Assignments != nil {
		_, _ = fmt.Fprintf(w, "Assignment coverage: %.0f%% (%d unassigned courses)\n", ov.Coverage, ov.Assignments.UnassignedCourses)
	}
	banner(w, ov.Warning)
}
