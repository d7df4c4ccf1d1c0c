package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	closService "obehod_backend/internals/features/hod/clos/service"
	"obehod_backend/internals/hodapi"
)

var (
	cloSearch string
	cloBloom  string
)

var closCmd = &cobra.Command{
	Use:   "clos <courseId>",
	Short: "List a course's CLOs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		p := closService.NewListPage(client, hodapi.ID(args[0]))
		defer p.Close()
		p.Load(ctx)
		v := p.Filter(cloSearch, hodapi.BloomLevel(cloBloom))
		if asJSON {
			return printJSON(cmd.OutOrStdout(), v)
		}
		renderCLOs(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	closCmd.Flags().StringVarP(&cloSearch, "search", "q", "", "match code or description")
	closCmd.Flags().StringVar(&cloBloom, "bloom", "", "only this Bloom's level")
}

func renderCLOs(w io.Writer, v closService.View) {
	title := v.CourseID.String()
	if v.Course != nil {
		title = v.Course.Code + " " + v.Course.Name
	}
	heading(w, "CLOs: %s", title)
	if v.Error != "" {
		banner(w, v.Error)
		return
	}
	switch v.EmptyState {
	case closService.EmptyNone:
		banner(w, "No CLOs created for this course yet.")
		return
	case closService.EmptyNoMatch:
		banner(w, "No CLOs match the search.")
		return
	}

	t := newTable(w, "Code", "Description", "Bloom", "Threshold", "Version", "Active")
	for _, c := range v.Visible {
		active := "no"
		if c.IsActive {
			active = "yes"
		}
		t.Append([]string{c.CLOCode, c.Description, string(c.BloomLevel), itoa(c.Threshold) + "%", c.Version, active})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "%d of %d shown, %d active, average threshold %.1f%%, %d Bloom's levels\n",
		len(v.Visible), v.Stats.Total, v.Stats.Active, v.Stats.AverageThreshold, v.Stats.BloomLevels)
}
