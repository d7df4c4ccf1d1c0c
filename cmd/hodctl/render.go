package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetRowLine(false)
	return t
}

func printJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func heading(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(w, "\n"+format+"\n", args...)
}

func banner(w io.Writer, msg string) {
	if msg != "" {
		_, _ = color.New(color.FgRed).Fprintln(w, msg)
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
