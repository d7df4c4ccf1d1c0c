package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"obehod_backend/internals/hodapi"
)

var (
	baseURL  string
	apiToken string
	timeout  time.Duration
	asJSON   bool
)

var rootCmd = &cobra.Command{
	Use:   "hodctl",
	Short: "Terminal views of the HOD OBE backend",
	Long: `hodctl renders the read-only HOD pages as tables: faculty workload,
the department assignments dashboard, a course's CLO list and reports.

The backend is taken from HOD_API_BASE_URL and HOD_API_TOKEN (a .env file
in the working directory is read first) unless flags override them.`,
	SilenceUsage: true,
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", os.Getenv("HOD_API_BASE_URL"), "HOD API base URL")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", os.Getenv("HOD_API_TOKEN"), "bearer token for the HOD API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "per-request timeout")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print the view as JSON instead of tables")

	rootCmd.AddCommand(workloadCmd, assignmentsCmd, closCmd, reportsCmd)
}

func newClient() (*hodapi.Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("no backend: set HOD_API_BASE_URL or pass --base-url")
	}
	return hodapi.New(hodapi.Config{BaseURL: baseURL, Token: apiToken, Timeout: timeout})
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 2*timeout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}
