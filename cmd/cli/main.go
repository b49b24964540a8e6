package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL     string
	timeout     time.Duration
	workspaceID string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fintrack-cli",
		Short: "FinTrack CLI tool",
		Long:  `A command line interface for interacting with the FinTrack API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinTrack API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&workspaceID, "workspace", "", "Workspace ID (required)")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	accountListCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts in the workspace",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	}

	accountCmd.AddCommand(accountListCmd)
	rootCmd.AddCommand(accountCmd)

	// Budget commands
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget operations",
	}

	budgetStatusCmd := &cobra.Command{
		Use:   "status <budget-id>",
		Short: "Show budgeted vs actual amounts for a budget",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			budgetStatus(args[0])
		},
	}

	budgetCmd.AddCommand(budgetStatusCmd)
	rootCmd.AddCommand(budgetCmd)

	// Calendar commands
	calendarCmd := &cobra.Command{
		Use:   "calendar <from> <to>",
		Short: "Generate a payment calendar forecast (dates as YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			generateCalendar(args[0], args[1])
		},
	}

	rootCmd.AddCommand(calendarCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func apiGet(path string) []byte {
	if workspaceID == "" {
		fmt.Println("--workspace is required")
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("X-Workspace-ID", workspaceID)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func apiGetObject(path string) map[string]any {
	body := apiGet(path)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}

func listAccounts() {
	body := apiGet("/api/v1/accounts")

	var accounts []map[string]any
	if err := json.Unmarshal(body, &accounts); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Accounts: %d\n", len(accounts))
	for _, acc := range accounts {
		fmt.Printf("  %s  %s  %s %s  active=%v\n",
			acc["id"], acc["name"], acc["balance"], acc["currency"], acc["active"])
	}
}

func budgetStatus(budgetID string) {
	result := apiGetObject("/api/v1/budgets/" + budgetID + "/status")

	fmt.Printf("Budget: %s (%s .. %s)\n", result["name"], result["start_date"], result["end_date"])
	fmt.Printf("Budgeted: %s  Actual: %s  Deviation: %s\n",
		result["total_budgeted"], result["total_actual"], result["total_deviation"])

	items, _ := result["items"].([]any)
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			continue
		}
		fmt.Printf("  category=%s budgeted=%s actual=%s deviation=%s\n",
			item["category_id"], item["budgeted"], item["actual"], item["deviation"])
	}
}

func generateCalendar(from, to string) {
	result := apiGetObject("/api/v1/calendar?start=" + from + "&end=" + to)

	fmt.Printf("Forecast %s .. %s\n", result["start_date"], result["end_date"])
	fmt.Printf("Opening: %s  Closing: %s\n", result["opening_balance"], result["closing_balance"])

	days, _ := result["days"].([]any)
	gaps := 0
	for _, d := range days {
		day, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if gap, _ := day["cash_gap"].(bool); gap {
			gaps++
			fmt.Printf("  CASH GAP on %s: closing %s\n", day["date"], day["closing"])
		}
	}
	if gaps == 0 {
		fmt.Println("No cash gaps in the window")
	}
}
