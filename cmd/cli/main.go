package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "demobank-cli",
		Short: "Demobank CLI tool",
		Long:  `A command line interface for interacting with the Demobank demo ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Demobank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the current user's accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	}

	var (
		from        string
		to          string
		amount      string
		description string
	)
	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Emit a transaction between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			emitTransaction(from, to, amount, description)
		},
	}
	transferCmd.Flags().StringVar(&from, "from", "", "Emitter account id")
	transferCmd.Flags().StringVar(&to, "to", "", "Receiver account id, IBAN or external token")
	transferCmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	transferCmd.Flags().StringVar(&description, "description", "", "Transaction description")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all demo data",
		Run: func(cmd *cobra.Command, args []string) {
			resetDemo()
		},
	}

	rootCmd.AddCommand(accountsCmd, transferCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listAccounts() {
	body := getJSON("/api/v1/accounts")

	var accounts []map[string]any
	if err := json.Unmarshal(body, &accounts); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, acc := range accounts {
		fmt.Printf("%-28s %-14s %10v %s  %s\n",
			acc["id"], acc["type"], acc["balance"], acc["currency"], acc["accountNumber"])
	}
}

func emitTransaction(from, to, amount, description string) {
	payload := map[string]any{
		"emitterAccountId":  from,
		"receiverAccountId": to,
		"amount":            json.RawMessage(amount),
		"description":       description,
	}

	body, status := postJSON("/api/v1/transactions/emit", payload)
	if status != http.StatusCreated {
		fmt.Printf("Transfer FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var tx map[string]any
	if err := json.Unmarshal(body, &tx); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Transfer completed\nID: %s\nAmount: %v\n", tx["id"], tx["amount"])
}

func resetDemo() {
	body, status := postJSON("/api/v1/demo/reset", nil)
	if status != http.StatusOK {
		fmt.Printf("Reset FAILED (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}
	fmt.Println("Demo data reset")
}

func getJSON(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
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

func postJSON(path string, payload any) ([]byte, int) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(data)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", reqBody)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}
