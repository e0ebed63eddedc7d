package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/logger"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		runAdd(log)
	case "text":
		runText(log)
	case "list":
		runList(log)
	case "stats":
		runStats(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("SpendWise CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  add       Add a transaction manually")
	fmt.Println("  text      Add a transaction from free text")
	fmt.Println("  list      List your transactions")
	fmt.Println("  stats     Show monthly/daily/category summaries")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nSet SPENDWISE_API (default http://localhost:8080) and SPENDWISE_TOKEN.")
	fmt.Println("Run 'cli <command> -h' for more information on a command.")
}

func apiClient() (*client, error) {
	base := os.Getenv("SPENDWISE_API")
	if base == "" {
		base = "http://localhost:8080"
	}
	token := os.Getenv("SPENDWISE_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("SPENDWISE_TOKEN is not set")
	}
	return &client{
		base:  base,
		token: token,
		http:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type client struct {
	base  string
	token string
	http  *http.Client
}

func (c *client) do(method, path string, body interface{}) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

func printResponse(log zerolog.Logger, data []byte, status int) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
	} else {
		fmt.Println(pretty.String())
	}
	if status >= 400 {
		log.Error().Int("status", status).Msg("Request failed")
		os.Exit(1)
	}
}

func runAdd(log zerolog.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	amount := fs.String("amount", "", "Transaction amount")
	txType := fs.String("type", "expense", "Transaction type: income or expense")
	date := fs.String("date", time.Now().Format("2006-01-02"), "Transaction date (YYYY-MM-DD)")
	category := fs.String("category", "", "Transaction category")
	description := fs.String("description", "", "Transaction description")
	fs.Parse(os.Args[2:])

	if *amount == "" || *category == "" {
		fmt.Fprintln(os.Stderr, "Error: -amount and -category are required")
		fs.Usage()
		os.Exit(1)
	}

	c, err := apiClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Client setup failed")
	}

	data, status, err := c.do(http.MethodPost, "/api/transactions", map[string]interface{}{
		"amount":      json.Number(*amount),
		"type":        *txType,
		"date":        *date,
		"category":    *category,
		"description": *description,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Request failed")
	}
	printResponse(log, data, status)
}

func runText(log zerolog.Logger) {
	fs := flag.NewFlagSet("text", flag.ExitOnError)
	text := fs.String("text", "", "Free-form transaction text, e.g. \"Beli Kopi 15 ribu\"")
	fs.Parse(os.Args[2:])

	if *text == "" {
		fmt.Fprintln(os.Stderr, "Error: -text is required")
		fs.Usage()
		os.Exit(1)
	}

	c, err := apiClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Client setup failed")
	}

	data, status, err := c.do(http.MethodPost, "/api/process-text", map[string]string{"text": *text})
	if err != nil {
		log.Fatal().Err(err).Msg("Request failed")
	}
	printResponse(log, data, status)
}

func runList(log zerolog.Logger) {
	c, err := apiClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Client setup failed")
	}

	data, status, err := c.do(http.MethodGet, "/api/transactions", nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Request failed")
	}
	printResponse(log, data, status)
}

func runStats(log zerolog.Logger) {
	c, err := apiClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Client setup failed")
	}

	data, status, err := c.do(http.MethodGet, "/api/stats", nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Request failed")
	}
	printResponse(log, data, status)
}
