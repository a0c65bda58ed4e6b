package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--verify" {
			runVerify()
			return
		}
	}

	printBanner()

	fmt.Println("Welcome to Solace Setup!")
	fmt.Println("Solace is a mental-wellness backend: mood journaling, AI chat,")
	fmt.Println("breathing exercises, and weekly wellness plans.")
	fmt.Println()

	engine := prompt("Which storage engine would you like?", []string{
		"SQLite (recommended -- local, zero dependencies)",
		"Postgres (direct connection, enables related-entry search)",
		"Supabase (hosted, via the PostgREST API)",
	})

	env := map[string]string{}
	switch engine {
	case "1":
		env["SOLACE_STORAGE_ENGINE"] = "sqlite"
		env["SOLACE_DATA_PATH"] = promptText("Data directory", "./data")
	case "2":
		env["SOLACE_STORAGE_ENGINE"] = "postgres"
		env["SOLACE_POSTGRES_DSN"] = promptText("Postgres DSN", "postgres://localhost/solace?sslmode=disable")
	case "3":
		env["SOLACE_STORAGE_ENGINE"] = "supabase"
		env["SOLACE_SUPABASE_URL"] = promptText("Supabase project URL", "")
		env["SOLACE_SUPABASE_KEY"] = promptText("Supabase service-role key", "")
	}

	key := promptText("Gemini API key (leave empty to run without AI)", "")
	if key != "" {
		env["SOLACE_GEMINI_API_KEY"] = key
	} else {
		fmt.Println("No API key: classification and chat will use built-in fallbacks.")
	}

	mode := prompt("Security mode?", []string{
		"Development (single local user, no token)",
		"Production (bearer token required)",
	})
	if mode == "2" {
		env["SOLACE_SECURITY_MODE"] = "production"
		env["SOLACE_API_TOKEN"] = promptText("API token", "")
	}

	if err := writeEnvFile(".env", env); err != nil {
		fmt.Printf("Failed to write .env: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Wrote .env. Start the backend with:")
	fmt.Println("  set -a; . ./.env; set +a; solace-web")
}

func printBanner() {
	fmt.Print(`
 ____        _
/ ___|  ___ | | __ _  ___ ___
\___ \ / _ \| |/ _` + "`" + ` |/ __/ _ \
 ___) | (_) | | (_| | (_|  __/
|____/ \___/|_|\__,_|\___\___|

A calmer backend for heavier days
`)
}

// runVerify performs a health check against a running backend.
func runVerify() {
	fmt.Println("Solace Setup Verification")
	fmt.Println("=========================")

	host := os.Getenv("SOLACE_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("SOLACE_PORT")
	if port == "" {
		port = "7272"
	}
	url := fmt.Sprintf("http://%s:%s/api/health", host, port)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("FAIL: backend not reachable at %s: %v\n", url, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Status != "healthy" {
		fmt.Printf("FAIL: unexpected health response (status %d)\n", resp.StatusCode)
		os.Exit(1)
	}
	fmt.Printf("OK: backend healthy at %s\n", url)
}

func prompt(question string, options []string) string {
	fmt.Println(question)
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	fmt.Print("> ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "1"
	}
	return answer
}

func promptText(question, defaultValue string) string {
	if defaultValue != "" {
		fmt.Printf("%s [%s]: ", question, defaultValue)
	} else {
		fmt.Printf("%s: ", question)
	}
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return defaultValue
	}
	return answer
}

func writeEnvFile(path string, env map[string]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	var b strings.Builder
	b.WriteString("# Generated by solace-setup\n")
	for _, key := range sortedKeys(env) {
		b.WriteString(key + "=" + env[key] + "\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o600)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
