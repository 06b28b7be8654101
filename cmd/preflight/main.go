// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	table := strings.TrimSpace(os.Getenv("PAGES_TABLE"))
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))
	apiAddr := strings.TrimSpace(os.Getenv("API_ADDR"))
	allowed := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))

	if table == "" {
		fail("PAGES_TABLE is empty (the API refuses to start).")
	}
	ok("PAGES_TABLE=" + table)

	if backend == "" {
		backend = "dynamodb"
		warn("STORE_BACKEND empty — defaulting to dynamodb.")
	}
	switch backend {
	case "dynamodb":
		if os.Getenv("AWS_REGION") == "" && os.Getenv("AWS_DEFAULT_REGION") == "" && os.Getenv("DYNAMODB_ENDPOINT") == "" {
			warn("AWS_REGION empty — the SDK falls back to the shared config file.")
		}
		if ep := os.Getenv("DYNAMODB_ENDPOINT"); ep != "" {
			ok("DYNAMODB_ENDPOINT=" + ep + " (local DynamoDB)")
		}
	case "redis":
		if os.Getenv("REDIS_ADDR") == "" {
			warn("REDIS_ADDR empty — localhost:6379 will be used.")
		}
	case "postgres":
		if os.Getenv("DATABASE_URL") == "" {
			fail("DATABASE_URL is empty but STORE_BACKEND=postgres.")
		}
	case "memory":
		warn("STORE_BACKEND=memory — records are lost on restart.")
	default:
		fail("STORE_BACKEND=" + backend + " is not one of dynamodb, redis, postgres, memory.")
	}
	ok("STORE_BACKEND=" + backend)

	if v := os.Getenv("HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err != nil || ms <= 0 {
			warn("HTTP_TIMEOUT_MS is not a positive integer; 10000 will be used.")
		}
	}

	if apiAddr == "" {
		warn("API_ADDR is empty; default 127.0.0.1:8080 will be used.")
	} else {
		ok("API_ADDR=" + apiAddr)
	}

	if allowed == "" {
		warn("ALLOWED_ORIGINS empty — CORS allows every origin.")
	} else {
		// Normalize and sanity-check lists (no spaces around commas).
		if strings.Contains(allowed, " ") {
			warn("ALLOWED_ORIGINS contains spaces; use comma-separated with no spaces, e.g. https://a,https://b")
		}
		ok("ALLOWED_ORIGINS=" + allowed)
	}

	ok("preflight passed")
}
