//go:build ignore

// This script generates the share token secret and admin API keys.
// Run with: go run scripts/generate_keys.go [-keys 2]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func main() {
	count := flag.Int("keys", 1, "number of admin API keys to generate")
	flag.Parse()
	if *count < 1 {
		*count = 1
	}

	fmt.Println("=== Quote Service Key Generator ===")
	fmt.Println()

	// 32 bytes = 256 bits, the HS256 key size
	shareSecret, err := generateSecureKey(32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating share token secret: %v\n", err)
		os.Exit(1)
	}

	apiKeys := make([]string, 0, *count)
	for i := 0; i < *count; i++ {
		key, err := generateSecureKey(24)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating API key: %v\n", err)
			os.Exit(1)
		}
		apiKeys = append(apiKeys, key)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# Signs the tokens issued when a protected share is unlocked")
	fmt.Printf("SHARE_TOKEN_SECRET=%s\n", shareSecret)
	fmt.Println()
	fmt.Println("# Admin API keys (X-API-Key header on /api/admin)")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("API_KEYS=%s\n", strings.Join(apiKeys, ","))
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Rotating SHARE_TOKEN_SECRET invalidates every unlocked share token")
	fmt.Println("- Store production keys in a secure secret manager")
}
