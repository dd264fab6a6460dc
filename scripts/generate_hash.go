//go:build ignore

// generate_hash.go — generates the bcrypt hash for the admin password.
// Usage: go run scripts/generate_hash.go <password>
//
// Put the output in .env as ADMIN_PASSWORD_HASH.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: go run scripts/generate_hash.go <password>")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("hash generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Password hash (put in .env as ADMIN_PASSWORD_HASH):")
	fmt.Println(string(hash))
}
