// Command apikeygen provisions a client API key. It prints the key to hand
// to the client and the bcrypt hash to append to EKYC_API_KEY_HASHES.
package main

import (
	"fmt"
	"os"

	"github.com/HasbiyallahuJafaru/E-KYC/pkg/secrets"
)

func main() {
	key, err := secrets.GenerateAPIKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate api key:", err)
		os.Exit(1)
	}
	hash, err := secrets.Hash(key)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash api key:", err)
		os.Exit(1)
	}
	fmt.Printf("api key: %s\nhash:    %s\n", key, hash)
}
