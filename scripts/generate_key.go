package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/your-org/easyway-storefront/internal/infrastructure/storage"
	"golang.org/x/crypto/chacha20poly1305"
)

// Prints a fresh STORAGE_ENCRYPTION_KEY, or checks an existing one when given.
func main() {
	var encoded string
	if len(os.Args) > 1 {
		encoded = os.Args[1]
	} else {
		key := make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(key); err != nil {
			log.Fatal("Error generating key:", err)
		}
		encoded = hex.EncodeToString(key)
	}

	key, err := storage.ParseKey(encoded)
	if err != nil {
		log.Fatal("Invalid key:", err)
	}

	sealed, err := storage.NewSealed(storage.NewMemory(), key)
	if err != nil {
		log.Fatal("Error creating cipher:", err)
	}

	ctx := context.Background()
	if err := sealed.Set(ctx, "probe", []byte("easyway")); err != nil {
		log.Fatal("Seal failed:", err)
	}
	if got, err := sealed.Get(ctx, "probe"); err != nil || string(got) != "easyway" {
		log.Fatal("Round trip failed:", err)
	}

	fmt.Printf("STORAGE_ENCRYPTION_KEY=%s\n", encoded)
	fmt.Println("Key verified with a seal/open round trip")
}
