package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"apexleague/paddock/internal/db"
	"apexleague/paddock/internal/db/repositories"
)

// Generates an ingestion API key, stores its digest and prints the raw
// value once. The raw key is never recoverable afterwards.
func main() {
	name := flag.String("name", "", "client name the key belongs to (e.g. telemetry-collector)")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: keygen -name <client-name>")
		os.Exit(1)
	}

	if err := db.InitPostgres(); err != nil {
		log.Fatalf("connect postgres: %v", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("generate key: %v", err)
	}
	rawKey := hex.EncodeToString(raw)

	repo := repositories.NewKeysRepo(db.DB)
	id, err := repo.Insert(context.Background(), *name, rawKey)
	if err != nil {
		log.Fatalf("insert api key: %v", err)
	}

	fmt.Println("Key ID: ", id)
	fmt.Println("API Key:", rawKey)
	fmt.Println("Store the key now; only its hash is persisted.")
}
