// Command vapidkeys prints a fresh VAPID key pair for Web Push.
package main

import (
	"fmt"
	"log"

	"medreminder/internal/infrastructure/webpush"
)

func main() {
	publicKey, privateKey, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		log.Fatalf("vapidkeys: %v", err)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Printf("VAPID_PUBLIC_KEY=%s\n", publicKey)
	fmt.Printf("VAPID_PRIVATE_KEY=%s\n", privateKey)
}
