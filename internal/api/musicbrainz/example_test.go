package musicbrainz

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Looking up an artist and walking its aliases.
func ExampleClient_LookupArtist() {
	client := NewClient()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	artist, err := client.LookupArtist(ctx, "52ea7ff8-0df6-4c57-b1bf-4c2ca4fd1ad6")
	if err != nil {
		log.Printf("Artist lookup failed: %v", err)
		return
	}

	fmt.Printf("Artist: %s\n", artist.Name)
	for _, alias := range artist.Aliases {
		fmt.Printf("  alias %q (locale %q)\n", alias.Name, alias.Locale)
	}
}

// Pointing the client at a mirror with a shorter delay between requests.
func ExampleClient_UpdateConfig() {
	client := NewClient()

	config := client.GetConfig()
	config.Server = "http://musicbrainz.local:5000/"
	config.RateLimit = 200 * time.Millisecond
	client.UpdateConfig(config)

	fmt.Println(client.GetConfig().Server)
	// Output: http://musicbrainz.local:5000
}
