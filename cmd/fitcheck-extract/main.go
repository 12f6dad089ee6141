// Command fitcheck-extract runs the extraction pipeline against product URLs
// given on the command line and prints each result as JSON. Useful for
// checking selector drift without standing up the full API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Se9uencer/FitCheck/scraper"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <product-url> [<product-url>...]\n", os.Args[0])
		os.Exit(2)
	}

	log := logrus.New()
	amazon := scraper.New(log, scraper.DefaultOptions())

	for _, url := range os.Args[1:] {
		fmt.Printf("Extracting: %s\n", url)
		result := amazon.ExtractProduct(context.Background(), url)

		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.WithError(err).Error("Failed to encode result")
			continue
		}
		fmt.Println(string(b))
		fmt.Println("--------------------------------------------------")
	}
}
