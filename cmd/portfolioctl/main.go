// Command portfolioctl runs operator tasks against the portfolio database:
// schema migrations and role management.
//
//	portfolioctl migrate up
//	portfolioctl migrate down --steps 1
//	portfolioctl promote ada@example.dev
//	portfolioctl role grace@example.dev admin
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
