package main

import (
	"net/http"
	"os"
	"time"

	"github.com/ericogr/chimera-battle/internal/constants"
)

func main() {
	addr := os.Getenv("CHIMERA_HEALTH_URL")
	if addr == "" {
		addr = "http://127.0.0.1:8080" + constants.RouteAPIPrefix + constants.RouteHealth
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(addr)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
