/*
Package main
File: main.go
Description: Server entry point. Loads the universe configuration, opens the
store, starts the real-time WebSocket hub, and runs the background pulse
that keeps connected dashboards in sync with the operation.
*/

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// SQL drivers: the store speaks database/sql, the drivers register here.
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/everforgeworks/deepcore-mining/internal/api"
	"github.com/everforgeworks/deepcore-mining/internal/config"
	"github.com/everforgeworks/deepcore-mining/internal/game"
	"github.com/everforgeworks/deepcore-mining/internal/store"
)

func main() {
	configPath := "universe.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// 1. Load the static universe configuration from YAML
	uni, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config Fail: %v", err)
	}

	// 2. Open the store and make sure the schema exists
	st, err := store.Open(uni.Store.Driver, uni.Store.DSN)
	if err != nil {
		log.Fatalf("Store Fail: %v", err)
	}
	defer st.Close()
	if err := st.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Schema Fail: %v", err)
	}

	// 3. Initialize and start the real-time WebSocket hub
	hub := api.NewHub()
	go hub.Run()

	server := api.NewServer(st, hub, uni)

	// 4. THE OPS PULSE
	// Every 60 seconds, tell connected dashboards how many missions are in
	// flight so idle screens stay honest without polling.
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		for range ticker.C {
			missions, err := st.ListAllMissions(context.Background())
			if err != nil {
				log.Printf("Pulse Error: %v", err)
				continue
			}
			active := 0
			for _, m := range missions {
				if m.Status != game.MissionCompleted {
					active++
				}
			}
			hub.Publish("ops_pulse", "system", map[string]int{
				"missions_total":  len(missions),
				"missions_active": active,
			})
		}
	}()

	// 5. Hot-reload logic: listen for SIGHUP to refresh the universe
	// (balance tuning, catalog additions) without a restart.
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGHUP)
		for {
			<-sigChan
			log.Println("SIGNAL: Reloading Universe...")
			fresh, err := config.Load(configPath)
			if err != nil {
				log.Printf("Reload Fail (keeping current universe): %v", err)
				continue
			}
			server.ApplyUniverse(fresh)
		}
	}()

	// 6. Start the server
	log.Printf("DEEPCORE Mining Server live on %s", uni.Server.Addr)
	log.Printf("Real-time Hub: Online")

	if err := http.ListenAndServe(uni.Server.Addr, corsMiddleware(server.Routes())); err != nil {
		log.Fatal(err)
	}
}

// corsMiddleware lets browser dashboards talk to the server across domains.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Operator, X-Company")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
