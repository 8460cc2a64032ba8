/*
Package api
File: handlers.go
Description:
    HTTP handlers for the REST API. These functions validate incoming JSON,
    read the records the engine needs out of the store, invoke the engine,
    and persist/broadcast what comes back.

    Key responsibilities:
    - Input validation (is the JSON valid? does the entity exist?)
    - Ownership scoping (every route is bound to the X-Operator header)
    - Atomic persistence (one advanced day commits as one transaction)
*/

package api

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/everforgeworks/deepcore-mining/internal/config"
	"github.com/everforgeworks/deepcore-mining/internal/game"
	"github.com/everforgeworks/deepcore-mining/internal/store"
)

// fuzzyNameDistance is how many edits a catalog search tolerates before a
// name is treated as missing rather than mistyped.
const fuzzyNameDistance = 3

// Server wires the engine, the store and the hub behind the REST surface.
type Server struct {
	store *store.Store
	hub   *Hub
	rng   *rand.Rand

	// Universe-derived fields, swapped wholesale on SIGHUP reload.
	mu       sync.RWMutex
	catalog  *game.Catalog
	values   game.ElementIndex
	balance  game.GameBalance
	defaults game.ShipDefaults
}

// NewServer builds the handler set from a loaded universe.
func NewServer(st *store.Store, hub *Hub, uni *config.Universe) *Server {
	s := &Server{
		store: st,
		hub:   hub,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.ApplyUniverse(uni)
	return s
}

// ApplyUniverse swaps in a freshly loaded configuration.
func (s *Server) ApplyUniverse(uni *config.Universe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = game.NewCatalog(uni.Asteroids)
	s.values = game.NewElementIndex(uni.Elements)
	s.balance = uni.Balance
	s.defaults = uni.ShipDefaults
}

func (s *Server) snapshot() (*game.Catalog, game.ElementIndex, game.GameBalance, game.ShipDefaults) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.values, s.balance, s.defaults
}

// Routes registers every endpoint on a fresh router.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	// Information endpoints
	r.HandleFunc("/api/asteroids", s.handleListAsteroids).Methods(http.MethodGet)
	r.HandleFunc("/api/asteroids/search", s.handleSearchAsteroids).Methods(http.MethodGet)
	r.HandleFunc("/api/missions", s.handleListMissions).Methods(http.MethodGet)
	r.HandleFunc("/api/missions/{id}", s.handleGetMission).Methods(http.MethodGet)
	r.HandleFunc("/api/ships/{id}", s.handleGetShip).Methods(http.MethodGet)
	r.HandleFunc("/api/account", s.handleGetAccount).Methods(http.MethodGet)
	r.HandleFunc("/api/leaderboard", s.handleLeaderboard).Methods(http.MethodGet)

	// Action endpoints
	r.HandleFunc("/api/missions/start", s.handleStartMission).Methods(http.MethodPost)
	r.HandleFunc("/api/missions/advance", s.handleAdvanceMissions).Methods(http.MethodPost)
	r.HandleFunc("/api/missions/complete", s.handleCompleteMissions).Methods(http.MethodPost)

	// Real-time endpoint
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(s.hub, w, r)
	})

	return r
}

// Request / response DTOs.

type StartMissionRequest struct {
	AsteroidFullName string `json:"asteroid_full_name"`
	ShipName         string `json:"ship_name"`
	TravelDays       int    `json:"travel_days"`
}

type StartMissionResponse struct {
	Mission game.Mission         `json:"mission"`
	Funding game.FundingDecision `json:"funding"`
}

type AdvanceResponse struct {
	MissionID string             `json:"mission_id"`
	Result    game.AdvanceResult `json:"result"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// operator extracts the caller's identity. Authentication is out of scope;
// ownership scoping is not.
func operator(r *http.Request) string {
	return r.Header.Get("X-Operator")
}

func (s *Server) getOrCreateAccount(r *http.Request, op string) (game.Account, error) {
	acct, err := s.store.GetAccount(r.Context(), op)
	if errors.Is(err, store.ErrNotFound) {
		company := r.Header.Get("X-Company")
		if company == "" {
			company = "Unnamed Company"
		}
		return game.Account{Operator: op, Company: company}, nil
	}
	return acct, err
}

// handleStartMission creates and funds a new mission.
// The ship is created on first use; an existing ship must be docked.
func (s *Server) handleStartMission(w http.ResponseWriter, r *http.Request) {
	op := operator(r)
	if op == "" {
		writeError(w, http.StatusBadRequest, "X-Operator header required")
		return
	}

	var req StartMissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ShipName == "" || req.AsteroidFullName == "" {
		writeError(w, http.StatusBadRequest, "ship_name and asteroid_full_name are required")
		return
	}

	catalog, _, balance, defaults := s.snapshot()
	ctx := r.Context()

	target, err := catalog.Search(req.AsteroidFullName, fuzzyNameDistance)
	if errors.Is(err, game.ErrMissingTarget) {
		writeError(w, http.StatusNotFound, "no asteroid found with name "+req.AsteroidFullName)
		return
	}

	travelDays := req.TravelDays
	if travelDays <= 0 {
		travelDays = target.MoidDays
	}

	acct, err := s.getOrCreateAccount(r, op)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "account lookup failed")
		return
	}

	ship, err := s.store.GetShipByName(ctx, op, req.ShipName)
	switch {
	case errors.Is(err, store.ErrNotFound):
		ship = game.Ship{
			ID:          game.NewID("SHP"),
			Operator:    op,
			Name:        req.ShipName,
			Shield:      defaults.Shield,
			Hull:        defaults.Hull,
			MiningPower: defaults.MiningPower,
			CapacityKg:  defaults.CapacityKg,
			Cargo:       []game.ElementStock{},
			Active:      true,
			Created:     time.Now().UTC(),
		}
		log.Printf("MISSION: Operator %s commissioned new ship %s (%s)", op, ship.Name, ship.ID)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "ship lookup failed")
		return
	case !ship.Active || ship.Location != 0:
		writeError(w, http.StatusConflict, "ship is currently unavailable (not docked or inactive)")
		return
	}

	rate := game.DailyYieldRate(ship.MiningPower, balance)
	proj := game.Estimate(travelDays, ship.MiningPower, ship.CapacityKg, rate, balance)

	mission, funding := game.PlanMission(&acct, &ship, target, travelDays, proj, balance, time.Now().UTC())

	if err := s.store.PutAccount(ctx, acct); err != nil {
		writeError(w, http.StatusInternalServerError, "persist account failed")
		return
	}
	if err := s.store.PutShip(ctx, ship); err != nil {
		writeError(w, http.StatusInternalServerError, "persist ship failed")
		return
	}
	if err := s.store.PutMission(ctx, mission); err != nil {
		writeError(w, http.StatusInternalServerError, "persist mission failed")
		return
	}

	if funding.Loaned {
		log.Printf("MISSION: Operator %s funded %s with a %.2fx loan of %d", op, mission.ID, funding.Multiplier, funding.LoanAmount)
	}
	s.hub.Publish("mission_started", op, mission)
	writeJSON(w, http.StatusCreated, StartMissionResponse{Mission: mission, Funding: funding})
}

// advanceOne runs a single day for one mission and commits the outcome
// atomically. It returns the advancement result for the response payload.
func (s *Server) advanceOne(r *http.Request, m game.Mission, acct *game.Account) (game.AdvanceResult, error) {
	catalog, values, balance, _ := s.snapshot()
	ctx := r.Context()

	ship, err := s.store.GetShip(ctx, m.ShipID)
	if err != nil {
		return game.AdvanceResult{}, err
	}
	template, err := catalog.FindByID(m.AsteroidID)
	if err != nil {
		return game.AdvanceResult{}, err
	}
	ledger, err := s.store.GetOrCloneLedger(ctx, m.Operator, template)
	if err != nil {
		return game.AdvanceResult{}, err
	}

	result, err := game.AdvanceDay(&m, &ship, &ledger, m.NextDay(), acct.CurrentLoan, values, balance, time.Now().UTC())
	if err != nil {
		return game.AdvanceResult{}, err
	}
	if result.Completed {
		game.ApplySettlement(acct, *result.Settlement)
	}

	if err := s.store.SaveAdvancement(ctx, m, ship, ledger, *acct); err != nil {
		return game.AdvanceResult{}, err
	}

	event := "mission_day"
	if result.Completed {
		event = "mission_complete"
		log.Printf("MISSION: %s completed (%s), profit %d, repaid %d", m.ID, result.Reason, result.Settlement.Profit, result.Settlement.LoanRepaid)
	}
	s.hub.Publish(event, m.Operator, AdvanceResponse{MissionID: m.ID, Result: result})
	return result, nil
}

// handleAdvanceMissions advances every active mission of the operator by
// one day. Each mission tracks its own next day, so retried requests
// resolve as clean no-ops at the engine level.
func (s *Server) handleAdvanceMissions(w http.ResponseWriter, r *http.Request) {
	op := operator(r)
	if op == "" {
		writeError(w, http.StatusBadRequest, "X-Operator header required")
		return
	}

	active, err := s.store.ListActiveMissions(r.Context(), op)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "mission lookup failed")
		return
	}
	if len(active) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "no active missions to advance"})
		return
	}

	acct, err := s.getOrCreateAccount(r, op)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "account lookup failed")
		return
	}

	results := []AdvanceResponse{}
	for _, m := range active {
		result, err := s.advanceOne(r, m, &acct)
		if err != nil {
			if errors.Is(err, game.ErrAlreadyCompleted) {
				continue
			}
			log.Printf("MISSION: advance %s failed: %v", m.ID, err)
			writeError(w, http.StatusInternalServerError, "advance failed for mission "+m.ID)
			return
		}
		results = append(results, AdvanceResponse{MissionID: m.ID, Result: result})
	}
	writeJSON(w, http.StatusOK, results)
}

// handleCompleteMissions runs every active mission of the operator to its
// terminal day, persisting and broadcasting each day as it lands.
func (s *Server) handleCompleteMissions(w http.ResponseWriter, r *http.Request) {
	op := operator(r)
	if op == "" {
		writeError(w, http.StatusBadRequest, "X-Operator header required")
		return
	}

	active, err := s.store.ListActiveMissions(r.Context(), op)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "mission lookup failed")
		return
	}
	if len(active) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "no active missions to complete"})
		return
	}

	acct, err := s.getOrCreateAccount(r, op)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "account lookup failed")
		return
	}

	completed := map[string]*game.SettlementDelta{}
	for _, m := range active {
		for {
			result, err := s.advanceOne(r, m, &acct)
			if err != nil {
				if errors.Is(err, game.ErrAlreadyCompleted) {
					break
				}
				log.Printf("MISSION: complete %s failed: %v", m.ID, err)
				writeError(w, http.StatusInternalServerError, "completion failed for mission "+m.ID)
				return
			}
			if result.Completed {
				completed[m.ID] = result.Settlement
				break
			}
			// Reload the persisted mission so the next day starts from the
			// committed state, mirroring one-day-at-a-time operation.
			m, err = s.store.GetMission(r.Context(), m.ID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "mission reload failed")
				return
			}
		}
	}
	writeJSON(w, http.StatusOK, completed)
}

// handleListAsteroids samples candidate targets reachable in the requested
// travel time.
func (s *Server) handleListAsteroids(w http.ResponseWriter, r *http.Request) {
	catalog, _, _, _ := s.snapshot()

	q := r.URL.Query().Get("travel_days")
	if q == "" {
		writeJSON(w, http.StatusOK, catalog.All())
		return
	}
	travelDays, err := strconv.Atoi(q)
	if err != nil || travelDays <= 0 {
		writeError(w, http.StatusBadRequest, "travel_days must be a positive integer")
		return
	}
	writeJSON(w, http.StatusOK, catalog.SampleByTravelDays(travelDays, 3, s.rng))
}

// handleSearchAsteroids resolves a (possibly mistyped) asteroid name.
func (s *Server) handleSearchAsteroids(w http.ResponseWriter, r *http.Request) {
	catalog, _, _, _ := s.snapshot()

	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter required")
		return
	}
	a, err := catalog.Search(name, fuzzyNameDistance)
	if errors.Is(err, game.ErrMissingTarget) {
		writeError(w, http.StatusNotFound, "no asteroid found with name "+name)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	op := operator(r)
	if op == "" {
		writeError(w, http.StatusBadRequest, "X-Operator header required")
		return
	}
	missions, err := s.store.ListMissions(r.Context(), op)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "mission lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, missions)
}

func (s *Server) handleGetMission(w http.ResponseWriter, r *http.Request) {
	op := operator(r)
	m, err := s.store.GetMission(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, store.ErrNotFound) || (err == nil && m.Operator != op) {
		writeError(w, http.StatusNotFound, "mission not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "mission lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleGetShip(w http.ResponseWriter, r *http.Request) {
	op := operator(r)
	ship, err := s.store.GetShip(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, store.ErrNotFound) || (err == nil && ship.Operator != op) {
		writeError(w, http.StatusNotFound, "ship not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ship lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, ship)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	op := operator(r)
	if op == "" {
		writeError(w, http.StatusBadRequest, "X-Operator header required")
		return
	}
	acct, err := s.getOrCreateAccount(r, op)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "account lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

// handleLeaderboard ranks every operator by settled profit and hauled mass.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	_, values, _, _ := s.snapshot()

	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "account listing failed")
		return
	}
	missions, err := s.store.ListAllMissions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "mission listing failed")
		return
	}
	writeJSON(w, http.StatusOK, game.BuildLeaderboard(accounts, missions, values))
}
