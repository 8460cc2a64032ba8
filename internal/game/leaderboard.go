/*
Package game
File: leaderboard.go
Description:
    Ranks operators by mission performance. Mined mass is bucketed into the
    industrial use cases each element feeds, so the board shows not just who
    earned the most but what their haul is good for.
*/

package game

import "sort"

// LeaderboardEntry is one operator's aggregated standing.
type LeaderboardEntry struct {
	Operator    string           `json:"operator"`
	Company     string           `json:"company"`
	TotalProfit int64            `json:"total_profit"`
	TotalMassKg int64            `json:"total_mass_kg"`
	UseCaseMass map[string]int64 `json:"use_case_mass"`
	Score       int64            `json:"score"`
	Rank        int              `json:"rank"`
}

// massScoreWeight converts hauled kilograms into score points alongside raw
// profit.
const massScoreWeight = 1000

// BuildLeaderboard aggregates every operator's missions into a ranked board.
// Profit counts settled missions as recorded; mass comes from the daily
// summaries, so in-flight missions already show up.
func BuildLeaderboard(accounts []Account, missions []Mission, values ElementIndex) []LeaderboardEntry {
	byOperator := map[string]*LeaderboardEntry{}
	order := []string{}

	for _, acct := range accounts {
		entry := &LeaderboardEntry{
			Operator:    acct.Operator,
			Company:     acct.Company,
			UseCaseMass: map[string]int64{},
		}
		byOperator[acct.Operator] = entry
		order = append(order, acct.Operator)
	}

	for _, m := range missions {
		entry, ok := byOperator[m.Operator]
		if !ok {
			continue
		}
		if m.Status == MissionCompleted {
			entry.TotalProfit += m.Profit
		}
		for _, summary := range m.DailySummaries {
			for name, kg := range summary.ElementsMined {
				entry.TotalMassKg += kg
				for _, use := range values.Uses(name) {
					entry.UseCaseMass[use] += kg
				}
			}
		}
	}

	board := make([]LeaderboardEntry, 0, len(order))
	for _, op := range order {
		entry := byOperator[op]
		entry.Score = entry.TotalProfit + entry.TotalMassKg*massScoreWeight
		board = append(board, *entry)
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	for i := range board {
		board[i].Rank = i + 1
	}
	return board
}
