package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Role:
		o.printRole(v)
	case Session:
		o.printSession(v)
	case SessionList:
		o.printSessionList(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Role response type (matches API)
type Role struct {
	ShardID          string `json:"shard_id"`
	IsAuthority      bool   `json:"is_authority"`
	AuthorityShardID string `json:"authority_shard_id,omitempty"`
}

// Session response type
type Session struct {
	ID               string `json:"id"`
	Owner            string `json:"owner"`
	PlayerName       string `json:"player_name,omitempty"`
	StartTime        uint64 `json:"start_time"`
	EndTime          uint64 `json:"end_time,omitempty"`
	CandiesCollected uint32 `json:"candies_collected"`
	IsRecord         bool   `json:"is_record"`
	State            string `json:"state"`
}

// SessionList response type
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// PlayerStats response type
type PlayerStats struct {
	ShardID           string  `json:"shard_id"`
	GamesPlayed       uint32  `json:"games_played"`
	HighestScore      uint32  `json:"highest_score"`
	TotalCandies      uint64  `json:"total_candies"`
	CurrentStreak     uint32  `json:"current_streak"`
	BestStreak        uint32  `json:"best_streak"`
	LastGameTimestamp uint64  `json:"last_game_timestamp"`
	AverageCandies    float64 `json:"average_candies"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	ShardID      string `json:"shard_id"`
	PlayerName   string `json:"player_name,omitempty"`
	HighestScore uint32 `json:"highest_score"`
	GamesPlayed  uint32 `json:"games_played"`
	TotalCandies uint64 `json:"total_candies"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRole(r Role) {
	roleStr := "player"
	if r.IsAuthority {
		roleStr = "authority"
	}
	fmt.Printf("Shard: %s\n", r.ShardID)
	fmt.Printf("Role: %s\n", roleStr)
	if r.AuthorityShardID != "" {
		fmt.Printf("Authority: %s\n", r.AuthorityShardID)
	} else {
		fmt.Println("Authority: (not configured)")
	}
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("State: %s\n", s.State)
	if s.PlayerName != "" {
		fmt.Printf("Player: %s\n", s.PlayerName)
	}
	fmt.Printf("Candies: %d\n", s.CandiesCollected)
	fmt.Printf("Started: %s\n", formatMicros(s.StartTime))
	if s.EndTime != 0 {
		fmt.Printf("Ended: %s\n", formatMicros(s.EndTime))
	}
	if s.State == "finished" && s.IsRecord {
		fmt.Println("New record!")
	}
}

func (o *Output) printSessionList(l SessionList) {
	fmt.Printf("Sessions (%d):\n", len(l.Sessions))
	for _, s := range l.Sessions {
		record := ""
		if s.IsRecord {
			record = " [record]"
		}
		fmt.Printf("  - %s: %d candies, %s%s\n", s.ID, s.CandiesCollected, s.State, record)
	}
}

func (o *Output) printPlayerStats(p PlayerStats) {
	fmt.Printf("Shard: %s\n", p.ShardID)
	fmt.Printf("Games Played: %d\n", p.GamesPlayed)
	fmt.Printf("Highest Score: %d\n", p.HighestScore)
	fmt.Printf("Total Candies: %d\n", p.TotalCandies)
	fmt.Printf("Average Candies: %.1f\n", p.AverageCandies)
	fmt.Printf("Current Streak: %d\n", p.CurrentStreak)
	fmt.Printf("Best Streak: %d\n", p.BestStreak)
	if p.LastGameTimestamp != 0 {
		fmt.Printf("Last Game: %s\n", formatMicros(p.LastGameTimestamp))
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Println("Leaderboard is empty")
		return
	}

	fmt.Printf("%-5s %-20s %-20s %8s %8s %10s\n", "Rank", "Shard", "Player", "Best", "Games", "Candies")
	for _, e := range l.Entries {
		name := e.PlayerName
		if name == "" {
			name = "(anonymous)"
		}
		fmt.Printf("%-5d %-20s %-20s %8d %8d %10d\n",
			e.Rank, e.ShardID, name, e.HighestScore, e.GamesPlayed, e.TotalCandies)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

func formatMicros(ts uint64) string {
	return time.UnixMicro(int64(ts)).UTC().Format(time.RFC3339)
}
