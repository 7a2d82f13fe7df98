package service

import (
	"time"
)

// Team is one side of a game.
type Team struct {
	Abbr  string `json:"abbr"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GameDetails carries league-specific progress; unused fields are omitted.
type GameDetails struct {
	Quarter *string `json:"quarter,omitempty"`
	Clock   *string `json:"clock,omitempty"`
	Inning  *string `json:"inning,omitempty"`
	Outs    *string `json:"outs,omitempty"`
}

// Game is one scoreboard line.
type Game struct {
	ID        string      `json:"id"`
	StartTime time.Time   `json:"startTime"`
	Status    string      `json:"status"`
	Home      Team        `json:"home"`
	Away      Team        `json:"away"`
	Details   GameDetails `json:"details"`
}

// Scoreboard is the payload of GET /api/scores.
type Scoreboard struct {
	Date       string            `json:"date"`
	Integrated bool              `json:"integrated"`
	Leagues    map[string][]Game `json:"leagues"`
}

// ScoreService serves live scores. No provider is wired yet, so it returns
// a fixed example board and flags it as not integrated.
type ScoreService interface {
	Scores(date string) Scoreboard
}

type scoreService struct {
	now func() time.Time
}

// NewScoreService creates the placeholder score service.
func NewScoreService() ScoreService {
	return &scoreService{now: time.Now}
}

// Scores echoes date, defaulting to today's UTC date. The date does not
// select games.
func (s *scoreService) Scores(date string) Scoreboard {
	if date == "" {
		date = s.now().UTC().Format("2006-01-02")
	}
	return Scoreboard{
		Date:       date,
		Integrated: false,
		Leagues: map[string][]Game{
			"NFL": {
				{
					ID:        "1",
					StartTime: time.Date(2025, 1, 14, 20, 20, 0, 0, time.UTC),
					Status:    "live",
					Home:      Team{Abbr: "KC", Name: "Kansas City Chiefs", Score: 21},
					Away:      Team{Abbr: "BUF", Name: "Buffalo Bills", Score: 14},
					Details:   GameDetails{Quarter: str("Q3"), Clock: str("8:45")},
				},
				{
					ID:        "2",
					StartTime: time.Date(2025, 1, 14, 17, 0, 0, 0, time.UTC),
					Status:    "final",
					Home:      Team{Abbr: "DAL", Name: "Dallas Cowboys", Score: 28},
					Away:      Team{Abbr: "NYG", Name: "New York Giants", Score: 21},
					Details:   GameDetails{Quarter: str("Final"), Clock: str("")},
				},
			},
			"MLB": {
				{
					ID:        "3",
					StartTime: time.Date(2025, 1, 14, 19, 0, 0, 0, time.UTC),
					Status:    "final",
					Home:      Team{Abbr: "NYY", Name: "New York Yankees", Score: 7},
					Away:      Team{Abbr: "BOS", Name: "Boston Red Sox", Score: 4},
					Details:   GameDetails{Inning: str("9"), Outs: str("3")},
				},
			},
		},
	}
}

func str(s string) *string { return &s }
