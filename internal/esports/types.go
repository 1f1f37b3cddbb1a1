package esports

// Role identifies a player's function on the roster.
// External data is loosely typed; values outside the known set are
// kept verbatim so callers can decide whether to drop the record.
type Role string

// Known roster roles.
const (
	RoleCoach      Role = "coach"
	RoleStarter    Role = "starter"
	RoleSubstitute Role = "substitute"
	RoleBenched    Role = "benched"
)

// Valid reports whether the role belongs to the known set.
func (r Role) Valid() bool {
	switch r {
	case RoleCoach, RoleStarter, RoleSubstitute, RoleBenched:
		return true
	}
	return false
}

// Player is one roster entry as returned by the statistics source.
// Either field may be empty; filtering is the caller's responsibility.
type Player struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Match is a scheduled fixture for the team.
type Match struct {
	ID          int64  `json:"id"`
	ScheduledAt int64  `json:"scheduled_at"` // epoch milliseconds
	Event       string `json:"event"`
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
}

// Result is one past match. Scores are optional: some results carry
// only a textual outcome (forfeit, walkover) instead of numbers.
type Result struct {
	ID         int64  `json:"id"`
	PlayedAt   int64  `json:"played_at"` // epoch milliseconds
	Team1      string `json:"team1"`
	Team2      string `json:"team2"`
	Team1Score *int   `json:"team1_score,omitempty"`
	Team2Score *int   `json:"team2_score,omitempty"`
	Outcome    string `json:"outcome,omitempty"`
}
