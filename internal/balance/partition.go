package balance

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"teambalancer/internal/model"
)

const (
	// MinPlayers is the smallest roster that can be split in two
	MinPlayers = 2

	// Teams whose scores differ by at most tieThreshold get a chance of
	// one cosmetic swap between unscored players.
	tieThreshold = 1.0
	swapChance   = 0.3
)

// Config for the partitioner
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Partitioner splits present players into two teams. It is not safe for
// concurrent use; create one per request or guard it.
type Partitioner struct {
	random *rand.Rand
}

// NewPartitioner creates a partitioner. A zero seed uses the clock.
func NewPartitioner(cfg *Config) *Partitioner {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Partitioner{
		random: rand.New(rand.NewSource(seed)),
	}
}

// PartitionBalanced assigns scored players greedily, highest average first,
// to the team with the lower cumulative score, then spreads unscored players
// at random over the free slots.
func (p *Partitioner) PartitionBalanced(present []model.PlayerStat) (model.Team, model.Team, error) {
	if len(present) < MinPlayers {
		return model.Team{}, model.Team{}, ErrInsufficientPlayers
	}

	var scored, unscored []model.PlayerStat
	for _, ps := range present {
		if ps.AveragePoints > 0 {
			scored = append(scored, ps)
		} else {
			unscored = append(unscored, ps)
		}
	}

	teamSize := teamSizeFor(len(present))
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].AveragePoints > scored[j].AveragePoints
	})

	white := make([]model.PlayerStat, 0, teamSize)
	black := make([]model.PlayerStat, 0, teamSize)
	var whitePoints, blackPoints float64

	for _, ps := range scored {
		if pickWhite(len(white), len(black), whitePoints, blackPoints, teamSize) {
			white = append(white, ps)
			whitePoints += ps.AveragePoints
		} else {
			black = append(black, ps)
			blackPoints += ps.AveragePoints
		}
	}

	p.random.Shuffle(len(unscored), func(i, j int) {
		unscored[i], unscored[j] = unscored[j], unscored[i]
	})
	for _, ps := range unscored {
		switch {
		case len(white) < teamSize:
			white = append(white, ps)
		case len(black) < teamSize:
			black = append(black, ps)
		case p.random.Intn(2) == 0:
			white = append(white, ps)
		default:
			black = append(black, ps)
		}
	}

	if math.Abs(whitePoints-blackPoints) <= tieThreshold && len(unscored) > 0 {
		p.swapUnscored(white, black)
	}

	return newTeam(model.WhiteTeamName, white), newTeam(model.BlackTeamName, black), nil
}

// PartitionRandom shuffles the present players and splits them at the
// midpoint, ignoring scores.
func (p *Partitioner) PartitionRandom(present []model.PlayerStat) (model.Team, model.Team, error) {
	if len(present) < MinPlayers {
		return model.Team{}, model.Team{}, ErrInsufficientPlayers
	}

	shuffled := make([]model.PlayerStat, len(present))
	copy(shuffled, present)
	p.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	half := teamSizeFor(len(shuffled))
	white := append([]model.PlayerStat(nil), shuffled[:half]...)
	black := append([]model.PlayerStat(nil), shuffled[half:]...)

	return newTeam(model.WhiteTeamName, white), newTeam(model.BlackTeamName, black), nil
}

// pickWhite decides where the next scored player goes. When both teams are
// already full the lower-scored team takes the player, white on ties.
func pickWhite(whiteLen, blackLen int, whitePoints, blackPoints float64, teamSize int) bool {
	whiteOpen := whiteLen < teamSize
	blackOpen := blackLen < teamSize

	switch {
	case whiteOpen && (whitePoints <= blackPoints || !blackOpen):
		return true
	case blackOpen:
		return false
	default:
		return whitePoints <= blackPoints
	}
}

// swapUnscored exchanges one random unscored player of each team, with
// probability swapChance. Scores are unaffected.
func (p *Partitioner) swapUnscored(white, black []model.PlayerStat) {
	whiteIdx := unscoredIndexes(white)
	blackIdx := unscoredIndexes(black)
	if len(whiteIdx) == 0 || len(blackIdx) == 0 {
		return
	}
	if p.random.Float64() >= swapChance {
		return
	}

	i := whiteIdx[p.random.Intn(len(whiteIdx))]
	j := blackIdx[p.random.Intn(len(blackIdx))]
	white[i], black[j] = black[j], white[i]
}

func unscoredIndexes(players []model.PlayerStat) []int {
	var idx []int
	for i, ps := range players {
		if ps.AveragePoints == 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func teamSizeFor(n int) int {
	return (n + 1) / 2
}

func newTeam(name string, players []model.PlayerStat) model.Team {
	var sum float64
	for _, ps := range players {
		sum += ps.AveragePoints
	}
	return model.Team{
		Name:          name,
		Players:       players,
		AveragePoints: Round2(sum),
	}
}
