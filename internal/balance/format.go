package balance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"teambalancer/internal/model"
)

const exportTitle = "🏆 EQUIPOS GENERADOS"

// FormatTeams renders a pair of teams as the plain-text roster used for
// clipboard export.
func FormatTeams(white, black model.Team) string {
	return formatTeams(exportTitle, white, black)
}

// FormatTeamsDated is FormatTeams with the generation date in the header.
func FormatTeamsDated(date time.Time, white, black model.Team) string {
	return formatTeams(exportTitle+" - "+date.Format("02/01/2006"), white, black)
}

func formatTeams(title string, white, black model.Team) string {
	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n\n")
	writeTeam(&b, "⚪", white)
	b.WriteString("\n")
	writeTeam(&b, "⚫", black)
	b.WriteString("\n")

	diff := Round2(math.Abs(white.AveragePoints - black.AveragePoints))
	fmt.Fprintf(&b, "📊 Diferencia: %s puntos", formatPoints(diff))

	return b.String()
}

func writeTeam(b *strings.Builder, marker string, team model.Team) {
	fmt.Fprintf(b, "%s %s (%s pts)\n", marker, team.Name, formatPoints(team.AveragePoints))
	for i, ps := range team.Players {
		fmt.Fprintf(b, "%d. %s - %s pts\n", i+1, displayName(ps), formatPoints(ps.AveragePoints))
	}
}

func displayName(ps model.PlayerStat) string {
	if ps.Nickname != "" && ps.Nickname != ps.Name {
		return fmt.Sprintf("%s (%s)", ps.Name, ps.Nickname)
	}
	return ps.Name
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
