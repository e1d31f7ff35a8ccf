// Package seed loads the demo groups used for local runs.
package seed

import (
	"context"
	"fmt"

	"teambalancer/internal/model"
	"teambalancer/internal/repository"
)

var defaultAvatars = []string{"👨‍🎓", "👩‍🎓", "👨‍💻", "👩‍💻", "👨‍🎨"}

// DemoGroups returns fresh copies of the demo rosters
func DemoGroups() []model.Group {
	g21 := []model.Player{
		player("1", "Nacho Peña", "Nacho", "👨‍🎓"),
		player("2", "Tomás Saez", "Tomi", "👨‍💻"),
		player("3", "Mauri Guiseppe", "Mauri", "👨‍🎮"),
		player("4", "Kroz", "Kroz", "👨‍🚀"),
		player("5", "JoacoPL", "Joaco", "👨‍🎯"),
		player("6", "Marcoco", "Marco", "👨‍🏀"),
		player("7", "Nico Gomez", "Nico", "👨‍💼"),
		player("8", "Amigo Tomi", "Tomi", "👨‍🤝"),
		player("9", "Manu", "Manu", "👨‍🎨"),
		player("10", "Felipe Guerra", "Felipe", "👨‍⚔️"),
		player("11", "Bastián Rodriguez", "Bastián", "👨‍🔧"),
		player("12", "Luis Pereira", "Luis", "👨‍🏫"),
		player("13", "Estebanzzz", "Esteban", "👨‍🎵"),
		player("14", "Joaqo", "Joaqo", "👨‍🎪"),
	}

	return []model.Group{
		group("ICINF-UBB-G20", "bg-blue-500", roster("Jugador", "J")),
		group("ICINF-UBB-G21", "bg-green-500", g21),
		group("ICINF-UBB-G22", "bg-purple-500", roster("Estudiante", "Est")),
		group("ICINF-UBB-G23", "bg-orange-500", roster("Compañero", "Comp")),
		group("ICINF-UBB-G24", "bg-red-500", roster("Miembro", "Miem")),
		group("ICINF-UBB-G25", "bg-yellow-500", roster("Participante", "Part")),
	}
}

// Run replaces every group in repo with the demo groups. Votes are left
// untouched.
func Run(ctx context.Context, repo repository.GroupRepo) (int, error) {
	if err := repo.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear groups: %w", err)
	}

	groups := DemoGroups()
	for i := range groups {
		if err := repo.Create(ctx, &groups[i]); err != nil {
			return i, fmt.Errorf("failed to create group %s: %w", groups[i].ID, err)
		}
	}
	return len(groups), nil
}

func group(name, color string, players []model.Player) model.Group {
	return model.Group{
		ID:       name,
		Name:     name,
		Icon:     model.DefaultGroupIcon,
		Color:    color,
		Players:  players,
		IsActive: true,
	}
}

func roster(name, short string) []model.Player {
	players := make([]model.Player, len(defaultAvatars))
	for i, avatar := range defaultAvatars {
		n := i + 1
		players[i] = player(fmt.Sprint(n), fmt.Sprintf("%s %d", name, n), fmt.Sprintf("%s%d", short, n), avatar)
	}
	return players
}

func player(id, name, nickname, avatar string) model.Player {
	return model.Player{ID: id, Name: name, Nickname: nickname, Avatar: avatar, IsActive: true}
}
