package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/rocketscienceinc/tictactotal/internal/entity"
)

const emptyCellMark = "·"

// boardTable - the board as three rows of three cells, empty cells marked with a dot.
func boardTable(game *entity.Game) pterm.TableData {
	data := make(pterm.TableData, 3)

	for index, digit := range game.Board {
		row, _ := entity.RowCol(index)

		cell := emptyCellMark
		if digit != entity.EmptyCell {
			cell = strconv.Itoa(digit)
		}

		data[row] = append(data[row], cell)
	}

	return data
}

// statusLine - who is to move, or how the game ended.
func statusLine(game *entity.Game, local entity.Player) string {
	if game.IsFinished() {
		if game.Mode == entity.VsComputer && game.Winner == entity.Player2Wins {
			return "Computer wins"
		}

		return string(game.Winner)
	}

	mover := game.Mover()

	status := "Current Player: " + string(mover)
	if mover == local {
		status += " (you)"
	}

	return status
}

// infoLines - targets, placed numbers and the room to share.
func infoLines(game *entity.Game) []string {
	lines := []string{
		fmt.Sprintf("Player 1 target: %d, numbers: %s", game.Player1.Target, joinDigits(game.Player1.Numbers)),
		fmt.Sprintf("Player 2 target: %d, numbers: %s", game.Player2.Target, joinDigits(game.Player2.Numbers)),
		"Available: " + joinDigits(game.Pool.AvailableDigits()),
	}

	if game.Mode == entity.VsPlayer {
		lines = append(lines, "Join room: "+game.RoomID)
	}

	return lines
}

// cellLabel - the option shown for an empty cell, counted from 1.
func cellLabel(index int) string {
	row, col := entity.RowCol(index)
	return fmt.Sprintf("row %d, col %d", row+1, col+1)
}

func joinDigits(digits []int) string {
	if len(digits) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(digits))
	for _, digit := range digits {
		parts = append(parts, strconv.Itoa(digit))
	}

	return strings.Join(parts, " ")
}
