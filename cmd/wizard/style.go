package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/wizard/domain/card"
	"github.com/luca-patrignani/wizard/domain/wizard"
)

func suitLabel(s card.Suit) string {
	if s == card.NoSuit {
		return pterm.Gray("none")
	}
	return s.Symbol() + " " + s.String()
}

func handString(hand []card.Card, playable []bool) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
		if i < len(playable) && !playable[i] {
			parts[i] = pterm.Gray(pterm.RemoveColorFromString(c.String()))
		}
	}
	return strings.Join(parts, " ")
}

func playerInfo(p wizard.PlayerView, s wizard.Snapshot, main, bot bool) string {
	hpadding := 4
	if main {
		hpadding = 10
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)
	title := p.Name
	if bot {
		title += " (bot)"
	}
	if p.Seat == s.Dealer {
		title += " (dealer)"
	}
	if p.Seat == s.CurrentSeat {
		title = pterm.LightCyan(title)
	}
	body := fmt.Sprintf("Bet: %d\nTricks: %d\nScore: %d", p.Bet, p.TricksWon, p.Score)
	if main {
		body += "\n" + handString(p.Hand, p.Playable)
	}
	return pbox.WithTitle(title).WithTitleTopLeft().Sprint(body)
}

func boardInfo(s wizard.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Round %d/%d - Trick %d/%d\n", s.Round+1, s.MaxRounds, s.Trick+1, s.Round+1)
	fmt.Fprintf(&b, "Trump: %s", suitLabel(s.Trump))
	if s.TrumpCard != nil {
		fmt.Fprintf(&b, " (flipped %s)", s.TrumpCard.String())
	}
	fmt.Fprintf(&b, "\nLead: %s\n", suitLabel(s.Lead))
	for _, pc := range s.Plays {
		name := s.Players[pc.Seat].Name
		if pc.Seat == s.WinningSeat {
			name = pterm.LightGreen(name)
		}
		fmt.Fprintf(&b, "%s: %s  ", name, pc.Card.String())
	}
	return pterm.BgGreen.Sprint("\n" + b.String() + "\n")
}

// printState renders the whole table from the point of view of seat. isBot
// tells which seats are played by the computer.
func printState(s wizard.Snapshot, seat int, isBot func(int) bool) {
	var panels []pterm.Panel
	var mainPlayer pterm.Panel
	for _, p := range s.Players {
		if p.Seat != seat {
			panels = append(panels, pterm.Panel{Data: playerInfo(p, s, false, isBot(p.Seat))})
		} else {
			mainPlayer = pterm.Panel{Data: playerInfo(p, s, true, isBot(p.Seat))}
		}
	}
	board := pterm.Panel{Data: boardInfo(s)}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		panels,
		{board},
		{mainPlayer},
	}).Render()
}

func scoreTable(lines []wizard.ScoreLine) pterm.TableData {
	data := pterm.TableData{{"Player", "Bet", "Tricks", "Round", "Total"}}
	for _, l := range lines {
		delta := pterm.LightGreen(fmt.Sprintf("%+d", l.Delta))
		if l.Delta < 0 {
			delta = pterm.LightRed(fmt.Sprintf("%+d", l.Delta))
		}
		data = append(data, []string{l.Name, fmt.Sprint(l.Bet), fmt.Sprint(l.TricksWon), delta, fmt.Sprint(l.Total)})
	}
	return data
}

func winnerText(winners []wizard.PlayerView) string {
	if len(winners) == 1 {
		return pterm.Sprintfln("%s wins with %d points", pterm.LightCyan(winners[0].Name), winners[0].Score)
	}
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = pterm.LightCyan(w.Name)
	}
	return pterm.Sprintfln("Tie between %s with %d points", strings.Join(names, ", "), winners[0].Score)
}

func getWinnerPanel(winners []wizard.PlayerView) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|GAME OVER|")).WithTitleTopCenter().Sprint(winnerText(winners))}
}

// printEvent reports the events a human at the table should notice.
func printEvent(e wizard.Event) error {
	switch e.Kind {
	case wizard.EventTrumpResolved:
		pterm.Info.Printfln("Trump for round %d: %s", e.Round+1, suitLabel(e.Suit))
	case wizard.EventTrickWon:
		pterm.Success.Printfln("%s takes the trick with %s", pterm.LightCyan(e.Player), e.Card.String())
	case wizard.EventRoundScored:
		pterm.DefaultSection.Printfln("Scores after round %d", e.Round+1)
		return pterm.DefaultTable.WithHasHeader().WithData(scoreTable(e.Scores)).Render()
	}
	return nil
}
