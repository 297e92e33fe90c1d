package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/wizard/domain/card"
	"github.com/luca-patrignani/wizard/domain/wizard"
)

// console asks a human in front of the terminal for every decision of one seat.
type console struct {
	state func() wizard.Snapshot
	isBot func(seat int) bool
}

func (c *console) show(seat int) {
	if c.state != nil && c.isBot != nil {
		printState(c.state(), seat, c.isBot)
	}
}

func (c *console) ChooseTrumpSuit(ctx context.Context, dealer wizard.PlayerView) (card.Suit, error) {
	if err := ctx.Err(); err != nil {
		return card.NoSuit, err
	}
	c.show(dealer.Seat)
	options := make([]string, len(card.StandardSuits))
	for i, s := range card.StandardSuits {
		options[i] = s.String()
	}
	text := fmt.Sprintf("%s, a Wizard was flipped: choose the trump suit", dealer.Name)
	selected, err := pterm.DefaultInteractiveSelect.WithDefaultText(text).WithOptions(options).Show()
	if err != nil {
		return card.NoSuit, err
	}
	suit, err := card.ParseSuit(selected)
	if err != nil {
		return card.NoSuit, fmt.Errorf("%w: %v", wizard.ErrInvalidTrump, err)
	}
	return suit, nil
}

func (c *console) ChooseBet(ctx context.Context, player wizard.PlayerView, tricks int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.show(player.Seat)
	text := fmt.Sprintf("%s, how many tricks will you take? (0-%d)", player.Name, tricks)
	answer, err := pterm.DefaultInteractiveTextInput.WithDefaultText(text).Show()
	if err != nil {
		return 0, err
	}
	pterm.Println()
	return parseBet(answer)
}

func parseBet(answer string) (int, error) {
	bet, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		pterm.Error.Printfln("%q is not a number", answer)
		return 0, fmt.Errorf("%w: %q is not a number", wizard.ErrInvalidBet, answer)
	}
	return bet, nil
}

func (c *console) ChoosePlayIndex(ctx context.Context, player wizard.PlayerView) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.show(player.Seat)
	options, index := playOptions(player)
	text := fmt.Sprintf("%s, select the card to play", player.Name)
	selected, err := pterm.DefaultInteractiveSelect.WithDefaultText(text).WithOptions(options).Show()
	if err != nil {
		return 0, err
	}
	i, ok := index[selected]
	if !ok {
		return 0, fmt.Errorf("%w: unknown option %q", wizard.ErrIllegalPlay, selected)
	}
	return i, nil
}

// playOptions lists the playable cards of the view together with the hand
// index each option stands for.
func playOptions(player wizard.PlayerView) ([]string, map[string]int) {
	var options []string
	index := make(map[string]int)
	for _, i := range player.PlayableIndexes() {
		label := fmt.Sprintf("%d: %s", i+1, pterm.RemoveColorFromString(player.Hand[i].String()))
		options = append(options, label)
		index[label] = i
	}
	return options, index
}
