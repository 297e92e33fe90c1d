package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/wizard/application"
	"github.com/luca-patrignani/wizard/bot"
	"github.com/luca-patrignani/wizard/config"
	"github.com/luca-patrignani/wizard/domain/wizard"
)

func main() {
	configPath := flag.String("config", "", "path of a JSON table configuration")
	flag.Parse()

	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("W", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("izard", pterm.FgDarkGray.ToStyle()),
	).Render()

	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = askConfig()
	}
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	humans := make([]wizard.DecisionProvider, len(cfg.Players))
	consoles := make([]*console, len(cfg.Players))
	for i := range humans {
		consoles[i] = &console{}
		humans[i] = consoles[i]
	}
	table, err := application.NewTable(cfg, humans,
		application.WithLogger(logger),
		application.WithObserver(wizard.ObserverFunc(printEvent)),
	)
	if err != nil {
		logger.Error("failed to create the table", "error", err)
		os.Exit(1)
	}
	for _, c := range consoles {
		c.state = table.Game().Snapshot
		c.isBot = cfg.IsBot
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	winners, err := table.Play(ctx)
	if err != nil {
		logger.Error("game aborted", "error", err)
		os.Exit(1)
	}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{{getWinnerPanel(winners)}}).Render()
}

// askConfig builds the table interactively: one human seat and a chosen
// number of bots.
func askConfig() (config.Config, error) {
	cfg := config.Default()

	// Create an interactive text input with single line input mode and show it
	name, err := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your username").WithDefaultValue(cfg.Players[0]).Show()
	if err != nil {
		return cfg, err
	}
	pterm.Println()
	pterm.Info.Printfln("Your username: %s", name)
	cfg.Players = []string{name}

	counts := []string{"1", "2", "3", "4", "5"}
	selected, err := pterm.DefaultInteractiveSelect.WithDefaultText("How many bots do you want to play against?").WithOptions(counts).WithDefaultOption("2").Show()
	if err != nil {
		return cfg, err
	}
	n, _ := strconv.Atoi(selected)
	cfg.Bots = make([]string, n)
	for i := range cfg.Bots {
		cfg.Bots[i] = fmt.Sprintf("Bot %d", i+1)
	}

	strategies := []string{string(bot.StrategyGreedy), string(bot.StrategyRandom)}
	strategy, err := pterm.DefaultInteractiveSelect.WithDefaultText("Select the bots strategy").WithOptions(strategies).Show()
	if err != nil {
		return cfg, err
	}
	cfg.BotStrategy = bot.Strategy(strategy)

	cfg.WizardMode, err = pterm.DefaultInteractiveConfirm.WithDefaultText("Play with Wizards and Jesters?").WithDefaultValue(true).Show()
	if err != nil {
		return cfg, err
	}
	cfg.SecureShuffle, err = pterm.DefaultInteractiveConfirm.WithDefaultText("Shuffle with the crypto random stream?").WithDefaultValue(false).Show()
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
