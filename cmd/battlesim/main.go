// Package main is the entry point for battlesim, a minimal
// line-oriented host that drives one battle.Engine battle over
// stdin/stdout. It exists to exercise the engine end-to-end; it is
// not a game client, and renders nothing beyond plain text lines.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/battlecore/internal/battle"
	"github.com/samdwyer/battlecore/internal/creature"
	"github.com/samdwyer/battlecore/internal/events"
	"github.com/samdwyer/battlecore/internal/gamedata"
	"github.com/samdwyer/battlecore/internal/team"
	"github.com/samdwyer/battlecore/internal/telemetry"
)

func main() {
	seedFlag := flag.Int64("seed", 0, "RNG seed for the battle (0 = auto)")
	playerSpeciesFlag := flag.String("player", "overgrowth", "species id for the player's creature")
	foeSpeciesFlag := flag.String("foe", "cinderwolf", "species id for the foe's creature")
	levelFlag := flag.Int("level", 20, "level for both creatures")
	pvpFlag := flag.Bool("pvp", false, "play both sides manually instead of letting the AI control the foe")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	seed := determineSeed(*seedFlag)
	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Battle will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if err := run(ctx, seed, *playerSpeciesFlag, *foeSpeciesFlag, *levelFlag, *pvpFlag); err != nil {
		log.Fatalf("battlesim: %v", err)
	}
}

func run(ctx context.Context, seed int64, playerSpeciesID, foeSpeciesID string, level int, isPvP bool) error {
	skills, err := gamedata.LoadSkillRegistry()
	if err != nil {
		return fmt.Errorf("loading skills: %w", err)
	}
	species, err := gamedata.LoadSpeciesRegistry()
	if err != nil {
		return fmt.Errorf("loading species: %w", err)
	}
	chart, err := gamedata.LoadElementChart()
	if err != nil {
		return fmt.Errorf("loading type chart: %w", err)
	}

	playerCreature, err := species.New(playerSpeciesID, level, skills)
	if err != nil {
		return fmt.Errorf("building player creature: %w", err)
	}
	foeCreature, err := species.New(foeSpeciesID, level, skills)
	if err != nil {
		return fmt.Errorf("building foe creature: %w", err)
	}

	playerSide := team.New([]*creature.Creature{playerCreature})
	foeSide := team.New([]*creature.Creature{foeCreature})

	e := battle.NewEngine(battle.Config{Chart: chart, Seed: uint64(seed)})
	e.Subscribe(func(ev events.Event) {
		if ev.Type == events.LogAppended {
			fmt.Println(ev.LogAppendedPayload.Text)
		}
	})

	if err := e.InitBattle(ctx, playerSide, foeSide, isPvP); err != nil {
		return fmt.Errorf("InitBattle: %w", err)
	}

	fmt.Printf("A wild battle begins! %s (lvl %d) vs %s (lvl %d)\n",
		playerSide.Active().Name(), playerSide.Active().Level(),
		foeSide.Active().Name(), foeSide.Active().Level())

	reader := bufio.NewScanner(os.Stdin)
	for e.CurrentState().Phase != battle.Ended {
		active := playerSide.Active()
		fmt.Printf("\n%s HP %d/%d PP %d/%d\n", active.Name(), active.HP(), active.MaxHP(), active.PP(), active.MaxPP())
		fmt.Println("Choose an action: skill <0-N|sig>, escape")
		fmt.Print("> ")
		if !reader.Scan() {
			return nil
		}
		action, ok := parseAction(strings.TrimSpace(reader.Text()))
		if !ok {
			fmt.Println("unrecognized action")
			continue
		}
		if err := e.SubmitPlayerAction(ctx, action); err != nil {
			fmt.Println("error:", err)
			continue
		}
		if isPvP {
			foeActive := foeSide.Active()
			fmt.Printf("\nFoe's turn — %s HP %d/%d\n", foeActive.Name(), foeActive.HP(), foeActive.MaxHP())
			fmt.Print("> ")
			if !reader.Scan() {
				return nil
			}
			foeAction, ok := parseAction(strings.TrimSpace(reader.Text()))
			if !ok {
				fmt.Println("unrecognized action")
				continue
			}
			if err := e.SubmitFoeAction(ctx, foeAction); err != nil {
				fmt.Println("error:", err)
			}
		}
	}

	fmt.Println("\nBattle over:", e.CurrentState().Result)
	return nil
}

func parseAction(line string) (battle.Action, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return battle.Action{}, false
	}
	switch fields[0] {
	case "escape":
		return battle.Action{Kind: battle.ActionEscape}, true
	case "skill":
		if len(fields) < 2 {
			return battle.Action{}, false
		}
		if fields[1] == "sig" {
			return battle.Action{Kind: battle.ActionUseSkill, SkillIndex: -1}, true
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			return battle.Action{}, false
		}
		return battle.Action{Kind: battle.ActionUseSkill, SkillIndex: idx}, true
	default:
		return battle.Action{}, false
	}
}

// determineSeed returns the seed to use for the battle's RNG.
// Priority: CLI flag > BATTLECORE_SEED env var > time-derived.
func determineSeed(flagValue int64) int64 {
	if flagValue != 0 {
		return flagValue
	}
	if envSeed := os.Getenv("BATTLECORE_SEED"); envSeed != "" {
		if parsed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return parsed
		}
		log.Printf("Warning: invalid BATTLECORE_SEED value %q, using time-derived seed", envSeed)
	}
	return time.Now().UnixNano()
}

// setupOTelEnv configures OTEL environment variables from this
// project's own custom env vars, mirroring the teacher's Honeycomb
// wiring under a renamed key prefix.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_BATTLECORE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_BATTLECORE_DATASET")
	if dataset == "" {
		dataset = "battlecore"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
