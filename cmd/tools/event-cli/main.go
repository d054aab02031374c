package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/annel0/blockworld/internal/eventbus"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
)

const (
	defaultNatsURL = "nats://127.0.0.1:4222"
	timeFormat     = "2006-01-02T15:04:05Z"
)

func main() {
	var (
		natsURL    = flag.String("nats", defaultNatsURL, "NATS server URL")
		stream     = flag.String("stream", "WORLD", "JetStream stream name")
		command    = flag.String("cmd", "tail", "Command: tail, cues")
		eventTypes = flag.String("types", "", "Event type filter: world.place or world.remove")
		limit      = flag.Int("limit", 0, "Stop after N events (0 = follow forever)")
	)
	flag.Parse()

	switch *command {
	case "tail":
		if err := tailEvents(&TailOptions{
			URL:        *natsURL,
			Stream:     *stream,
			EventTypes: parseStringList(*eventTypes),
			Limit:      *limit,
		}); err != nil {
			log.Fatalf("Tail failed: %v", err)
		}

	case "cues":
		printCues(os.Stdout, block.DefaultCatalog())

	default:
		fmt.Printf("Unknown command: %s\n", *command)
		fmt.Println("Available commands: tail, cues")
		os.Exit(1)
	}
}

type TailOptions struct {
	URL        string
	Stream     string
	EventTypes []string
	Limit      int
}

// tailEvents выводит исходы из JetStream в реальном времени
func tailEvents(opts *TailOptions) error {
	bus, err := eventbus.NewJetStreamBus(opts.URL, opts.Stream, 24*time.Hour)
	if err != nil {
		return err
	}
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	codec, err := eventbus.NewCodec()
	if err != nil {
		return err
	}
	defer codec.Close()

	events := make(chan *eventbus.Envelope, 64)
	sub, err := bus.Subscribe(ctx, eventbus.Filter{Types: opts.EventTypes}, func(ctx context.Context, ev *eventbus.Envelope) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer sub.Unsubscribe()

	fmt.Printf("Tailing %s on %s (limit: %d)\n", opts.Stream, opts.URL, opts.Limit)

	count := 0
	for {
		select {
		case <-ctx.Done():
			fmt.Printf("\nTotal events: %d\n", count)
			return nil
		case ev := <-events:
			o, err := eventbus.DecodeOutcomeWith(ev, codec)
			if err != nil {
				fmt.Printf("%s %s (не исход: %v)\n", ev.Timestamp.Format(timeFormat), ev.EventType, err)
			} else {
				fmt.Println(formatOutcome(ev, o))
			}
			count++
			if opts.Limit > 0 && count >= opts.Limit {
				fmt.Printf("\nTotal events: %d\n", count)
				return nil
			}
		}
	}
}

// formatOutcome печатает исход одной строкой
func formatOutcome(ev *eventbus.Envelope, o world.Outcome) string {
	status := "OK "
	detail := o.BlockType
	if !o.Accepted() {
		status = "REJ"
		detail = string(o.Reason)
	}
	return fmt.Sprintf("%s %s %-6s %-12s %-14s cue=%s src=%s",
		ev.Timestamp.Format(timeFormat), status, o.Operation, o.Position, detail, o.SoundCue(), ev.Source)
}

// printCues выводит соответствие типов блоков звуковым сигналам
func printCues(w io.Writer, catalog *block.Catalog) {
	fmt.Fprintf(w, "%-8s %-6s %-12s %-12s\n", "BLOCK", "SOUND", "PLACE", "BREAK")
	for _, def := range catalog.All() {
		place := world.Outcome{Outcome: world.ResultAccepted, Operation: world.OperationPlace, Sound: def.Sound}
		remove := world.Outcome{Outcome: world.ResultAccepted, Operation: world.OperationRemove, Sound: def.Sound}
		fmt.Fprintf(w, "%-8s %-6s %-12s %-12s\n", def.ID, def.Sound, place.SoundCue(), remove.SoundCue())
	}
	fmt.Fprintf(w, "%-8s %-6s %-12s %-12s\n", "*", block.SoundError, "error", "error")
}

// parseStringList парсит строку со списком через запятую
func parseStringList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
