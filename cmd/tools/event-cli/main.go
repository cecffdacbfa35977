package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/annel0/gopaint/internal/eventbus"
	"github.com/google/uuid"
)

const (
	defaultNATSURL = "nats://127.0.0.1:4222"
	timeFormat     = "2006-01-02T15:04:05Z"
)

func main() {
	var (
		natsURL    = flag.String("nats", defaultNATSURL, "NATS server URL")
		stream     = flag.String("stream", "GOPAINT", "JetStream stream name")
		command    = flag.String("cmd", "tail", "Command: tail, stats")
		eventTypes = flag.String("types", "", "Event types filter (comma-separated)")
		actors     = flag.String("actors", "", "Actor IDs filter (comma-separated)")
		since      = flag.String("since", "1h", "Time duration since now (e.g., 1h, 30m)")
		limit      = flag.Int("limit", 100, "Maximum number of events")
		follow     = flag.Bool("follow", false, "Follow new events (like tail -f)")
		wait       = flag.Duration("wait", 2*time.Second, "Stop after this long without new events")
	)
	flag.Parse()

	startTime, err := parseSinceTime(*since, time.Now())
	if err != nil {
		log.Fatalf("❌ Invalid since time: %v", err)
	}

	bus, err := eventbus.NewJetStreamBus(*natsURL, *stream, 0)
	if err != nil {
		log.Fatalf("❌ Failed to connect to NATS: %v", err)
	}
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &TailOptions{
		EventTypes: parseStringList(*eventTypes),
		Actors:     parseActors(parseStringList(*actors)),
		Since:      startTime,
		Limit:      *limit,
		Follow:     *follow,
		Wait:       *wait,
	}

	switch *command {
	case "tail":
		if err := tailEvents(ctx, bus, opts); err != nil {
			log.Fatalf("❌ Tail failed: %v", err)
		}
	case "stats":
		if err := showStats(ctx, bus, opts); err != nil {
			log.Fatalf("❌ Stats failed: %v", err)
		}
	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: tail, stats")
		os.Exit(1)
	}
}

type TailOptions struct {
	EventTypes []string
	Actors     map[uuid.UUID]bool
	Since      time.Time
	Limit      int
	Follow     bool
	Wait       time.Duration
}

// eventActor извлекает актора из полезной нагрузки известных типов
func eventActor(ev *eventbus.Envelope) (uuid.UUID, bool) {
	var p struct {
		Actor uuid.UUID `json:"actor"`
	}
	if err := ev.Decode(&p); err != nil {
		return uuid.Nil, false
	}
	return p.Actor, true
}

func (o *TailOptions) match(ev *eventbus.Envelope) bool {
	if ev.Timestamp.Before(o.Since) {
		return false
	}
	if len(o.Actors) == 0 {
		return true
	}
	actor, ok := eventActor(ev)
	return ok && o.Actors[actor]
}

// consume вызывает fn для подходящих событий, пока не исчерпан лимит или поток не затих
func consume(ctx context.Context, bus eventbus.EventBus, opts *TailOptions, fn func(*eventbus.Envelope)) (int, error) {
	var (
		mu    sync.Mutex
		count int
	)
	activity := make(chan struct{}, 1)
	full := make(chan struct{})
	var once sync.Once

	sub, err := bus.Subscribe(ctx, eventbus.Filter{Types: opts.EventTypes}, func(ctx context.Context, ev *eventbus.Envelope) {
		if !opts.match(ev) {
			return
		}
		mu.Lock()
		if !opts.Follow && count >= opts.Limit {
			mu.Unlock()
			return
		}
		count++
		fn(ev)
		reached := !opts.Follow && count >= opts.Limit
		mu.Unlock()

		select {
		case activity <- struct{}{}:
		default:
		}
		if reached {
			once.Do(func() { close(full) })
		}
	})
	if err != nil {
		return 0, err
	}
	defer sub.Unsubscribe()

	timer := time.NewTimer(opts.Wait)
	defer timer.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-full:
			break loop
		case <-activity:
			timer.Reset(opts.Wait)
		case <-timer.C:
			if !opts.Follow {
				break loop
			}
			timer.Reset(opts.Wait)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	return count, nil
}

// tailEvents выводит события в реальном времени
func tailEvents(ctx context.Context, bus eventbus.EventBus, opts *TailOptions) error {
	fmt.Printf("🎬 Tailing events (limit: %d, follow: %v)\n", opts.Limit, opts.Follow)

	count, err := consume(ctx, bus, opts, printEvent)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	fmt.Printf("\n📊 Total events: %d\n", count)
	return nil
}

// showStats выводит число событий по типам
func showStats(ctx context.Context, bus eventbus.EventBus, opts *TailOptions) error {
	fmt.Println("📊 Event statistics")

	byType := make(map[string]int)
	cells := make(map[string]int)
	total, err := consume(ctx, bus, opts, func(ev *eventbus.Envelope) {
		byType[ev.EventType]++
		var p struct {
			Cells int `json:"cells"`
		}
		if ev.Decode(&p) == nil {
			cells[ev.EventType] += p.Cells
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	fmt.Printf("Since: %s\n", opts.Since.UTC().Format(timeFormat))
	fmt.Printf("Total events: %d\n", total)
	fmt.Println("\nBy event type:")
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %s: %d events, %d cells\n", t, byType[t], cells[t])
	}
	return nil
}

// printEvent выводит событие в читаемом формате
func printEvent(ev *eventbus.Envelope) {
	fmt.Printf("[%s] %s [%s] %s\n",
		ev.Timestamp.Format("15:04:05"),
		ev.Source,
		ev.EventType,
		ev.ID)

	// Добавляем детали в зависимости от типа события
	switch ev.EventType {
	case eventbus.TypeBrushApplied:
		var p eventbus.BrushApplied
		if ev.Decode(&p) == nil {
			fmt.Printf("  Brush: %s Target: (%d,%d,%d) Cells: %d Actor: %s\n",
				p.Brush, p.Target.X, p.Target.Y, p.Target.Z, p.Cells, p.Actor)
		}
	case eventbus.TypeBrushUndone:
		var p eventbus.BrushUndone
		if ev.Decode(&p) == nil {
			fmt.Printf("  Cells: %d Actor: %s\n", p.Cells, p.Actor)
		}
	}
}

// parseStringList парсит строку с разделителями-запятыми
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

func parseActors(ids []string) map[uuid.UUID]bool {
	if len(ids) == 0 {
		return nil
	}
	actors := make(map[uuid.UUID]bool, len(ids))
	for _, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			log.Printf("⚠️ Skipping invalid actor id %q: %v", s, err)
			continue
		}
		actors[id] = true
	}
	return actors
}

// parseSinceTime парсит относительное время типа "1h", "30m"
func parseSinceTime(since string, from time.Time) (time.Time, error) {
	if since == "" {
		return time.Time{}, nil
	}

	duration, err := time.ParseDuration(since)
	if err != nil {
		// Пробуем парсить как абсолютное время
		return time.Parse(timeFormat, since)
	}

	return from.Add(-duration), nil
}
