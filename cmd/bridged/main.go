// Command bridged runs a scripted bridge session against the in-memory
// transport: a party room relaying across two channels, then a
// one-on-one room hitting its caps and the interactive join prompt.
// Useful for eyeballing relay behavior without a chat platform.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"threadlink/bridge"
	"threadlink/domain"
	"threadlink/internal"
	"threadlink/observability"
	"threadlink/runtime"
	"threadlink/runtime/workers"
	"threadlink/services"
	"threadlink/transport/console"
	"threadlink/transport/memory"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.LoggerFromString(config.LogLevel)

	// 2. Transport, metrics, registry
	metrics := observability.NewMetrics()
	mem := memory.NewTransport(log, config.BufferSize)
	transport := console.Wrap(mem)
	rooms := bridge.NewRoomRegistry(bridge.Deps{Transport: transport, Log: log, Metrics: metrics})
	svc := services.NewBridgeService(log, rooms)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Background workers: event pump + heartbeat
	sup := runtime.NewSupervisor(log, config.RestartInterval)
	sup.Add(mem, workers.NewHeartbeatWorker(log, config.HeartbeatInterval, metrics))
	done := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(done)
	}()

	if err := scenario(ctx, svc, rooms, mem); err != nil {
		sup.Stop()
		<-done
		return err
	}

	printSummary(rooms, metrics)

	sup.Stop()
	<-done
	return nil
}

func scenario(ctx context.Context, svc *services.BridgeService, rooms *bridge.RoomRegistry, mem *memory.Transport) error {
	alice := &domain.User{ID: uuid.NewString(), Name: "alice"}
	bob := &domain.User{ID: uuid.NewString(), Name: "bob"}
	carol := &domain.User{ID: uuid.NewString(), Name: "carol"}
	dave := &domain.User{ID: uuid.NewString(), Name: "dave"}
	erin := &domain.User{ID: uuid.NewString(), Name: "erin"}

	// Party room: two channels, one real identity, one anonymous.
	party, err := svc.CreateRoom("party")
	if err != nil {
		return err
	}
	chanA, chanB := mem.NewTextChannel(), mem.NewTextChannel()
	if _, err := svc.Join(ctx, services.JoinRequest{RoomID: party.ID, Anchor: chanA, User: alice}); err != nil {
		return err
	}
	if _, err := svc.Join(ctx, services.JoinRequest{RoomID: party.ID, Anchor: chanB, User: bob, Anonymous: true}); err != nil {
		return err
	}
	threadA := mem.ThreadsUnder(chanA.ID)[0]
	threadB := mem.ThreadsUnder(chanB.ID)[0]

	hi := &domain.Message{
		ID:        uuid.New(),
		ChannelID: threadA.ID,
		Author:    alice,
		Content:   "hi from the A side",
		CreatedAt: time.Now(),
	}
	mem.Post(hi)
	mem.Post(&domain.Message{
		ID:        uuid.New(),
		ChannelID: threadB.ID,
		Author:    bob,
		Content:   "hey, reading you loud and clear",
		ReplyTo:   &domain.ReplyRef{AuthorID: alice.ID, AuthorName: alice.Name, Excerpt: hi.Content},
		CreatedAt: time.Now(),
	})

	// One-on-one room: caps at two instances of one member each, so a
	// third channel is refused and a non-member hits the join prompt.
	duo, err := svc.CreateRoom("one-on-one")
	if err != nil {
		return err
	}
	chanC, chanD := mem.NewTextChannel(), mem.NewTextChannel()
	if _, err := svc.Join(ctx, services.JoinRequest{RoomID: duo.ID, Anchor: chanC, User: dave}); err != nil {
		return err
	}
	if _, err := svc.Join(ctx, services.JoinRequest{RoomID: duo.ID, Anchor: chanD, User: erin}); err != nil {
		return err
	}
	if ok, _ := svc.Join(ctx, services.JoinRequest{RoomID: duo.ID, Anchor: mem.NewTextChannel(), User: carol}); !ok {
		fmt.Println("third channel refused: one-on-one rooms cap at two instances")
	}
	threadC := mem.ThreadsUnder(chanC.ID)[0]
	mem.Post(&domain.Message{
		ID:        uuid.New(),
		ChannelID: threadC.ID,
		Author:    carol,
		Content:   "can I get in on this?",
		CreatedAt: time.Now(),
	})

	// Let the pump drain before rendering the summary.
	time.Sleep(300 * time.Millisecond)
	return nil
}

func printSummary(rooms *bridge.RoomRegistry, metrics *observability.Metrics) {
	roomTable := tablewriter.NewWriter(os.Stdout)
	roomTable.SetHeader([]string{"Room", "Type", "Instances", "Members"})
	for _, info := range rooms.Snapshots() {
		roomTable.Append([]string{
			info.ID,
			info.Type,
			strconv.Itoa(info.Instances),
			strings.Join(info.Members, ", "),
		})
	}
	roomTable.Render()

	statTable := tablewriter.NewWriter(os.Stdout)
	statTable.SetHeader([]string{"Counter", "Value"})
	for _, stat := range metrics.Snapshot() {
		statTable.Append([]string{stat.Name, strconv.FormatUint(stat.Value, 10)})
	}
	statTable.Render()
}
