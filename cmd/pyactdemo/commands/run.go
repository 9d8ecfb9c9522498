package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/markinthebyss/pyact-go/actor"
	"github.com/markinthebyss/pyact-go/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Spawn a supervisor and a worker that panics, and print the exit report",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger()
	if verbose {
		cfg.VerboseExceptions = true
	}
	actor.SetLogger(log)
	actor.SetVerboseExceptions(cfg.VerboseExceptions)

	reports := make(chan actor.Value, 1)

	supervisor := actor.Spawn(func(ctx context.Context, self *actor.Actor) (actor.Value, error) {
		worker := actor.SpawnLink(self, func(ctx context.Context, self *actor.Actor) (actor.Value, error) {
			panic("deliberate demo failure")
		})
		log.Info("spawned worker", zap.String("worker_id", worker.ID()))

		_, msg, err := self.Receive(ctx, actor.Map{"address": actor.AnyAddress, "exception": actor.Any})
		if err != nil {
			return nil, err
		}
		reports <- msg
		return msg, nil
	})

	result, err := supervisor.Wait(context.Background())
	if err != nil {
		return err
	}
	report := result.(actor.Map)["exception"].(actor.Map)
	fmt.Printf("worker exited: kind=%s message=%s\n", report["kind"], report["message"])
	return nil
}
