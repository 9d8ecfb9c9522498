package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/markinthebyss/pyact-go/actor"
)

var echoMessage string

var echoCmd = &cobra.Command{
	Use:   "echo",
	Short: "Spawn a call/response server and call its echo method",
	RunE:  runEcho,
}

func init() {
	echoCmd.Flags().StringVar(&echoMessage, "message", "hello", "payload to echo")
}

func runEcho(cmd *cobra.Command, args []string) error {
	server := actor.Spawn(func(ctx context.Context, self *actor.Actor) (actor.Value, error) {
		return nil, actor.Serve(ctx, self, actor.MethodTable{
			"echo": func(ctx context.Context, self *actor.Actor, method string, payload actor.Value) (actor.Value, error) {
				return payload, nil
			},
		}, actor.ServerOptions{})
	})
	defer server.Kill()

	caller := actor.Spawn(func(ctx context.Context, self *actor.Actor) (actor.Value, error) {
		return server.Call(ctx, self, "echo", echoMessage, 2*time.Second)
	})

	result, err := caller.Wait(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("echo replied: %v\n", result)
	return nil
}
