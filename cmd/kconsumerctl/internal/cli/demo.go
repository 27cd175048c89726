package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamkit/kconsumer/pkg/actor"
	"github.com/streamkit/kconsumer/pkg/broker"
	"github.com/streamkit/kconsumer/pkg/kconfig"
	"github.com/streamkit/kconsumer/pkg/klog"
)

func newDemoCmd(v *viper.Viper) *cobra.Command {
	var topic string
	var groupID string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Subscribe to a simulated topic, produce a few records, and fetch them back",
		RunE: func(cmd *cobra.Command, args []string) error {
			if groupID != "" {
				v.Set("group_id", groupID)
			}
			cfg, err := kconfig.Load(v)
			if err != nil {
				return err
			}

			logger, err := klog.NewDevelopment()
			if err != nil {
				return err
			}
			cfg.Logger = logger

			handle := broker.NewSimulated(broker.SimulatedTopology{topic: 3})
			a := actor.New(handle, cfg)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			runErrs := make(chan error, 1)
			go func() { runErrs <- a.Run(ctx) }()
			go a.RunPollTimer(ctx, cfg.PollTimeout)

			subErr := make(chan error, 1)
			a.Enqueue(&actor.SubscribeTopicsRequest{Topics: []string{topic}, Result: subErr})
			if err := <-subErr; err != nil {
				return err
			}

			// Polls run only once an Assignment request has marked the actor
			// streaming. The explicit Poll applies the initial assignment, and
			// the second Assignment request returns only after it has run.
			assignDone := make(chan actor.AssignmentResult, 1)
			a.Enqueue(&actor.AssignmentRequest{Result: assignDone})
			if res := <-assignDone; res.Err != nil {
				return res.Err
			}
			a.Enqueue(&actor.PollRequest{})
			a.Enqueue(&actor.AssignmentRequest{Result: assignDone})
			if res := <-assignDone; res.Err != nil {
				return res.Err
			}

			tp := actor.TopicPartition{Topic: topic, Partition: 0}
			handle.Produce(tp, []byte("key-1"), []byte("value-1"), nil)
			handle.Produce(tp, []byte("key-2"), []byte("value-2"), nil)

			fr := actor.NewFetchRequest(tp, 0)
			a.Enqueue(fr)
			result := fr.Wait()
			for _, rec := range result.Records {
				fmt.Fprintf(cmd.OutOrStdout(), "fetched partition=%d offset=%d key=%s value=%s\n",
					rec.Partition.Partition, rec.Offset, rec.Key, rec.Value)
			}

			commitCtx, commitCancel := context.WithTimeout(ctx, cfg.CommitTimeout)
			defer commitCancel()
			offsets := map[actor.TopicPartition]actor.OffsetAndMetadata{
				tp: {Offset: int64(len(result.Records)), Metadata: "demo"},
			}
			if err := a.MessageCommit(commitCtx, offsets); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "committed")

			cancel()
			select {
			case <-runErrs:
			case <-time.After(time.Second):
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "demo-topic", "simulated topic to subscribe to")
	cmd.Flags().StringVar(&groupID, "group-id", "kconsumerctl-demo", "consumer group id")
	return cmd
}
