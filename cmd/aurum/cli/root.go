package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aurumkit/aurum"
)

// RootCmd builds the aurum command tree.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "aurum",
		Short:         "Gold storefront client",
		Long:          "Browse the gold storefront, manage a session, and place orders from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().String("base-url", "http://localhost:8080", "backend base URL")
	cmd.PersistentFlags().String("redis-addr", "localhost:6379", "redis address for session persistence")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		LoginCmd(),
		RegisterCmd(),
		LogoutCmd(),
		MeCmd(),
		PricesCmd(),
		ItemsCmd(),
		ItemCmd(),
		SellCmd(),
		OrderCmd(),
		OrdersCmd(),
		CancelCmd(),
	)

	return cmd
}

// terminationHint tells the user to sign in again whenever the client tears
// the session down, whatever command happened to trigger it.
type terminationHint struct {
	out io.Writer
}

func (s *terminationHint) Emit(_ context.Context, ev aurum.Event) {
	if ev.Type != aurum.EventSessionTerminated {
		return
	}
	reason := ev.Metadata["reason"]
	if reason == "" {
		reason = "session ended"
	}
	fmt.Fprintf(s.out, "\nSession ended (%s). Run \"aurum login\" to sign in again.\n", reason)
}

// newClient assembles a client from the persistent flags. The returned
// cleanup closes the client and its redis connection.
func newClient(cmd *cobra.Command) (*aurum.Client, func(), error) {
	baseURL, _ := cmd.Flags().GetString("base-url")
	redisAddr, _ := cmd.Flags().GetString("redis-addr")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := zerolog.Nop()
	if verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			With().Timestamp().Logger()
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})

	client, err := aurum.New().
		WithBaseURL(baseURL).
		WithRedis(rdb).
		WithEventSink(&terminationHint{out: cmd.ErrOrStderr()}).
		WithLogger(logger).
		Build()
	if err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}

	cleanup := func() {
		client.Close()
		_ = rdb.Close()
	}
	return client, cleanup, nil
}
