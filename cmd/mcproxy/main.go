// Command mcproxy runs an intercepting dissector proxy for Minecraft Java
// Edition, protocol 757. A client connects to the proxy as if it were the
// real server; the proxy relays every packet to the configured upstream while
// parsing and logging the traffic.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-mclib/proxy/logger"
	"github.com/go-mclib/proxy/proxy"
)

// sysexits-style codes, matching what operators expect from the tool
const (
	exitOK        = 0
	exitSoftware  = 70 // unhandled error in the main loop
	exitProtocol  = 76 // cancellation escaped the main loop
	exitInterrupt = 130
)

type options struct {
	listenAddr   string
	upstreamAddr string
	retryDelay   time.Duration
	verbose      bool
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.listenAddr, "listen", "localhost:25565", "address to accept clients on")
	fs.StringVar(&o.upstreamAddr, "upstream", "localhost:14454", "address of the real server")
	fs.DurationVar(&o.retryDelay, "retry-delay", proxy.DefaultRetryDelay, "delay before retrying a refused upstream connection")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log every relayed packet")
}

func (o *options) connector() *proxy.Connector {
	c := proxy.NewConnector(o.upstreamAddr)
	c.RetryDelay = o.retryDelay
	return c
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "mcproxy",
		Short:         "Intercepting dissector proxy for Minecraft Java Edition (protocol 757)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logger.NOTICE
			if opts.verbose {
				level = logger.DEBUG
			}
			logger.Configure(level, os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProxy(cmd.Context(), opts)
		},
	}
	opts.addFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Accept clients and relay them to the upstream server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runProxy(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "ping",
			Short: "Query the upstream server's status without a client",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPing(cmd.Context(), opts)
			},
		},
	)
	return root
}

func runProxy(ctx context.Context, opts *options) error {
	listener := proxy.NewListener(opts.listenAddr, opts.connector())
	return listener.Run(ctx)
}

func runPing(ctx context.Context, opts *options) error {
	pinger := proxy.NewPinger(opts.connector())
	status, rtt, err := pinger.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (protocol %d), %d/%d players, %s\n",
		status.Version.Name, status.Version.Protocol,
		status.Players.Online, status.Players.Max, rtt.Round(time.Millisecond))
	return nil
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New("mcproxy")

	err := newRootCmd(&options{}).ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case ctx.Err() != nil:
		return exitInterrupt
	case errors.Is(err, context.Canceled):
		log.Criticalf("cancellation escaped main loop: %v", err)
		return exitProtocol
	default:
		log.Criticalf("exception in main loop: %v", err)
		return exitSoftware
	}
}

func main() {
	os.Exit(run())
}
