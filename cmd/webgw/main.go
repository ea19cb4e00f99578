// webgw is the web-client gateway: it bridges browser terminal sessions
// to a running multiplexer server over a local IPC socket.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dormantflower/webgw/pkg/config"
	"github.com/dormantflower/webgw/pkg/gateway"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("webgw: fatal error")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "webgw",
		Short: "webgw",
		Long:  "Web-client gateway for a terminal multiplexer server",
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		bind                 string
		session              string
		socketDir            string
		supportKittyKeyboard bool
		disableKittyKeyboard bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web-client gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("bind") {
				cfg.Bind = bind
			}
			if cmd.Flags().Changed("session") {
				cfg.DefaultSession = session
			}
			if cmd.Flags().Changed("socket-dir") {
				cfg.SocketDir = socketDir
			}
			switch {
			case cmd.Flags().Changed("support-kitty-keyboard"):
				cfg.SupportExtendedKeyboard = &supportKittyKeyboard
			case cmd.Flags().Changed("disable-kitty-keyboard"):
				v := !disableKittyKeyboard
				cfg.SupportExtendedKeyboard = &v
			}

			state := gateway.NewState(cfg)
			log.Info().Str("bind", cfg.Bind).Str("socket_dir", cfg.SocketDir).Msg("webgw: starting")
			return gateway.Run(cfg.Bind, state)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "127.0.0.1:8082", "address to listen on")
	cmd.Flags().StringVar(&session, "session", "default", "default session name")
	cmd.Flags().StringVar(&socketDir, "socket-dir", "/tmp/webgw", "server socket directory")
	cmd.Flags().BoolVar(&supportKittyKeyboard, "support-kitty-keyboard", true, "enable the extended keyboard protocol")
	cmd.Flags().BoolVar(&disableKittyKeyboard, "disable-kitty-keyboard", false, "disable the extended keyboard protocol")

	return cmd
}
