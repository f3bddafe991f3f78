package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vb-capital-ai/chat"
	"vb-capital-ai/cmd/api/clients/bridgeclient"
	"vb-capital-ai/internal/logger"
)

// EnvPrefix 가 붙은 환경 변수는 같은 이름의 플래그 기본값이 된다. (VB_CHAT_THEME, VB_CHAT_LOG_LEVEL ...)
const EnvPrefix = "VB_CHAT"

type options struct {
	server   string
	theme    string
	user     string
	password string
	logLevel string
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vb-chat",
		Short: "Terminal chat client for VB Capital AI",
		Long: `vb-chat talks to a running VB Capital AI API server.

Every line you type is sent as a chat message. Lines starting with "/" are
commands; type /help to list them. Replies are rendered as markdown.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().String("server", "", "API base URL (default $"+bridgeclient.BaseURLEnv+" or "+bridgeclient.DefaultBaseURL+")")
	cmd.Flags().String("theme", "dark", "theme: "+themeNames())
	cmd.Flags().String("user", "", "demo user id; signs in before chatting")
	cmd.Flags().String("password", "", "demo password")
	cmd.Flags().String("log-level", "warn", "log level")
	return cmd
}

// loadOptions merges flags with VB_CHAT_* environment variables. Explicit flags win.
func loadOptions(flags *pflag.FlagSet) (options, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return options{}, errors.Wrap(err, "bind flags")
	}
	return options{
		server:   v.GetString("server"),
		theme:    v.GetString("theme"),
		user:     v.GetString("user"),
		password: v.GetString("password"),
		logLevel: v.GetString("log-level"),
	}, nil
}

func run(ctx context.Context, opts options) error {
	logger.Init(opts.logLevel)
	client := bridgeclient.New(opts.server)

	if opts.user != "" || opts.password != "" {
		msg, err := client.SignIn(ctx, opts.user, opts.password)
		if err != nil {
			return errors.Wrap(err, "sign in")
		}
		fmt.Println(msg)
	}

	session := chat.NewSession(client, chat.Options{})
	r, err := newREPL(session, client, os.Stdout, opts.theme, isatty.IsTerminal(os.Stdout.Fd()))
	if err != nil {
		return err
	}
	return r.Run(ctx, os.Stdin)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
