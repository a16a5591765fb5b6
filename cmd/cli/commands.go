package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"voice-assistant/config"
	"voice-assistant/internal/assistant"
	"voice-assistant/internal/bootstrap"
	"voice-assistant/pkg/gcalendar"
	"voice-assistant/pkg/log"
)

const chatPrompt = "you> "

// env is what every command needs: config, a logger and a trace-scoped context.
type env struct {
	ctx  context.Context
	stop context.CancelFunc
	cfg  *config.Config
	l    log.Logger
}

func setup(configPath string, quiet bool) (*env, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var l log.Logger
	if quiet {
		l = log.NewNop()
	} else {
		l = log.Init(log.ZapConfig{
			Level:        cfg.Logger.Level,
			Mode:         cfg.Logger.Mode,
			Encoding:     cfg.Logger.Encoding,
			ColorEnabled: cfg.Logger.ColorEnabled,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = log.WithTraceID(ctx, uuid.NewString())
	return &env{ctx: ctx, stop: stop, cfg: cfg, l: l}, nil
}

func withApp(configPath string, quiet bool, fn func(e *env, app *bootstrap.App) error) error {
	e, err := setup(configPath, quiet)
	if err != nil {
		return err
	}
	defer e.stop()

	app, err := bootstrap.Build(e.ctx, e.cfg, e.l)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(e, app)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReply(r assistant.Reply) {
	if !r.Executed {
		fmt.Printf("[%s] (no local skill) %s\n", r.Intent.Name, r.Intent.Args)
		return
	}
	fmt.Println(r.Text)
}

func routeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "route <utterance>",
		Short: "Show which intent an utterance routes to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, true, func(e *env, app *bootstrap.App) error {
				return printJSON(app.Assistant.Route(e.ctx, strings.Join(args, " ")))
			})
		},
	}
}

func askCmd(configPath *string) *cobra.Command {
	var (
		sessionID string
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "ask <utterance>",
		Short: "Answer a single utterance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, !verbose, func(e *env, app *bootstrap.App) error {
				reply, err := app.Assistant.Handle(e.ctx, sessionID, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if verbose {
					return printJSON(reply)
				}
				printReply(reply)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&sessionID, "session", "s", "cli", "conversation session id")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log and print the full reply")
	return cmd
}

func chatCmd(configPath *string) *cobra.Command {
	var sessionID string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation, one utterance per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, true, func(e *env, app *bootstrap.App) error {
				scanner := bufio.NewScanner(os.Stdin)
				fmt.Print(chatPrompt)
				for scanner.Scan() {
					line := strings.TrimSpace(scanner.Text())
					switch line {
					case "":
					case "exit", "quit":
						return nil
					default:
						reply, err := app.Assistant.Handle(e.ctx, sessionID, line)
						if err != nil {
							if e.ctx.Err() != nil {
								return nil
							}
							fmt.Println("error:", err)
						} else {
							printReply(reply)
						}
					}
					fmt.Print(chatPrompt)
				}
				return scanner.Err()
			})
		},
	}
	cmd.Flags().StringVarP(&sessionID, "session", "s", "cli", "conversation session id")
	return cmd
}

func toolsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools of every configured server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, true, func(e *env, app *bootstrap.App) error {
				for _, t := range app.Registry.ListTools(e.ctx) {
					fmt.Printf("%-32s %s\n", t.QualifiedName(), t.Description)
				}
				return nil
			})
		},
	}
}

func rememberCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remember <fact>",
		Short: "Store a fact in long-term memory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, true, func(e *env, app *bootstrap.App) error {
				fact := strings.Join(args, " ")
				if !app.Assistant.Remember(e.ctx, fact) {
					return fmt.Errorf("memory store rejected %q", fact)
				}
				fmt.Println("Remembered.")
				return nil
			})
		},
	}
}

// toolServerCmd serves the built-in tools over stdio so other MCP hosts (or
// another instance of this assistant) can use them.
func toolServerCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "toolserver",
		Short: "Serve the built-in tools as an MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so nothing else may write to it.
			e, err := setup(*configPath, true)
			if err != nil {
				return err
			}
			defer e.stop()

			tools, closeTools := bootstrap.NewLocalTools(e.ctx, e.cfg, e.l)
			defer closeTools()

			return server.ServeStdio(tools.Server())
		},
	}
}

func calendarAuthCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar-auth",
		Short: "Authorize Google Calendar access and save the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*configPath, true)
			if err != nil {
				return err
			}
			defer e.stop()

			credsPath := e.cfg.GoogleCalendar.CredentialsPath
			if credsPath == "" {
				return fmt.Errorf("google_calendar.credentials_path is not set")
			}
			data, err := os.ReadFile(credsPath)
			if err != nil {
				return fmt.Errorf("read credentials %q: %w", credsPath, err)
			}
			oauthCfg, err := gcalendar.NewOAuthConfig(data)
			if err != nil {
				return err
			}

			fmt.Println("1. Open this URL and sign in with your Google account:")
			fmt.Println()
			fmt.Println(oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
			fmt.Println()
			fmt.Print("2. Paste the authorization code here and press Enter: ")

			var code string
			if _, err := fmt.Scan(&code); err != nil {
				return fmt.Errorf("read authorization code: %w", err)
			}

			tok, err := oauthCfg.Exchange(e.ctx, code)
			if err != nil {
				return fmt.Errorf("exchange authorization code: %w", err)
			}
			if err := gcalendar.SaveToken(e.cfg.GoogleCalendar.TokenPath, tok); err != nil {
				return err
			}
			fmt.Printf("Token saved to %s\n", e.cfg.GoogleCalendar.TokenPath)
			return nil
		},
	}
}
