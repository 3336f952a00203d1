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

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"mindful/internal/bootstrap"
	breathingdto "mindful/internal/modules/breathing/dto"
	"mindful/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "mindful",
		Short:         "A calm companion for mood, breathing and support",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir(), "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newAuthCmd(&dataDir))
	root.AddCommand(newMoodCmd(&dataDir))
	root.AddCommand(newChatCmd(&dataDir))
	root.AddCommand(newBreatheCmd(&dataDir))
	root.AddCommand(newCrisisCmd(&dataDir))
	root.AddCommand(newResourcesCmd(&dataDir))
	root.AddCommand(newPluginCmd(&dataDir))
	root.AddCommand(newServeCmd(&dataDir))
	return root
}

// withApp builds the composition root for one command and closes it after.
func withApp(cmd *cobra.Command, dataDir string, run func(context.Context, *bootstrap.App) error) error {
	cfg, err := config.New(dataDir)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	runErr := run(ctx, app)
	if err := app.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the mindful terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(ctx, app)
			})
		},
	}
}

func newAuthCmd(dataDir *string) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Manage the local account"}

	var fullName string
	signup := &cobra.Command{
		Use:   "signup <email> <password>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				user, err := app.IdentityCLI.SignUp(ctx, args[0], args[1], fullName)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created account %s (%s)\n", user.Email, user.ID)
				return nil
			})
		},
	}
	signup.Flags().StringVar(&fullName, "name", "", "full name")

	signin := &cobra.Command{
		Use:   "signin <email> <password>",
		Short: "Sign in on this machine",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				ident, err := app.IdentityCLI.SignIn(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", ident.DisplayName)
				return nil
			})
		},
	}

	signout := &cobra.Command{
		Use:   "signout",
		Short: "Forget the signed-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.IdentityCLI.SignOut(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				ident, err := app.IdentityCLI.WhoAmI(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> since %s\n", ident.DisplayName, ident.Email, ident.SignedInAt.Local().Format("2006-01-02 15:04"))
				return nil
			})
		},
	}

	auth.AddCommand(signup, signin, signout, whoami)
	return auth
}

func newMoodCmd(dataDir *string) *cobra.Command {
	mood := &cobra.Command{Use: "mood", Short: "Track your mood"}

	mood.AddCommand(&cobra.Command{
		Use:   "log <1-5> [note...]",
		Short: "Record how you feel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("mood level must be a number from 1 to 5")
			}
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				entry, err := app.MoodCLI.Log(ctx, userID, level, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s (%d)\n", entry.LevelLabel, entry.Level)
				return nil
			})
		},
	})

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent check-ins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				entries, err := app.MoodCLI.Recent(ctx, userID, limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no entries")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d %-9s\t%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Level, e.LevelLabel, e.Note)
				}
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 5, "number of entries")

	mood.AddCommand(list, &cobra.Command{
		Use:   "stats",
		Short: "Average mood and number of check-ins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				stats, err := app.MoodCLI.Stats(ctx, userID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "entries=%d average=%.1f\n", stats.Count, stats.Average)
				return nil
			})
		},
	})
	return mood
}

func newChatCmd(dataDir *string) *cobra.Command {
	chat := &cobra.Command{Use: "chat", Short: "Talk with the support companion"}

	chat.AddCommand(&cobra.Command{
		Use:   "send <message...>",
		Short: "Send a message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				out, err := app.ChatCLI.Send(ctx, userID, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Reply.Content)
				return nil
			})
		},
	})

	chat.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Print the conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				msgs, err := app.ChatCLI.History(ctx, userID)
				if err != nil {
					return err
				}
				for _, m := range msgs {
					who := "bot"
					if m.FromUser {
						who = "you"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", m.CreatedAt.Local().Format("15:04"), who, m.Content)
				}
				return nil
			})
		},
	})
	return chat
}

func newBreatheCmd(dataDir *string) *cobra.Command {
	var cycles int
	breathe := &cobra.Command{
		Use:   "breathe",
		Short: "Guided 4-4-6 breathing; ctrl+c ends the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if userID == "" {
					_, _ = fmt.Fprintln(w, "not signed in: this session will not be recorded")
				}
				out, err := app.BreathingCLI.Guide(ctx, userID, cycles, func(s breathingdto.TimerSnapshot) {
					_, _ = fmt.Fprintf(w, "\r%-12s %2ds  cycles %d  %-40s", s.Label, s.SecondsLeft, s.CyclesThisRun, s.Guidance)
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "\ncompleted %d cycles in %s\n", out.CyclesCompleted, out.Elapsed.Round(time.Second))
				switch {
				case out.RecordErr != nil:
					_, _ = fmt.Fprintf(w, "session not saved: %v\n", out.RecordErr)
				case out.Handoff.Emitted:
					_, _ = fmt.Fprintf(w, "saved %d minutes\n", out.Handoff.Summary.DurationMinutes)
				}
				return nil
			})
		},
	}
	breathe.Flags().IntVar(&cycles, "cycles", 0, "stop after this many cycles (0 = until interrupted)")

	var recCycles, recMinutes int
	record := &cobra.Command{
		Use:   "record",
		Short: "Record a session done elsewhere",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				sess, err := app.BreathingCLI.Record(ctx, userID, recCycles, recMinutes)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %d cycles, %d min (%s)\n", sess.CyclesCompleted, sess.DurationMinutes, sess.ID)
				return nil
			})
		},
	}
	record.Flags().IntVar(&recCycles, "cycles", 0, "completed cycles")
	record.Flags().IntVar(&recMinutes, "minutes", 1, "duration in minutes")

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "Show recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				sessions, err := app.BreathingCLI.History(ctx, userID, limit)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d cycles\t%d min\n", s.CreatedAt.Local().Format("2006-01-02 15:04"), s.CyclesCompleted, s.DurationMinutes)
				}
				return nil
			})
		},
	}
	history.Flags().IntVar(&limit, "limit", 10, "number of sessions")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Lifetime breathing totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				userID, err := app.CurrentUserID(ctx)
				if err != nil {
					return err
				}
				s, err := app.BreathingCLI.Stats(ctx, userID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sessions=%d cycles=%d minutes=%d\n", s.Sessions, s.TotalCycles, s.TotalMinutes)
				return nil
			})
		},
	}

	breathe.AddCommand(record, history, stats)
	return breathe
}

func newCrisisCmd(dataDir *string) *cobra.Command {
	var markdown bool
	crisis := &cobra.Command{
		Use:   "crisis",
		Short: "Crisis hotlines and coping strategies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				if !markdown {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), app.CrisisCLI.Text())
					return nil
				}
				out, err := glamour.Render(app.CrisisCLI.Markdown(), "dark")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	crisis.Flags().BoolVar(&markdown, "markdown", false, "render with terminal styling")
	return crisis
}

func newResourcesCmd(dataDir *string) *cobra.Command {
	resources := &cobra.Command{Use: "resources", Short: "Browse the resource library"}

	var search, category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List resources matching a search and category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				items, err := app.ResourcesCLI.List(ctx, search, category)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no resources")
					return nil
				}
				for _, r := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s/%s\t%s\n", r.ID, r.Title, r.Category, r.Type, r.URL)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "search title, description and tags")
	list.Flags().StringVar(&category, "category", "all", "category id")

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List resource categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(_ context.Context, app *bootstrap.App) error {
				for _, c := range app.ResourcesCLI.Categories() {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Name)
				}
				return nil
			})
		},
	}

	open := &cobra.Command{
		Use:   "open <id>",
		Short: "Print a resource's local document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				doc, err := app.ResourcesCLI.Open(ctx, args[0])
				if err != nil {
					return err
				}
				body := doc.Body
				if doc.Kind == "markdown" {
					if rendered, err := glamour.Render(doc.Body, "dark"); err == nil {
						body = rendered
					}
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), body)
				return nil
			})
		},
	}

	browse := &cobra.Command{
		Use:   "browse <id>",
		Short: "Open a resource in the default browser or viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				return app.ResourcesCLI.Browse(ctx, args[0])
			})
		},
	}

	resources.AddCommand(list, categories, open, browse)
	return resources
}

func newPluginCmd(dataDir *string) *cobra.Command {
	pluginCmd := &cobra.Command{Use: "plugin", Short: "Responder plugin commands"}

	pluginCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured plugins",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				plugins, err := app.PluginCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tenabled=%t\t%s\n", p.Name, p.Version, p.Enabled, p.Binary)
				}
				return nil
			})
		},
	})

	pluginCmd.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check plugin binaries, checksums and handshakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				results, err := app.PluginCLI.Doctor(ctx)
				if err != nil {
					return err
				}
				for _, r := range results {
					status := "ok"
					if r.Error != "" {
						status = r.Error
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tbinary=%t\tchecksum=%t\tlifecycle=%t\t%s\n", r.Name, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK, status)
				}
				return nil
			})
		},
	})
	return pluginCmd
}

func newServeCmd(dataDir *string) *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, *dataDir, func(ctx context.Context, app *bootstrap.App) error {
				if addr == "" {
					addr = app.Config.ServerAddr
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)
				return bootstrap.Serve(ctx, app, addr)
			})
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return serve
}
