package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"beacon/config"
	"beacon/internal/infra/api"
	logs "beacon/internal/infra/log"
	"beacon/internal/infra/storage"
	"beacon/internal/poll"
	"beacon/internal/session"
	"beacon/internal/usecase"
	"beacon/internal/usecase/impl"

	"go.uber.org/fx"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	app := fx.New(
		fx.NopLogger,
		injectInfra(),
		injectUsecase(),
		fx.Invoke(runCommand),
	)

	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "beaconctl:", err)
		os.Exit(1)
	}
	app.Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		newSessionStorage,
		newSessionStore,
		newClient,
		impl.NewValidator,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewIncidentService,
			impl.NewCommentService,
			impl.NewCategoryService,
			impl.NewUserAdminService,
			impl.NewRoleService,
			impl.NewTeamService,
			impl.NewNotificationService,
			impl.NewSubscriptionService,
			impl.NewStatisticsService,
		),
	)
}

func newSessionStorage(cfg *config.Config) session.Storage {
	return storage.NewFileStore(cfg.Session.Path)
}

func newSessionStore(store session.Storage, logger *slog.Logger) *session.Store {
	return session.New(store, logger)
}

func newClient(cfg *config.Config, store *session.Store, logger *slog.Logger) (*api.Client, error) {
	client, err := api.New(cfg, store, logger)
	if err != nil {
		return nil, err
	}
	client.SetAuthFailureHandler(func() {
		fmt.Fprintln(os.Stderr, "session expired, please run `beaconctl login` again")
	})

	return client, nil
}

type commandParams struct {
	fx.In
	fx.Lifecycle

	Config        *config.Config
	Shutdowner    fx.Shutdowner
	Store         *session.Store
	Auth          usecase.AuthUsecase
	Incidents     usecase.IncidentUsecase
	Notifications usecase.NotificationUsecase
	Statistics    usecase.StatisticsUsecase
	Logger        *slog.Logger
}

func runCommand(params commandParams) {
	ctx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := dispatch(ctx, params)
				cancel()
				_ = params.Shutdowner.Shutdown(fx.ExitCode(code))
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})
}

func dispatch(ctx context.Context, params commandParams) int {
	switch os.Args[1] {
	case "login":
		return cmdLogin(ctx, params.Auth)
	case "logout":
		return report(params.Auth.Logout(ctx))
	case "whoami":
		return cmdWhoami(params)
	case "incidents":
		return cmdIncidents(ctx, params.Incidents)
	case "report":
		return cmdReport(ctx, params.Incidents)
	case "stats":
		return cmdStats(ctx, params.Statistics)
	case "watch":
		return cmdWatch(ctx, params)
	default:
		usage()

		return 2
	}
}

func cmdLogin(ctx context.Context, auth usecase.AuthUsecase) int {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: beaconctl login <username> <password>")

		return 2
	}

	res := auth.Login(ctx, usecase.LoginInput{Username: os.Args[2], Password: os.Args[3]})
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)

		return 1
	}
	fmt.Printf("logged in as %s\n", res.Data.User.Username)

	return 0
}

func cmdWhoami(params commandParams) int {
	snap := params.Store.Snapshot()
	if !snap.IsAuthenticated {
		fmt.Println("not logged in")

		return 1
	}
	fmt.Printf("%s %s <%s>\n", snap.User.FirstName, snap.User.LastName, snap.User.Email)

	return 0
}

func cmdIncidents(ctx context.Context, incidents usecase.IncidentUsecase) int {
	res := incidents.List(ctx, usecase.ListIncidentsOptions{})
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)

		return 1
	}
	for _, incident := range res.Data {
		fmt.Printf("%s\t[%s]\t%s\n", incident.ID, incident.Status, incident.Title)
	}

	return 0
}

func cmdReport(ctx context.Context, incidents usecase.IncidentUsecase) int {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: beaconctl report <title> <description>")

		return 2
	}

	res := incidents.Report(ctx, usecase.ReportIncidentInput{Title: os.Args[2], Description: os.Args[3]})
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)

		return 1
	}
	fmt.Printf("reported incident %s\n", res.Data.ID)

	return 0
}

func cmdStats(ctx context.Context, statistics usecase.StatisticsUsecase) int {
	res := statistics.PublicIncidentStatistics(ctx)
	if !res.Success {
		fmt.Fprintln(os.Stderr, res.Message)

		return 1
	}
	stats := res.Data
	fmt.Printf("total=%d open=%d in_progress=%d resolved=%d\n",
		stats.Total, stats.Open, stats.InProgress, stats.Resolved)

	return 0
}

// cmdWatch polls the notification inbox until interrupted. The poller owns
// the ticker and releases it when the context is cancelled.
func cmdWatch(ctx context.Context, params commandParams) int {
	poller := poll.New(params.Config.Poll.NotificationInterval, params.Logger)
	seen := make(map[string]bool)

	poller.Run(ctx, func(ctx context.Context) {
		res := params.Notifications.List(ctx)
		if !res.Success {
			fmt.Fprintln(os.Stderr, res.Message)

			return
		}
		for _, notification := range res.Data {
			if seen[notification.ID] || notification.IsRead {
				continue
			}
			seen[notification.ID] = true
			fmt.Printf("%s: %s\n", notification.Title, notification.Body)
		}
	})

	return 0
}

func report(res interface{ Failed() (bool, string) }) int {
	if failed, message := res.Failed(); failed {
		fmt.Fprintln(os.Stderr, message)

		return 1
	}

	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: beaconctl <command>

commands:
  login <username> <password>   authenticate and persist the session
  logout                        clear the persisted session
  whoami                        show the current user
  incidents                     list incidents
  report <title> <description>  report an incident
  stats                         show public incident statistics
  watch                         poll for notifications until interrupted`)
}
