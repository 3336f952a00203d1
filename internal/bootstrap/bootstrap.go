package bootstrap

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	breathinginadapter "mindful/internal/modules/breathing/adapter/in"
	breathingoutadapter "mindful/internal/modules/breathing/adapter/out"
	breathingservice "mindful/internal/modules/breathing/service"
	breathingusecase "mindful/internal/modules/breathing/usecase"
	chatinadapter "mindful/internal/modules/chat/adapter/in"
	chatoutadapter "mindful/internal/modules/chat/adapter/out"
	chatout "mindful/internal/modules/chat/port/out"
	chatservice "mindful/internal/modules/chat/service"
	chatusecase "mindful/internal/modules/chat/usecase"
	crisisinadapter "mindful/internal/modules/crisis/adapter/in"
	crisisusecase "mindful/internal/modules/crisis/usecase"
	identityinadapter "mindful/internal/modules/identity/adapter/in"
	identityoutadapter "mindful/internal/modules/identity/adapter/out"
	identityservice "mindful/internal/modules/identity/service"
	identityusecase "mindful/internal/modules/identity/usecase"
	moodinadapter "mindful/internal/modules/mood/adapter/in"
	moodoutadapter "mindful/internal/modules/mood/adapter/out"
	moodservice "mindful/internal/modules/mood/service"
	moodusecase "mindful/internal/modules/mood/usecase"
	plugininadapter "mindful/internal/modules/plugin/adapter/in"
	pluginoutadapter "mindful/internal/modules/plugin/adapter/out"
	pluginin "mindful/internal/modules/plugin/port/in"
	pluginservice "mindful/internal/modules/plugin/service"
	pluginusecase "mindful/internal/modules/plugin/usecase"
	resourcesinadapter "mindful/internal/modules/resources/adapter/in"
	resourcesoutadapter "mindful/internal/modules/resources/adapter/out"
	resourcesservice "mindful/internal/modules/resources/service"
	resourcesusecase "mindful/internal/modules/resources/usecase"
	"mindful/internal/platform/clock"
	"mindful/internal/platform/config"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/id"
	"mindful/internal/platform/logging"
	"mindful/internal/platform/sqlitedb"
	"mindful/internal/server"
	uiapp "mindful/internal/ui/app"
)

type App struct {
	Config config.Config
	Logger *zap.Logger

	IdentityCLI  identityinadapter.CLIHandler
	MoodCLI      moodinadapter.CLIHandler
	ChatCLI      chatinadapter.CLIHandler
	BreathingCLI breathinginadapter.CLIHandler
	CrisisCLI    crisisinadapter.CLIHandler
	ResourcesCLI resourcesinadapter.CLIHandler
	PluginCLI    plugininadapter.CLIHandler

	clock     clock.Clock
	identity  *identityusecase.Interactor
	mood      *moodusecase.Interactor
	chat      *chatusecase.Interactor
	breathing *breathingusecase.Interactor
	crisis    *crisisusecase.Interactor
	resources *resourcesusecase.Interactor
	plugins   pluginin.Usecase
	closers   []func() error
}

func New(ctx context.Context, cfg config.Config) (app *App, err error) {
	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app = &App{Config: cfg, Logger: logger, clock: clock.SystemClock{}}
	defer func() {
		if err != nil {
			_ = app.Close()
		}
	}()
	ids := id.UUID{}

	db, err := sqlitedb.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, db.Close)

	users, err := identityoutadapter.NewSQLiteUserStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("new user store: %w", err)
	}
	app.identity = identityusecase.NewInteractor(
		identityservice.NewIdentityService(app.clock, ids, users, identityoutadapter.NewBcryptHasher(bcrypt.DefaultCost)),
		identityoutadapter.NewFileIdentityStore(cfg.IdentityPath),
	)

	moodStore, err := moodoutadapter.NewSQLiteEntryStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("new mood store: %w", err)
	}
	app.mood = moodusecase.NewInteractor(moodservice.NewMoodService(app.clock, ids, moodStore))

	pluginHost := pluginoutadapter.NewGRPCHost(pluginoutadapter.WithLogger(hclog.New(&hclog.LoggerOptions{
		Name:   "plugin",
		Output: zap.NewStdLog(logger.Named("plugin")).Writer(),
		Level:  hclog.LevelFromString(cfg.LogLevel),
	})))
	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.PluginsPath),
		pluginHost,
	))

	messages, err := chatoutadapter.NewSQLiteMessageStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("new message store: %w", err)
	}
	var responder chatout.Responder
	if cfg.ResponderPlugin != "" {
		responder = chatoutadapter.NewPluginResponder(pluginUC, cfg.ResponderPlugin)
	}
	app.chat = chatusecase.NewInteractor(chatservice.NewChatService(app.clock, ids, messages, responder, logger), app.clock)

	sessions, err := breathingoutadapter.NewSQLiteSessionStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("new breathing store: %w", err)
	}
	app.breathing = breathingusecase.NewInteractor(breathingservice.NewBreathingService(app.clock, ids, sessions), app.clock, logger)

	app.crisis = crisisusecase.NewInteractor()
	app.resources = resourcesusecase.NewInteractor(resourcesservice.NewResourceService(
		resourcesoutadapter.NewFileCatalog(cfg.CatalogPath),
		resourcesoutadapter.NewLocalMarkdownReader(),
		resourcesoutadapter.NewLocalPDFReader(),
		resourcesoutadapter.NewOSExternalLauncher(),
		logger,
	))

	app.IdentityCLI = identityinadapter.NewCLIHandler(app.identity)
	app.MoodCLI = moodinadapter.NewCLIHandler(app.mood)
	app.ChatCLI = chatinadapter.NewCLIHandler(app.chat)
	app.BreathingCLI = breathinginadapter.NewCLIHandler(app.breathing)
	app.CrisisCLI = crisisinadapter.NewCLIHandler(app.crisis)
	app.ResourcesCLI = resourcesinadapter.NewCLIHandler(app.resources)
	app.PluginCLI = plugininadapter.NewCLIHandler(pluginUC)
	app.plugins = pluginUC
	return app, nil
}

// CurrentUserID is the signed-in user, or "" when nobody is.
func (a *App) CurrentUserID(ctx context.Context) (string, error) {
	ident, err := a.identity.Current(ctx)
	if errors.Is(err, apperrors.ErrNotSignedIn) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ident.UserID, nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}

func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reloads <-chan error
	if app.Config.CatalogPath != "" {
		ch, err := app.resources.Watch(ctx, resourcesoutadapter.NewCatalogWatcher(app.Config.CatalogPath, app.Logger))
		if err != nil {
			app.Logger.Warn("resource catalog not watched", zap.Error(err))
		} else {
			reloads = ch
		}
	}

	userID, err := app.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	coach := app.breathing.NewCoach(userID)
	model := uiapp.NewModel(uiapp.Deps{
		Identity:       app.identity,
		Chat:           app.chat,
		ReplyDelay:     app.Config.ChatReplyDelay,
		Mood:           app.mood,
		Coach:          coach,
		Breathing:      app.breathing,
		Crisis:         app.crisis,
		Resources:      app.resources,
		CatalogReloads: reloads,
		Plugins:        app.plugins,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	// A killed program skips the model's own shutdown.
	coach.Reset()
	coach.Wait()
	return err
}

func Serve(ctx context.Context, app *App, addr string) error {
	srv := server.New(server.Deps{
		Identity:  app.identity,
		Mood:      app.mood,
		Chat:      app.chat,
		Breathing: app.breathing,
		Crisis:    app.crisis,
		Resources: app.resources,
		Logger:    app.Logger,
	})
	return srv.Run(ctx, addr)
}
