package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/api"
	"github.com/waddletracker/discord-bot/app/commands"
	discord "github.com/waddletracker/discord-bot/app/discordgo"
	"github.com/waddletracker/discord-bot/app/events"
	"github.com/waddletracker/discord-bot/app/health"
	"github.com/waddletracker/discord-bot/app/interactions"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/observability/attr"
	"github.com/waddletracker/discord-bot/app/scheduler"
	"github.com/waddletracker/discord-bot/app/shared/storage"
	"github.com/waddletracker/discord-bot/config"
	"go.opentelemetry.io/otel"
)

const (
	presenceStatus  = "WaddleTracker | /help"
	shutdownTimeout = 10 * time.Second
	defaultBotName  = "WaddleTracker"
)

// DiscordBot owns every long-running part of the process: the gateway
// session, the event router, the reminder scheduler and the health server.
type DiscordBot struct {
	Session    discord.Session
	Operations discord.Operations
	Logger     *slog.Logger
	Config     *config.Config
	Metrics    *observability.Metrics
	Client     *api.Client
	Registry   *interactions.Registry
	EventBus   *events.Bus
	Router     *events.Router
	Scheduler  *scheduler.Scheduler
	Health     *health.Server
	Stores     *storage.Stores

	ready     atomic.Bool
	botName   atomic.Value
	closeOnce sync.Once
}

// NewDiscordBot wires the bot's components without connecting to anything.
// metrics may be nil.
func NewDiscordBot(ctx context.Context, session discord.Session, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*DiscordBot, error) {
	logger.Info("Creating DiscordBot")
	if metrics == nil {
		metrics = observability.NewMetrics(nil)
	}
	tracer := otel.Tracer(cfg.Service.Name)

	stores, err := storage.NewStores(ctx, logger, cfg.Reminders.LedgerTTL)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout,
		api.WithToken(cfg.API.Token),
		api.WithLogger(logger),
		api.WithTracer(tracer),
		api.WithMetrics(metrics),
	)

	bus, err := events.NewBus(events.BusConfig{
		NATSURL:     cfg.NATS.URL,
		QueueGroup:  cfg.Service.Name,
		ServiceName: cfg.Service.Name,
	}, logger, metrics)
	if err != nil {
		_ = stores.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	ops := discord.NewOperations(session, logger)
	router, err := events.NewRouter(bus, &events.Handlers{
		Discord:        ops,
		Logger:         logger,
		Metrics:        metrics,
		GeneralChannel: cfg.Discord.ChannelGeneral,
		GymPicsChannel: cfg.Discord.ChannelGymPics,
	}, logger, metrics.Registry)
	if err != nil {
		_ = bus.Close()
		_ = stores.Close()
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	registry := commands.New(client, stores.InteractionStore, bus, logger).
		Register(interactions.NewBuilder()).
		Build(session, observability.Instruments{Logger: logger, Tracer: tracer, Metrics: metrics})

	b := &DiscordBot{
		Session:    session,
		Operations: ops,
		Logger:     logger,
		Config:     cfg,
		Metrics:    metrics,
		Client:     client,
		Registry:   registry,
		EventBus:   bus,
		Router:     router,
		Stores:     stores,
	}
	b.botName.Store(defaultBotName)

	if cfg.RemindersEnabled() {
		b.Scheduler, err = scheduler.New(&scheduler.Dispatcher{
			Source:    client,
			Publisher: bus,
			Ledger:    stores.SentReminders,
			Logger:    logger,
			Metrics:   metrics,
			Now:       time.Now,
		}, cfg.Reminders.Interval, logger)
		if err != nil {
			_ = router.Close()
			_ = bus.Close()
			_ = stores.Close()
			return nil, err
		}
	}

	b.Health = health.NewServer(cfg.HealthAddr(), health.NewHandler(health.Options{
		Version:  cfg.Service.Version,
		BotName:  b.BotName,
		Ready:    b.Ready,
		Commands: registry.Commands,
		Registry: metrics.Registry,
	}))

	return b, nil
}

// Ready reports whether the gateway session has received its Ready event.
func (b *DiscordBot) Ready() bool {
	return b.ready.Load()
}

// BotName is the connected bot's username, or the default before Ready.
func (b *DiscordBot) BotName() string {
	return b.botName.Load().(string)
}

// Run registers the slash commands, opens the session and starts the
// background services. It blocks until ctx is cancelled or a service fails,
// and every component is closed by the time it returns.
func (b *DiscordBot) Run(ctx context.Context) error {
	b.Logger.InfoContext(ctx, "Entering bot.Run()...")

	if err := discord.RegisterCommands(b.Session, b.Logger, b.Config.GetGuildID(), commands.Definitions()); err != nil {
		b.Logger.ErrorContext(ctx, "Failed to register slash commands", attr.Error(err))
		b.Close()
		return err
	}
	b.Logger.InfoContext(ctx, "Slash commands registered successfully.")

	b.Session.AddHandler(b.Registry.HandleInteraction)
	b.Session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.onReady(ctx, r)
	})

	if err := b.Session.Open(); err != nil {
		b.Logger.ErrorContext(ctx, "Error opening discord connection", attr.Error(err))
		b.Close()
		return err
	}
	b.Logger.InfoContext(ctx, "Discord bot is now running.")

	errs := make(chan error, 2)
	go func() {
		if err := b.Router.Run(ctx); err != nil {
			errs <- fmt.Errorf("event router stopped: %w", err)
		}
	}()
	go func() {
		if err := b.Health.ListenAndServe(); err != nil {
			errs <- fmt.Errorf("health server stopped: %w", err)
		}
	}()

	if b.Scheduler != nil {
		select {
		case <-b.Router.Running():
		case <-ctx.Done():
		}
		b.Scheduler.Start()
	} else {
		b.Logger.InfoContext(ctx, "Workout reminders disabled")
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errs:
		b.Logger.ErrorContext(ctx, "Bot service failed", attr.Error(runErr))
	}

	b.Logger.Info("Shutting down Discord bot...")
	b.Close()
	return runErr
}

func (b *DiscordBot) onReady(ctx context.Context, r *discordgo.Ready) {
	if r != nil && r.User != nil && r.User.Username != "" {
		b.botName.Store(r.User.Username)
	}
	b.ready.Store(true)
	b.Logger.InfoContext(ctx, "Discord bot is connected and ready.", attr.String("bot", b.BotName()))

	if err := b.Operations.SetPresence(ctx, presenceStatus); err != nil {
		b.Logger.WarnContext(ctx, "Failed to set presence", attr.Error(err))
	}
}

// Close stops every component. It is safe to call more than once.
func (b *DiscordBot) Close() {
	b.closeOnce.Do(func() {
		b.Logger.Info("Closing bot")
		b.ready.Store(false)

		if b.Scheduler != nil {
			if err := b.Scheduler.Shutdown(); err != nil {
				b.Logger.Error("Failed to stop reminder scheduler", attr.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := b.Health.Shutdown(ctx); err != nil {
			b.Logger.Error("Failed to stop health server", attr.Error(err))
		}

		if err := b.Router.Close(); err != nil {
			b.Logger.Error("Failed to close Watermill router", attr.Error(err))
		}
		if err := b.Session.Close(); err != nil {
			b.Logger.Error("Failed to close Discord session", attr.Error(err))
		}
		if err := b.EventBus.Close(); err != nil {
			b.Logger.Error("Failed to close EventBus", attr.Error(err))
		}
		if err := b.Stores.Close(); err != nil {
			b.Logger.Error("Failed to close stores", attr.Error(err))
		}
	})
}
