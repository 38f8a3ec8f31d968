// interactions/registry.go
package interactions

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	discord "github.com/waddletracker/discord-bot/app/discordgo"
	"github.com/waddletracker/discord-bot/app/embeds"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/observability/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InteractionTimeout bounds the work done for one interaction.
const InteractionTimeout = 2 * time.Minute

// Request carries one inbound interaction to its handler.
type Request struct {
	Interaction *discordgo.InteractionCreate
	Responder   *Responder
	CustomID    CustomID
	Logger      *slog.Logger
}

// User returns the invoking user in guilds and DMs alike.
func (r *Request) User() *discordgo.User {
	if r.Interaction.Member != nil && r.Interaction.Member.User != nil {
		return r.Interaction.Member.User
	}
	if r.Interaction.User != nil {
		return r.Interaction.User
	}
	return &discordgo.User{}
}

func (r *Request) UserID() string {
	return r.User().ID
}

type HandlerFunc func(ctx context.Context, req *Request) error

// Command is a registered slash command. Ephemeral selects the visibility of
// the deferred reply; ManualAck leaves the first response to the handler.
type Command struct {
	Handler   HandlerFunc
	Ephemeral bool
	ManualAck bool
}

// Builder collects handlers at startup. Registering the same key twice panics.
type Builder struct {
	commands   map[string]Command
	components map[Kind]HandlerFunc
	modals     map[string]HandlerFunc
}

func NewBuilder() *Builder {
	return &Builder{
		commands:   make(map[string]Command),
		components: make(map[Kind]HandlerFunc),
		modals:     make(map[string]HandlerFunc),
	}
}

func (b *Builder) Command(name string, cmd Command) *Builder {
	if _, dup := b.commands[name]; dup {
		panic(fmt.Sprintf("interactions: command %q registered twice", name))
	}
	if cmd.Handler == nil {
		panic(fmt.Sprintf("interactions: command %q has no handler", name))
	}
	b.commands[name] = cmd
	return b
}

func (b *Builder) Component(kind Kind, h HandlerFunc) *Builder {
	if kind == KindUnknown {
		panic("interactions: cannot register a handler for unknown customIds")
	}
	if _, dup := b.components[kind]; dup {
		panic(fmt.Sprintf("interactions: component %s registered twice", kind))
	}
	b.components[kind] = h
	return b
}

func (b *Builder) Modal(id string, h HandlerFunc) *Builder {
	if _, dup := b.modals[id]; dup {
		panic(fmt.Sprintf("interactions: modal %q registered twice", id))
	}
	b.modals[id] = h
	return b
}

// Build freezes the registrations into a Registry.
func (b *Builder) Build(session discord.Session, in observability.Instruments) *Registry {
	r := &Registry{
		session:    session,
		in:         in,
		commands:   make(map[string]Command, len(b.commands)),
		components: make(map[Kind]HandlerFunc, len(b.components)),
		modals:     make(map[string]HandlerFunc, len(b.modals)),
	}
	for k, v := range b.commands {
		r.commands[k] = v
	}
	for k, v := range b.components {
		r.components[k] = v
	}
	for k, v := range b.modals {
		r.modals[k] = v
	}
	if r.in.Logger == nil {
		r.in.Logger = observability.NopLogger()
	}
	if r.in.Tracer == nil {
		r.in.Tracer = noop.NewTracerProvider().Tracer("interactions")
	}
	return r
}

// Registry routes interactions to handlers. It is immutable once built.
type Registry struct {
	session    discord.Session
	in         observability.Instruments
	commands   map[string]Command
	components map[Kind]HandlerFunc
	modals     map[string]HandlerFunc
}

// Commands lists the registered command names in order.
func (r *Registry) Commands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandleInteraction is the discordgo InteractionCreate handler.
func (r *Registry) HandleInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	r.Dispatch(context.Background(), i)
}

type route struct {
	kind      string
	name      string
	handler   HandlerFunc
	customID  CustomID
	ephemeral bool
	autoDefer bool
}

func (r *Registry) resolve(i *discordgo.InteractionCreate) (route, bool) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		cmd, ok := r.commands[name]
		return route{
			kind:      "command",
			name:      name,
			handler:   cmd.Handler,
			ephemeral: cmd.Ephemeral,
			autoDefer: !cmd.ManualAck,
		}, ok
	case discordgo.InteractionMessageComponent:
		raw := i.MessageComponentData().CustomID
		cid, known := Decode(raw)
		h, ok := r.components[cid.Kind]
		return route{kind: "component", name: cid.Kind.String(), handler: h, customID: cid}, known && ok
	case discordgo.InteractionModalSubmit:
		id := i.ModalSubmitData().CustomID
		h, ok := r.modals[id]
		return route{kind: "modal", name: id, handler: h, customID: CustomID{Payload: id}}, ok
	default:
		return route{kind: "other", name: i.Type.String()}, false
	}
}

// Dispatch runs exactly one reply lifecycle for i.
func (r *Registry) Dispatch(ctx context.Context, i *discordgo.InteractionCreate) {
	if i == nil || i.Interaction == nil {
		return
	}

	rt, ok := r.resolve(i)
	if !ok {
		r.in.Logger.Warn("No handler registered for interaction",
			attr.String("interaction_kind", rt.kind),
			attr.String("name", rt.name),
			attr.InteractionID(i.ID),
		)
		r.in.Metrics.RecordInteraction(rt.kind, "unknown", "dropped")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, InteractionTimeout)
	defer cancel()

	req := &Request{
		Interaction: i,
		Responder:   NewResponder(r.session, i.Interaction),
		CustomID:    rt.customID,
	}
	correlationID := uuid.NewString()
	req.Logger = r.in.Logger.With(
		attr.CorrelationID(correlationID),
		attr.InteractionID(i.ID),
		attr.UserID(req.UserID()),
		attr.String("interaction_kind", rt.kind),
		attr.String("name", rt.name),
	)

	ctx, span := r.in.Tracer.Start(ctx, "interaction."+rt.kind, trace.WithAttributes(
		attribute.String("interaction.name", rt.name),
		attribute.String("correlation_id", correlationID),
	))
	defer span.End()

	if rt.autoDefer {
		if err := req.Responder.Defer(rt.ephemeral); err != nil {
			req.Logger.ErrorContext(ctx, "Failed to acknowledge interaction", attr.Error(err))
			r.in.Metrics.RecordInteraction(rt.kind, rt.name, "ack_failed")
			return
		}
	}

	in := observability.Instruments{Logger: req.Logger, Tracer: r.in.Tracer, Metrics: r.in.Metrics}
	err := observability.RunOperation(ctx, in, rt.kind+"."+rt.name, func(ctx context.Context) error {
		return rt.handler(ctx, req)
	})
	if err == nil {
		r.in.Metrics.RecordInteraction(rt.kind, rt.name, "success")
		return
	}

	r.in.Metrics.RecordInteraction(rt.kind, rt.name, "error")
	if ferr := req.Responder.Fail(embeds.GenericError()); ferr != nil {
		req.Logger.ErrorContext(ctx, "Failed to report interaction error", attr.Error(ferr))
	}
}
