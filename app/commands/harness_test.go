package commands

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	discord "github.com/waddletracker/discord-bot/app/discordgo"
	"github.com/waddletracker/discord-bot/app/interactions"
	"github.com/waddletracker/discord-bot/app/observability"
	"github.com/waddletracker/discord-bot/app/shared/storage"
)

var fixedNow = time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)

// output is one message the bot sent, whatever verb carried it.
type output struct {
	verb       string
	respType   discordgo.InteractionResponseType
	embeds     []*discordgo.MessageEmbed
	components []discordgo.MessageComponent
	// cleared is set when the components were explicitly replaced.
	cleared   bool
	ephemeral bool
	data      *discordgo.InteractionResponseData
}

func (o output) title() string {
	if len(o.embeds) == 0 {
		return ""
	}
	return o.embeds[0].Title
}

type harness struct {
	t        *testing.T
	backend  *fakeBackend
	session  *discord.FakeSession
	store    *storage.FakeStorage[any]
	events   *fakePublisher
	handlers *Handlers
	registry *interactions.Registry

	mu      sync.Mutex
	outputs []output
}

func (h *harness) record(out output) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outputs = append(h.outputs, out)
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := newFakeBackend()
	h := newHarnessWith(t, backend)
	h.backend = backend
	return h
}

// newHarnessWith drives the handlers against any Backend, such as a real
// api.Client pointed at an httptest server.
func newHarnessWith(t *testing.T, backend Backend) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		session: discord.NewFakeSession(),
		store:   storage.NewFakeStorage[any](),
		events:  &fakePublisher{},
	}
	h.session.InteractionRespondFunc = func(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
		out := output{verb: "respond", respType: resp.Type, data: resp.Data}
		if resp.Data != nil {
			out.embeds = resp.Data.Embeds
			out.components = resp.Data.Components
			out.cleared = resp.Data.Components != nil && len(resp.Data.Components) == 0
			out.ephemeral = resp.Data.Flags&discordgo.MessageFlagsEphemeral != 0
		}
		h.record(out)
		return nil
	}
	h.session.InteractionResponseEditFunc = func(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
		out := output{verb: "edit"}
		if edit.Embeds != nil {
			out.embeds = *edit.Embeds
		}
		if edit.Components != nil {
			out.components = *edit.Components
			out.cleared = len(*edit.Components) == 0
		}
		h.record(out)
		return &discordgo.Message{ID: "m1"}, nil
	}
	h.session.InteractionResponseDeleteFunc = func(*discordgo.Interaction, ...discordgo.RequestOption) error {
		h.record(output{verb: "delete"})
		return nil
	}
	h.session.FollowupMessageCreateFunc = func(_ *discordgo.Interaction, _ bool, params *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
		h.record(output{
			verb:       "followup",
			embeds:     params.Embeds,
			components: params.Components,
			ephemeral:  params.Flags&discordgo.MessageFlagsEphemeral != 0,
		})
		return &discordgo.Message{ID: "m2"}, nil
	}

	h.handlers = New(backend, h.store, h.events, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.handlers.now = func() time.Time { return fixedNow }
	h.registry = h.handlers.Register(interactions.NewBuilder()).Build(h.session, observability.Instruments{})
	return h
}

func (h *harness) dispatch(i *discordgo.InteractionCreate) {
	h.t.Helper()
	h.registry.Dispatch(context.Background(), i)
}

// last returns the most recent message that carried content.
func (h *harness) last() output {
	h.t.Helper()
	for i := len(h.outputs) - 1; i >= 0; i-- {
		if len(h.outputs[i].embeds) > 0 || h.outputs[i].data != nil && h.outputs[i].data.CustomID != "" {
			return h.outputs[i]
		}
	}
	h.t.Fatalf("no message was sent; outputs: %+v", h.outputs)
	return output{}
}

func (h *harness) reset() {
	h.outputs = nil
}

const (
	testUserID   = "u1"
	testUsername = "waddler"
)

func interaction(id, userID string, typ discordgo.InteractionType, data discordgo.InteractionData) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:      id,
		Type:    typ,
		GuildID: "g1",
		Member:  &discordgo.Member{User: &discordgo.User{ID: userID, Username: testUsername}},
		Data:    data,
	}}
}

func slash(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return interaction("i1", testUserID, discordgo.InteractionApplicationCommand,
		discordgo.ApplicationCommandInteractionData{Name: name, Options: opts})
}

func slashWithUsers(name string, users map[string]*discordgo.User, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return interaction("i1", testUserID, discordgo.InteractionApplicationCommand,
		discordgo.ApplicationCommandInteractionData{
			Name:     name,
			Options:  opts,
			Resolved: &discordgo.ApplicationCommandInteractionDataResolved{Users: users},
		})
}

func button(customID, userID string) *discordgo.InteractionCreate {
	return interaction("i2", userID, discordgo.InteractionMessageComponent,
		discordgo.MessageComponentInteractionData{CustomID: customID, ComponentType: discordgo.ButtonComponent})
}

func modalSubmit(customID string, values map[string]string) *discordgo.InteractionCreate {
	var rows []discordgo.MessageComponent
	for id, v := range values {
		rows = append(rows, &discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: id, Value: v},
		}})
	}
	return interaction("i3", testUserID, discordgo.InteractionModalSubmit,
		discordgo.ModalSubmitInteractionData{CustomID: customID, Components: rows})
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func boolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: value}
}

func userOpt(id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: id}
}

func sub(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionSubCommand, Options: opts}
}

// customIDs lists the button ids of a component tree in order.
func customIDs(components []discordgo.MessageComponent) []string {
	var ids []string
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if b, ok := inner.(discordgo.Button); ok {
				ids = append(ids, b.CustomID)
			}
		}
	}
	return ids
}

func fieldNames(e *discordgo.MessageEmbed) []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Name)
	}
	return names
}
