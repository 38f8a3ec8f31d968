package interactions

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	discord "github.com/waddletracker/discord-bot/app/discordgo"
)

// ErrAlreadyAcknowledged is returned when an initial response is attempted
// on an interaction that was already deferred or replied to.
var ErrAlreadyAcknowledged = errors.New("interaction already acknowledged")

// State is the reply lifecycle position of one interaction.
type State int

const (
	StateReceived State = iota
	StateDeferred
	StateReplied
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateDeferred:
		return "deferred"
	case StateReplied:
		return "replied"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Message is a reply payload independent of the verb used to deliver it.
// A non-nil empty Components slice clears the components of an edited message.
type Message struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// NoComponents clears the buttons of an edited message.
func NoComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{}
}

const (
	placeholderNone = iota
	placeholderEphemeral
	placeholderPublic
)

// Responder guards the reply lifecycle of a single interaction.
// State advances before the platform call so a failed call can never lead
// to a second initial response.
type Responder struct {
	mu          sync.Mutex
	session     discord.Session
	interaction *discordgo.Interaction
	state       State
	// placeholder is the kind of "thinking" message Defer left, if any.
	placeholder int
}

func NewResponder(session discord.Session, interaction *discordgo.Interaction) *Responder {
	return &Responder{session: session, interaction: interaction}
}

func (r *Responder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Defer acknowledges with a "thinking" placeholder that a later Edit replaces.
func (r *Responder) Defer(ephemeral bool) error {
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	placeholder := placeholderPublic
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
		placeholder = placeholderEphemeral
	}
	if err := r.initial(StateDeferred, resp); err != nil {
		return err
	}
	r.mu.Lock()
	r.placeholder = placeholder
	r.mu.Unlock()
	return nil
}

// DeferUpdate acknowledges a component interaction; a later Edit rewrites the
// message that carried the component.
func (r *Responder) DeferUpdate() error {
	return r.initial(StateDeferred, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// Modal answers the interaction by opening a modal.
func (r *Responder) Modal(data *discordgo.InteractionResponseData) error {
	return r.initial(StateReplied, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
}

// Reply sends the initial response.
func (r *Responder) Reply(msg Message) error {
	return r.initial(StateReplied, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(msg),
	})
}

// Update replaces the component's message as the initial response.
func (r *Responder) Update(msg Message) error {
	return r.initial(StateReplied, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: responseData(msg),
	})
}

// Edit rewrites the original response. Before any acknowledgement it
// degrades to Reply.
func (r *Responder) Edit(msg Message) error {
	r.mu.Lock()
	if r.state == StateReceived {
		r.mu.Unlock()
		return r.Reply(msg)
	}
	r.state = StateReplied
	r.mu.Unlock()

	_, err := r.session.InteractionResponseEdit(r.interaction, webhookEdit(msg))
	if err != nil {
		return fmt.Errorf("failed to edit interaction response: %w", err)
	}
	return nil
}

// FollowUp posts an additional message. Before any acknowledgement it
// degrades to Reply.
func (r *Responder) FollowUp(msg Message) error {
	r.mu.Lock()
	if r.state == StateReceived {
		r.mu.Unlock()
		return r.Reply(msg)
	}
	r.state = StateReplied
	r.mu.Unlock()

	_, err := r.session.FollowupMessageCreate(r.interaction, true, webhookParams(msg))
	if err != nil {
		return fmt.Errorf("failed to send follow-up message: %w", err)
	}
	return nil
}

// Send delivers msg with whichever verb the current state allows:
// reply when received, edit when deferred, follow-up once replied.
func (r *Responder) Send(msg Message) error {
	switch r.State() {
	case StateReceived:
		return r.Reply(msg)
	case StateDeferred:
		return r.Edit(msg)
	default:
		return r.FollowUp(msg)
	}
}

// Private delivers msg so that only the invoking user sees it. An ephemeral
// placeholder is edited in place. A public placeholder is deleted first, since
// the first follow-up after a defer would otherwise land in its place.
func (r *Responder) Private(msg Message) error {
	msg.Ephemeral = true
	r.mu.Lock()
	state, placeholder := r.state, r.placeholder
	r.placeholder = placeholderNone
	r.mu.Unlock()

	switch {
	case state == StateReceived:
		return r.Reply(msg)
	case state == StateDeferred && placeholder == placeholderEphemeral:
		return r.Edit(msg)
	case state == StateDeferred && placeholder == placeholderPublic:
		if err := r.session.InteractionResponseDelete(r.interaction); err != nil {
			return fmt.Errorf("failed to delete deferred response: %w", err)
		}
		return r.FollowUp(msg)
	default:
		return r.FollowUp(msg)
	}
}

// Fail reports an unhandled failure privately.
func (r *Responder) Fail(embed *discordgo.MessageEmbed) error {
	return r.Private(Message{Embeds: []*discordgo.MessageEmbed{embed}})
}

func (r *Responder) initial(next State, resp *discordgo.InteractionResponse) error {
	r.mu.Lock()
	if r.state != StateReceived {
		state := r.state
		r.mu.Unlock()
		return fmt.Errorf("%w (state %s)", ErrAlreadyAcknowledged, state)
	}
	r.state = next
	r.mu.Unlock()

	if err := r.session.InteractionRespond(r.interaction, resp); err != nil {
		return fmt.Errorf("failed to respond to interaction: %w", err)
	}
	return nil
}

func responseData(msg Message) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    msg.Content,
		Embeds:     msg.Embeds,
		Components: msg.Components,
	}
	if msg.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

func webhookEdit(msg Message) *discordgo.WebhookEdit {
	edit := &discordgo.WebhookEdit{}
	if msg.Content != "" {
		content := msg.Content
		edit.Content = &content
	}
	if msg.Embeds != nil {
		embeds := msg.Embeds
		edit.Embeds = &embeds
	}
	if msg.Components != nil {
		components := msg.Components
		edit.Components = &components
	}
	return edit
}

func webhookParams(msg Message) *discordgo.WebhookParams {
	params := &discordgo.WebhookParams{
		Content:    msg.Content,
		Embeds:     msg.Embeds,
		Components: msg.Components,
	}
	if msg.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	return params
}
