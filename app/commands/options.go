package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/waddletracker/discord-bot/app/interactions"
)

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

// commandOptions returns the active subcommand name (empty when the command
// has none) and the options that apply to it.
func commandOptions(req *interactions.Request) (string, options) {
	data := req.Interaction.ApplicationCommandData()
	opts := data.Options
	sub := ""
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		sub = opts[0].Name
		opts = opts[0].Options
	}
	out := make(options, len(opts))
	for _, o := range opts {
		out[o.Name] = o
	}
	return sub, out
}

func (o options) str(name, def string) string {
	if opt, ok := o[name]; ok {
		if v := strings.TrimSpace(opt.StringValue()); v != "" {
			return v
		}
	}
	return def
}

// text returns the option exactly as typed.
func (o options) text(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func (o options) num(name string, def int) int {
	if opt, ok := o[name]; ok {
		return int(opt.IntValue())
	}
	return def
}

func (o options) flag(name string) bool {
	if opt, ok := o[name]; ok {
		return opt.BoolValue()
	}
	return false
}

// user resolves a user option from the interaction's resolved data, falling
// back to an id-only user.
func (o options) user(req *interactions.Request, name string) *discordgo.User {
	opt, ok := o[name]
	if !ok {
		return nil
	}
	id, _ := opt.Value.(string)
	if id == "" {
		return nil
	}
	if resolved := req.Interaction.ApplicationCommandData().Resolved; resolved != nil {
		if u, ok := resolved.Users[id]; ok && u != nil {
			return u
		}
	}
	return &discordgo.User{ID: id}
}

// targetUser returns the user option, or the invoker when it is absent.
func targetUser(req *interactions.Request, o options) (*discordgo.User, bool) {
	self := req.User()
	if u := o.user(req, "user"); u != nil && u.ID != self.ID {
		return u, false
	}
	return self, true
}

// modalValues collects the text inputs of a submitted modal by customId.
func modalValues(req *interactions.Request) map[string]string {
	values := make(map[string]string)
	for _, c := range req.Interaction.ModalSubmitData().Components {
		var row []discordgo.MessageComponent
		switch r := c.(type) {
		case *discordgo.ActionsRow:
			row = r.Components
		case discordgo.ActionsRow:
			row = r.Components
		}
		for _, inner := range row {
			switch in := inner.(type) {
			case *discordgo.TextInput:
				values[in.CustomID] = strings.TrimSpace(in.Value)
			case discordgo.TextInput:
				values[in.CustomID] = strings.TrimSpace(in.Value)
			}
		}
	}
	return values
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
