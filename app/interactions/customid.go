package interactions

import (
	"sort"
	"strings"
)

// Kind identifies what a button customId asks for.
type Kind int

const (
	KindUnknown Kind = iota
	KindCheckInConfirm
	KindCheckInCancel
	KindCheerSend
	KindCheerCancel
	KindScheduleDeleteConfirm
	KindScheduleDeleteCancel
	KindRegister
	KindLearnMore
	KindPage
)

// ScheduleModalID is the customId of the schedule creation modal.
const ScheduleModalID = "schedule_modal"

var kindPrefixes = map[Kind]string{
	KindCheckInConfirm:        "checkin_confirm_",
	KindCheckInCancel:         "checkin_cancel_",
	KindCheerSend:             "cheer_send_",
	KindCheerCancel:           "cheer_cancel_",
	KindScheduleDeleteConfirm: "schedule_delete_confirm_",
	KindScheduleDeleteCancel:  "schedule_delete_cancel_",
	KindRegister:              "register_",
	KindLearnMore:             "learn_more_",
	KindPage:                  "page_",
}

type prefixEntry struct {
	kind   Kind
	prefix string
}

// decodeOrder holds the prefix table longest-first so a shorter prefix can
// never shadow a longer one.
var decodeOrder = func() []prefixEntry {
	out := make([]prefixEntry, 0, len(kindPrefixes))
	for k, p := range kindPrefixes {
		out = append(out, prefixEntry{kind: k, prefix: p})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].prefix) != len(out[j].prefix) {
			return len(out[i].prefix) > len(out[j].prefix)
		}
		return out[i].prefix < out[j].prefix
	})
	return out
}()

func (k Kind) String() string {
	if p, ok := kindPrefixes[k]; ok {
		return strings.TrimSuffix(p, "_")
	}
	return "unknown"
}

// CustomID is a decoded button id.
type CustomID struct {
	Kind    Kind
	Payload string
}

// Decode parses a raw customId. Unrecognized ids report ok=false.
func Decode(raw string) (CustomID, bool) {
	for _, e := range decodeOrder {
		if payload, ok := strings.CutPrefix(raw, e.prefix); ok {
			return CustomID{Kind: e.kind, Payload: payload}, true
		}
	}
	return CustomID{Kind: KindUnknown, Payload: raw}, false
}

// Encode builds the customId for kind carrying payload.
func Encode(kind Kind, payload string) string {
	return kindPrefixes[kind] + payload
}

func (c CustomID) String() string {
	if c.Kind == KindUnknown {
		return c.Payload
	}
	return Encode(c.Kind, c.Payload)
}
