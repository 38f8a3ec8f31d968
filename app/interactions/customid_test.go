package interactions

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		raw         string
		wantKind    Kind
		wantPayload string
		wantOK      bool
	}{
		{"checkin_confirm_123", KindCheckInConfirm, "123", true},
		{"checkin_cancel_123", KindCheckInCancel, "123", true},
		{"cheer_send_987", KindCheerSend, "987", true},
		{"cheer_cancel_987", KindCheerCancel, "987", true},
		{"schedule_delete_confirm_u1", KindScheduleDeleteConfirm, "u1", true},
		{"schedule_delete_cancel_u1", KindScheduleDeleteCancel, "u1", true},
		{"register_42", KindRegister, "42", true},
		{"learn_more_42", KindLearnMore, "42", true},
		{"page_gallery:u1:all:5:2", KindPage, "gallery:u1:all:5:2", true},
		{"register_", KindRegister, "", true},
		{"something_else", KindUnknown, "something_else", false},
		{"", KindUnknown, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Decode(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Decode(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got.Kind != tt.wantKind || got.Payload != tt.wantPayload {
				t.Fatalf("Decode(%q) = {%s %q}, want {%s %q}", tt.raw, got.Kind, got.Payload, tt.wantKind, tt.wantPayload)
			}
		})
	}
}

func TestDecode_LongestPrefixFirst(t *testing.T) {
	for i := 1; i < len(decodeOrder); i++ {
		if len(decodeOrder[i-1].prefix) < len(decodeOrder[i].prefix) {
			t.Fatalf("prefix %q sorted before longer %q", decodeOrder[i-1].prefix, decodeOrder[i].prefix)
		}
	}
}

func TestEncode_RoundTrips(t *testing.T) {
	kinds := []Kind{
		KindCheckInConfirm, KindCheckInCancel, KindCheerSend, KindCheerCancel,
		KindScheduleDeleteConfirm, KindScheduleDeleteCancel, KindRegister, KindLearnMore, KindPage,
	}
	for _, k := range kinds {
		raw := Encode(k, "payload_with_underscores")
		got, ok := Decode(raw)
		if !ok || got.Kind != k || got.Payload != "payload_with_underscores" {
			t.Fatalf("Encode/Decode(%s) = %+v, %v", k, got, ok)
		}
		if got.String() != raw {
			t.Fatalf("CustomID.String() = %q, want %q", got.String(), raw)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := KindCheerSend.String(); got != "cheer_send" {
		t.Fatalf("KindCheerSend.String() = %q", got)
	}
	if got := KindUnknown.String(); got != "unknown" {
		t.Fatalf("KindUnknown.String() = %q", got)
	}
}
