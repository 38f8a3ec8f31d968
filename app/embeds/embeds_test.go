package embeds

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
	"github.com/waddletracker/discord-bot/app/api"
)

func TestMerge(t *testing.T) {
	fallback := &discordgo.MessageEmbed{
		Title:       "💪 Workout Logged!",
		Description: "local",
		Color:       ColorSuccess,
		Fields:      []*discordgo.MessageEmbedField{{Name: "a", Value: "1"}},
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: "https://cdn/avatar.png"},
	}

	tests := []struct {
		name string
		dto  *api.Embed
		want *discordgo.MessageEmbed
	}{
		{
			name: "nil dto keeps fallback",
			dto:  nil,
			want: fallback,
		},
		{
			name: "dto fields replace fallback fields",
			dto: &api.Embed{
				Title:  "🔥 Day 5!",
				Fields: []api.EmbedField{{Name: "Streak", Value: "5 days", Inline: true}},
				Footer: &api.EmbedFooter{Text: "keep going"},
			},
			want: &discordgo.MessageEmbed{
				Title:       "🔥 Day 5!",
				Description: "local",
				Color:       ColorSuccess,
				Fields:      []*discordgo.MessageEmbedField{{Name: "Streak", Value: "5 days", Inline: true}},
				Footer:      &discordgo.MessageEmbedFooter{Text: "keep going"},
				Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: "https://cdn/avatar.png"},
			},
		},
		{
			name: "empty values do not override",
			dto:  &api.Embed{Color: 0, Image: &api.EmbedImage{}, Footer: &api.EmbedFooter{}},
			want: fallback,
		},
		{
			name: "image and color from dto",
			dto:  &api.Embed{Color: 0x123456, Image: &api.EmbedImage{URL: "https://img/1.png"}},
			want: &discordgo.MessageEmbed{
				Title:       "💪 Workout Logged!",
				Description: "local",
				Color:       0x123456,
				Fields:      []*discordgo.MessageEmbedField{{Name: "a", Value: "1"}},
				Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: "https://cdn/avatar.png"},
				Image:       &discordgo.MessageEmbedImage{URL: "https://img/1.png"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.dto, fallback)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if fallback.Title != "💪 Workout Logged!" || len(fallback.Fields) != 1 || fallback.Fields[0].Name != "a" {
		t.Fatalf("Merge modified the fallback: %+v", fallback)
	}
}

func TestBuildersAreDeterministic(t *testing.T) {
	streak := api.StreakData{CurrentStreak: 5, LongestStreak: 12, TotalCheckIns: 45}
	a := Streak("1", "https://a", true, streak)
	b := Streak("1", "https://a", true, streak)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("identical input produced different embeds:\n%s", diff)
	}
	if a.Timestamp != "" {
		t.Fatalf("builders must not stamp, got %q", a.Timestamp)
	}

	now := time.Date(2026, 4, 2, 10, 30, 0, 0, time.FixedZone("x", 3600))
	Stamp(a, now)
	if a.Timestamp != "2026-04-02T09:30:00Z" {
		t.Fatalf("Stamp() = %q", a.Timestamp)
	}
}

func TestFormatStreak(t *testing.T) {
	tests := map[int]string{0: "No streak", -1: "No streak", 1: "1 day", 2: "2 days", 30: "30 days"}
	for in, want := range tests {
		if got := FormatStreak(in); got != want {
			t.Fatalf("FormatStreak(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestMotivationThresholds(t *testing.T) {
	streaks := []struct {
		days int
		want string
	}{
		{0, "Start your fitness journey"},
		{6, "Great start"},
		{7, "solid habit"},
		{29, "solid habit"},
		{30, "champion"},
	}
	for _, tt := range streaks {
		if got := StreakMotivation(tt.days); !strings.Contains(got, tt.want) {
			t.Fatalf("StreakMotivation(%d) = %q, want it to contain %q", tt.days, got, tt.want)
		}
	}

	rates := []struct {
		rate float64
		want string
	}{
		{95, "Outstanding"},
		{90, "Outstanding"},
		{75, "Great job"},
		{50, "Good progress"},
		{49.9, "You can do this"},
	}
	for _, tt := range rates {
		if got := ConsistencyMotivation(tt.rate); !strings.Contains(got, tt.want) {
			t.Fatalf("ConsistencyMotivation(%v) = %q, want it to contain %q", tt.rate, got, tt.want)
		}
	}
}

func TestPagination(t *testing.T) {
	id := func(p int) string {
		if p == 0 {
			return "page_x:info"
		}
		return "page_x:" + string(rune('0'+p))
	}

	if got := Pagination(1, 1, id); got != nil {
		t.Fatalf("single page should have no buttons, got %v", got)
	}

	tests := []struct {
		name   string
		page   int
		pages  int
		labels []string
	}{
		{"first page", 1, 3, []string{"1 / 3", "Next ▶️"}},
		{"middle page", 2, 3, []string{"◀️ Previous", "2 / 3", "Next ▶️"}},
		{"last page", 3, 3, []string{"◀️ Previous", "3 / 3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Pagination(tt.page, tt.pages, id)
			if len(rows) != 1 {
				t.Fatalf("expected 1 row, got %d", len(rows))
			}
			row := rows[0].(discordgo.ActionsRow)
			var labels []string
			for _, c := range row.Components {
				btn := c.(discordgo.Button)
				labels = append(labels, btn.Label)
				if strings.Contains(btn.Label, "/") && !btn.Disabled {
					t.Fatalf("page indicator must be disabled")
				}
			}
			if diff := cmp.Diff(tt.labels, labels); diff != "" {
				t.Fatalf("labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeaderboardPage(t *testing.T) {
	entries := make([]api.LeaderboardEntry, 0, 12)
	for i := 1; i <= 12; i++ {
		entries = append(entries, api.LeaderboardEntry{UserID: "u" + string(rune('a'+i)), Value: 100 - i, Rank: i})
	}
	data := &api.LeaderboardData{
		Entries: entries,
		Embed:   &api.Embed{Title: "🔥 Backend Title", Description: "ignored", Fields: []api.EmbedField{{Name: "x", Value: "y"}}},
	}

	first, pages := LeaderboardPage(Leaderboard{Title: "🔥 Current Streak Leaderboard", Color: ColorStreak, Unit: "days", Limit: 12, Page: 1, Data: data})
	if pages != 2 {
		t.Fatalf("pages = %d, want 2", pages)
	}
	if first.Title != "🔥 Backend Title" {
		t.Fatalf("title = %q", first.Title)
	}
	if len(first.Fields) != 0 {
		t.Fatalf("backend fields should not be rendered alongside local entries")
	}
	if !strings.HasPrefix(first.Description, "🥇 <@ub> - **99 days**") {
		t.Fatalf("description = %q", first.Description)
	}

	second, _ := LeaderboardPage(Leaderboard{Title: "t", Limit: 12, Page: 9, Data: data})
	if strings.Count(second.Description, "\n") != 1 {
		t.Fatalf("second page should hold 2 entries, got %q", second.Description)
	}

	empty, pages := LeaderboardPage(Leaderboard{Title: "📊 Check-in Leaderboard", Limit: 10, Page: 1})
	if pages != 1 || empty.Description != "No data available" {
		t.Fatalf("empty leaderboard = %+v, pages %d", empty, pages)
	}
}

func TestNotificationsRendering(t *testing.T) {
	page := api.NotificationPage{
		Notifications: []api.Notification{
			{ID: "n1", Type: "cheer", Title: "Someone cheered", Message: "go!", Read: false},
			{ID: "n2", Type: "mystery", Title: "Hello", Message: "hi", Read: true},
		},
		Pagination:  api.Pagination{Page: 2, Limit: 10, Total: 12, Pages: 2},
		UnreadCount: 1,
	}
	e := Notifications(page, false)
	value := e.Fields[0].Value
	for _, want := range []string{"**11.** 🔴 🎉 Someone cheered", "**12.** ✅ 📢 Hello", "`n1`"} {
		if !strings.Contains(value, want) {
			t.Fatalf("notification list missing %q:\n%s", want, value)
		}
	}

	empty := Notifications(api.NotificationPage{}, true)
	if empty.Fields[0].Value != "No unread notifications." {
		t.Fatalf("unexpected empty text %q", empty.Fields[0].Value)
	}
}

func TestGalleryRendering(t *testing.T) {
	page := api.GalleryPage{
		Photos: []api.CheckIn{
			{Status: "went", Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
			{Status: "missed", Date: time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC), PhotoURL: "https://img/2.png"},
		},
		Pagination: api.Pagination{Page: 1, Limit: 10, Total: 2, Pages: 1},
	}
	e := Gallery("42", false, "all", page)
	if e.Title != "📸 User Photo Gallery" {
		t.Fatalf("title = %q", e.Title)
	}
	if e.Image == nil || e.Image.URL != "https://img/2.png" {
		t.Fatalf("expected first available photo as image, got %+v", e.Image)
	}
	if !strings.Contains(e.Fields[0].Value, "**1.** ✅ Jan 5, 2026") {
		t.Fatalf("unexpected list %q", e.Fields[0].Value)
	}

	none := Gallery("42", true, "went", api.GalleryPage{})
	if none.Fields[0].Value != "No photos found with status: went" {
		t.Fatalf("unexpected empty text %q", none.Fields[0].Value)
	}
}

func TestTroubleshootingError(t *testing.T) {
	e := TroubleshootingError(Troubleshooting{
		Title: "Workout Error", Action: "log your workout", Command: "workout", DiscordID: "42", Err: "boom",
	})
	if e.Title != "❌ Workout Error" {
		t.Fatalf("title = %q", e.Title)
	}
	if !strings.Contains(e.Description, "**Error:** boom") || !strings.HasPrefix(e.Description, "**User:** <@42>") {
		t.Fatalf("description = %q", e.Description)
	}
	if e.Fields[0].Name != "🔧 Troubleshooting" || !strings.Contains(e.Fields[0].Value, "`/workout`") {
		t.Fatalf("field = %+v", e.Fields[0])
	}
}

func TestCommandHelp(t *testing.T) {
	for _, topic := range HelpTopics() {
		e := CommandHelp(topic)
		if strings.Contains(e.Description, "Command not found") {
			t.Fatalf("missing help text for %q", topic)
		}
	}
	if e := CommandHelp("nope"); !strings.Contains(e.Description, "Command not found") {
		t.Fatalf("unknown command should say not found")
	}
}

func TestTodayActivity(t *testing.T) {
	tests := map[string]string{"workout": "Workout Day 💪", "rest": "Rest Day 😴", "none": "No activity scheduled", "": "No activity scheduled"}
	for in, want := range tests {
		if got := TodayActivity(in); got != want {
			t.Fatalf("TodayActivity(%q) = %q, want %q", in, got, want)
		}
	}
}
