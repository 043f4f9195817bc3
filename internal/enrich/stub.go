package enrich

import (
	"context"
	"fmt"
	"strings"

	"match-highlights/internal/models"
)

// StubEnricher builds a predictable title and summary from the highlight's
// own fields. It never fails and touches no network, which makes it the
// right default for development and tests.
type StubEnricher struct{}

func NewStubEnricher() *StubEnricher {
	return &StubEnricher{}
}

func (e *StubEnricher) Enrich(_ context.Context, highlight *models.Highlight) Result {
	eventType := strings.TrimSpace(highlight.EventType)
	team := strings.TrimSpace(highlight.Team)
	player := strings.TrimSpace(highlight.Player)
	description := strings.TrimSpace(highlight.Description)

	teamLabel := teamLabel(team)

	title := strings.TrimSpace(fmt.Sprintf("%s %s by %s", teamLabel, strings.ToUpper(eventType), player))

	timePart := highlight.OccurredAt.Local().Format("2006-01-02 15:04")
	summary := fmt.Sprintf("%s recorded a %s for the %s side on %s. Source says: %q",
		player, strings.ToLower(eventType), strings.ToLower(teamLabel), timePart, description)

	return Result{
		Success: true,
		Title:   title,
		Summary: summary,
	}
}

// teamLabel normalizes the team field into something a person would expect
// to read. Custom names (like "Barcelona") pass through untouched.
func teamLabel(team string) string {
	switch strings.ToLower(team) {
	case "home":
		return "Home"
	case "away":
		return "Away"
	case "":
		return "Unknown side"
	default:
		return team
	}
}
