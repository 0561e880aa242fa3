package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mintabi/internal/board"
	"github.com/alexanderramin/mintabi/internal/domain"
)

// resolvePlanID accepts a full plan id or an unambiguous id prefix.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	_, err := app.Plans.Get(ctx, input)
	if err == nil {
		return input, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	plans, err := app.Plans.List(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", domain.ErrNotFound, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveDayID accepts a day column id or its 1-based position.
func resolveDayID(snap board.Snapshot, input string) (string, error) {
	days := snap.Days()
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(days) {
			return "", fmt.Errorf("%w: day %d (plan has %d days)", domain.ErrUnknownColumn, n, len(days))
		}
		return days[n-1].ID, nil
	}
	if _, ok := snap.Column(input); ok {
		return input, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnknownColumn, input)
}

// resolveColumnID is resolveDayID that also accepts the stock bucket.
func resolveColumnID(snap board.Snapshot, input string) (string, error) {
	if input == domain.StockColumnID {
		return input, nil
	}
	return resolveDayID(snap, input)
}

// resolveCardID accepts a card id or an unambiguous id prefix.
func resolveCardID(snap board.Snapshot, input string) (string, error) {
	if _, ok := snap.Card(input); ok {
		return input, nil
	}
	var matches []string
	for _, c := range snap.ListCards() {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownCard, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("card ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
