package game

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidSymbol = errors.New("symbol must be exactly 6 uppercase letters")
	ErrStockNotFound = errors.New("stock not found")
	ErrInvalidAction = errors.New("invalid action")
)

var symbolRE = regexp.MustCompile(`^[A-Z]{6}$`)

// NormalizeSymbol upper-cases a ticker typed by a user and checks it against
// the listing format. Reducers never call it; it guards input at the edges.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolRE.MatchString(s) {
		return "", ErrInvalidSymbol
	}
	return s, nil
}

// ListedStock resolves a user-typed ticker against the World's listings.
func ListedStock(w World, symbol string) (Stock, error) {
	s, err := NormalizeSymbol(symbol)
	if err != nil {
		return Stock{}, err
	}
	st, ok := w.FindStock(s)
	if !ok {
		return Stock{}, ErrStockNotFound
	}
	return st, nil
}

// CheckAction guards entity invariants reducers leave to the caller. It runs
// at the edges before an action is stamped and journaled.
func CheckAction(a Action) error {
	switch p := a.Payload.(type) {
	case AddProjectPayload:
		if p.RequiredPoints <= 0 {
			return fmt.Errorf("%w: %s requires requiredPoints > 0", ErrInvalidAction, a.Type)
		}
	}
	return nil
}
