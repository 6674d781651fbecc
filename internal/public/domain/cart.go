package domain

import (
	"fmt"
	"math"
)

// DefaultPlatformFeeRate is the commission added on top of the cart subtotal.
const DefaultPlatformFeeRate = 0.30

// CartLine is one distinct item in a cart.
type CartLine struct {
	ItemID     string
	ProductID  string
	BusinessID string
	Name       string
	Image      string
	UnitPrice  float64
	Quantity   int
}

// LineTotal is UnitPrice × Quantity.
func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CartState is the line collection plus totals derived from it.
// Subtotal, Fee and Total always equal Totals() of the same state.
type CartState struct {
	Lines           []CartLine
	PlatformFeeRate float64
	Subtotal        float64
	Fee             float64
	Total           float64
}

// CartTotals is what the checkout boundary reads once on order submission.
type CartTotals struct {
	Subtotal float64
	Fee      float64
	Total    float64
}

// NewCart returns an empty cart charging feeRate.
func NewCart(feeRate float64) CartState {
	return CartState{PlatformFeeRate: feeRate}
}

// Totals recomputes the totals from the current lines.
// The fee is rounded to the nearest whole currency unit first and then added to the subtotal.
func (s CartState) Totals() CartTotals {
	subtotal := 0.0
	for _, line := range s.Lines {
		subtotal += line.LineTotal()
	}
	fee := math.Round(subtotal * s.PlatformFeeRate)
	return CartTotals{Subtotal: subtotal, Fee: fee, Total: subtotal + fee}
}

// ItemCount is the sum of quantities across lines.
func (s CartState) ItemCount() int {
	count := 0
	for _, line := range s.Lines {
		count += line.Quantity
	}
	return count
}

// Line returns the line holding itemID.
func (s CartState) Line(itemID string) (CartLine, bool) {
	for _, line := range s.Lines {
		if line.ItemID == itemID {
			return line, true
		}
	}
	return CartLine{}, false
}

// CartAction is a command applied to a cart by ReduceCart.
type CartAction interface {
	cartAction()
}

// AddItem appends Line, or bumps the quantity of the line sharing its ItemID.
// Quantity defaults to 1 when not positive.
type AddItem struct {
	Line     CartLine
	Quantity int
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
type UpdateQuantity struct {
	ItemID   string
	Quantity int
}

// RemoveItem deletes a line.
type RemoveItem struct {
	ItemID string
}

// ClearCart drops every line.
type ClearCart struct{}

func (AddItem) cartAction()        {}
func (UpdateQuantity) cartAction() {}
func (RemoveItem) cartAction()     {}
func (ClearCart) cartAction()      {}

// ReduceCart applies action to state and returns the new state with totals recomputed.
// The input state is never modified. Unknown or missing item ids are no-ops, not errors.
func ReduceCart(state CartState, action CartAction) (CartState, error) {
	next := CartState{
		Lines:           append([]CartLine(nil), state.Lines...),
		PlatformFeeRate: state.PlatformFeeRate,
	}

	switch a := action.(type) {
	case AddItem:
		qty := a.Quantity
		if qty <= 0 {
			qty = 1
		}
		if idx := indexOfLine(next.Lines, a.Line.ItemID); idx >= 0 {
			next.Lines[idx].Quantity += qty
		} else {
			line := a.Line
			line.Quantity = qty
			next.Lines = append(next.Lines, line)
		}
	case UpdateQuantity:
		idx := indexOfLine(next.Lines, a.ItemID)
		if idx < 0 {
			break
		}
		if a.Quantity <= 0 {
			next.Lines = removeLine(next.Lines, idx)
			break
		}
		next.Lines[idx].Quantity = a.Quantity
	case RemoveItem:
		if idx := indexOfLine(next.Lines, a.ItemID); idx >= 0 {
			next.Lines = removeLine(next.Lines, idx)
		}
	case ClearCart:
		next.Lines = nil
	default:
		return state, fmt.Errorf("%w: unsupported cart action %T", ErrInvalidArgument, action)
	}

	return next.withTotals(), nil
}

// ReduceCartAll folds actions over state, stopping at the first invalid action.
func ReduceCartAll(state CartState, actions ...CartAction) (CartState, error) {
	var err error
	for _, action := range actions {
		state, err = ReduceCart(state, action)
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

// WithFeeRate returns a copy of the cart charging rate, with totals recomputed.
func (s CartState) WithFeeRate(rate float64) CartState {
	s.Lines = append([]CartLine(nil), s.Lines...)
	s.PlatformFeeRate = rate
	return s.withTotals()
}

func (s CartState) withTotals() CartState {
	totals := s.Totals()
	s.Subtotal = totals.Subtotal
	s.Fee = totals.Fee
	s.Total = totals.Total
	return s
}

func indexOfLine(lines []CartLine, itemID string) int {
	for i, line := range lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

func removeLine(lines []CartLine, idx int) []CartLine {
	result := make([]CartLine, 0, len(lines)-1)
	result = append(result, lines[:idx]...)
	return append(result, lines[idx+1:]...)
}
