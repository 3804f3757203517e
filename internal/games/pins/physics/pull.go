package physics

import (
	"errors"
	"fmt"
)

var (
	ErrPinNotFound      = errors.New("physics: pin not found")
	ErrPinAlreadyPulled = errors.New("physics: pin already pulled")
)

// BlockedError is returned when a pin's blockers are still in place.
type BlockedError struct {
	PinID    int
	Blockers []int // Blocking pins that are not pulled yet
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("physics: pin %d is blocked by %v", e.PinID, e.Blockers)
}

// FindPin returns the index of the pin with the given ID, or -1.
func FindPin(pins []Pin, id int) int {
	for i := range pins {
		if pins[i].ID == id {
			return i
		}
	}
	return -1
}

// CanPull reports whether the pin may be pulled now. Blockers that do not
// exist in pins are ignored.
func CanPull(pins []Pin, id int) error {
	i := FindPin(pins, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrPinNotFound, id)
	}
	if pins[i].Pulled {
		return fmt.Errorf("%w: %d", ErrPinAlreadyPulled, id)
	}

	var waiting []int
	for _, b := range pins[i].BlockedBy {
		j := FindPin(pins, b)
		if j >= 0 && !pins[j].Pulled && !containsInt(waiting, b) {
			waiting = append(waiting, b)
		}
	}
	if len(waiting) > 0 {
		return &BlockedError{PinID: id, Blockers: waiting}
	}
	return nil
}

// Pull returns a copy of pins with the pin marked pulled.
// On error the input is returned unchanged.
func Pull(pins []Pin, id int) ([]Pin, error) {
	if err := CanPull(pins, id); err != nil {
		return pins, err
	}

	out := make([]Pin, len(pins))
	copy(out, pins)
	out[FindPin(out, id)].Pulled = true
	return out, nil
}

// AllPulled reports whether no pin is left in place.
func AllPulled(pins []Pin) bool {
	for _, p := range pins {
		if !p.Pulled {
			return false
		}
	}
	return true
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
