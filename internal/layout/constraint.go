package layout

// Attribute names a dimension the controller pins.
type Attribute int

const (
	ScrollHeight Attribute = iota
	TextWidth
	TextHeight
)

func (a Attribute) String() string {
	switch a {
	case ScrollHeight:
		return "scroll_height"
	case TextWidth:
		return "text_width"
	case TextHeight:
		return "text_height"
	default:
		return "unknown"
	}
}

// Constraint pins one attribute to a constant.
type Constraint struct {
	Attribute Attribute
	Value     int
	active    bool
}

// Active reports whether the constraint is live.
func (c *Constraint) Active() bool { return c != nil && c.active }

// ConstraintSet holds at most one live constraint per attribute. Replacing
// deactivates the old constraint before activating the new one.
type ConstraintSet struct {
	live        map[Attribute]*Constraint
	replacement int
}

// NewConstraintSet returns an empty set.
func NewConstraintSet() *ConstraintSet {
	return &ConstraintSet{live: make(map[Attribute]*Constraint)}
}

// Replace pins attr to value and returns the new and previous constraints.
// prev is nil the first time attr is pinned.
func (s *ConstraintSet) Replace(attr Attribute, value int) (cur, prev *Constraint) {
	prev = s.live[attr]
	if prev != nil {
		prev.active = false
	}
	cur = &Constraint{Attribute: attr, Value: value}
	cur.active = true
	s.live[attr] = cur
	s.replacement++
	return cur, prev
}

// Value returns the live value for attr.
func (s *ConstraintSet) Value(attr Attribute) (int, bool) {
	c, ok := s.live[attr]
	if !ok || !c.active {
		return 0, false
	}
	return c.Value, true
}

// ActiveCount is the number of live constraints.
func (s *ConstraintSet) ActiveCount() int {
	n := 0
	for _, c := range s.live {
		if c.active {
			n++
		}
	}
	return n
}

// Replacements counts Replace calls since creation.
func (s *ConstraintSet) Replacements() int { return s.replacement }
