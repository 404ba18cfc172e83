package reconcile

// Action describes how an attribute is merged when a model exists in both
// the persisted document and the freshly fetched records.
type Action int

const (
	// ActionOverwrite replaces the existing value with the new one.
	ActionOverwrite Action = iota

	// ActionUnion treats both values as sets of tags and stores their union,
	// deduplicated and sorted for reproducible output.
	ActionUnion
)

// Policy maps attribute names to merge actions. Attributes without an entry
// fall back to ActionOverwrite; unknown attributes are merged, never dropped.
type Policy struct {
	actions map[string]Action
}

// Known optional attributes. The set is open (new attributes may appear over
// time); listing them here documents their expected merge behavior.
var defaultActions = map[string]Action{
	"context_window":    ActionOverwrite,
	"max_output_tokens": ActionOverwrite,
	"pricing":           ActionOverwrite,
	"deprecation_date":  ActionOverwrite,
	"release_date":      ActionOverwrite,
	"capabilities":      ActionUnion,
}

// DefaultPolicy returns the standard merge policy: new values win, except
// capability lists, which are unioned with what is already on disk.
//
// Historically, different update paths disagreed on whether fetched data
// should override hand-edited fields; this policy is the single deterministic
// resolution of that conflict.
func DefaultPolicy() *Policy {
	actions := make(map[string]Action, len(defaultActions))
	for k, v := range defaultActions {
		actions[k] = v
	}
	return &Policy{actions: actions}
}

// WithUnion returns a copy of the policy that additionally unions the named
// attributes.
func (p *Policy) WithUnion(attrs ...string) *Policy {
	actions := make(map[string]Action, len(p.actions)+len(attrs))
	for k, v := range p.actions {
		actions[k] = v
	}
	for _, attr := range attrs {
		actions[attr] = ActionUnion
	}
	return &Policy{actions: actions}
}

// ActionFor returns the merge action for an attribute.
func (p *Policy) ActionFor(attr string) Action {
	if p == nil {
		return ActionOverwrite
	}
	if action, ok := p.actions[attr]; ok {
		return action
	}
	return ActionOverwrite
}
