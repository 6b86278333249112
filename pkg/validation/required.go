package validation

// RequiredStrategy decides whether an absent value is an error in a given
// context. A nil strategy never requires a value.
type RequiredStrategy func(Context) bool

// IsRequired evaluates the strategy.
func (s RequiredStrategy) IsRequired(ctx Context) bool {
	if s == nil {
		return false
	}
	return s(ctx)
}

var (
	// Always requires a value in every context.
	Always RequiredStrategy = func(Context) bool { return true }
	// Never treats absence as acceptable.
	Never RequiredStrategy = func(Context) bool { return false }
	// OnCreate requires a value only when creating an entity.
	OnCreate RequiredStrategy = func(c Context) bool { return c == Create }
	// OnUpdate requires a value only when updating an entity.
	OnUpdate RequiredStrategy = func(c Context) bool { return c == Update }
	// OnCreateOrUpdate requires a value when creating or updating.
	OnCreateOrUpdate RequiredStrategy = func(c Context) bool { return c == Create || c == Update }
)

// OnContexts requires a value in any of the listed contexts, which is mostly
// useful together with Custom contexts.
func OnContexts(contexts ...Context) RequiredStrategy {
	set := append([]Context(nil), contexts...)
	return func(c Context) bool {
		for _, candidate := range set {
			if candidate == c {
				return true
			}
		}
		return false
	}
}
