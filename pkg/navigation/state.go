package navigation

import "github.com/AndreasArvidsson/jRouter/pkg/router"

// State is the lifecycle state of a Router.
type State int

const (
	StateIdle State = iota
	StateDispatching
	StateLoading
	StateHalted
	StateNotFound
	StateLoaded
	StateLoadFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDispatching:
		return "dispatching"
	case StateLoading:
		return "loading"
	case StateHalted:
		return "halted"
	case StateNotFound:
		return "not_found"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// Outcome describes how a dispatch or resume ended.
type Outcome int

const (
	// OutcomeLoaded means the matched route's content was rendered.
	OutcomeLoaded Outcome = iota

	// OutcomeFallback means no route matched and the "404" route was rendered.
	OutcomeFallback

	// OutcomeNotFound means nothing matched and the default message was rendered.
	OutcomeNotFound

	// OutcomeHalted means the pre hook vetoed the navigation.
	OutcomeHalted

	// OutcomeLoadFailed means the content fetch failed.
	OutcomeLoadFailed

	// OutcomeSuperseded means a newer dispatch replaced this one mid-fetch.
	OutcomeSuperseded

	// OutcomeNoop means Resume had nothing to continue.
	OutcomeNoop
)

// String returns the outcome name, used as a metrics label.
func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeFallback:
		return "fallback"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeHalted:
		return "halted"
	case OutcomeLoadFailed:
		return "load_failed"
	case OutcomeSuperseded:
		return "superseded"
	case OutcomeNoop:
		return "noop"
	default:
		return "unknown"
	}
}

// NavigateResult contains the result of a navigation operation.
type NavigateResult struct {
	// Path is the dispatched path.
	Path string

	// Match is the route that was loaded or halted. Nil for OutcomeNotFound
	// and OutcomeNoop.
	Match *router.MatchResult

	// Outcome is how the navigation ended.
	Outcome Outcome

	// Err is the load error for OutcomeLoadFailed, or the misuse warning
	// for OutcomeNoop.
	Err error
}
