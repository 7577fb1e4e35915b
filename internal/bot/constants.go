package bot

// Dialog steps stored in the session.
const (
	StepDashboard  = "dashboard"
	StepAwaitValue = "await_value"
)

// Callback data prefixes, "<action>:<field>".
const (
	CallbackIncrement = "inc"
	CallbackDecrement = "dec"
	CallbackEdit      = "edit"
	CallbackReset     = "reset"
	CallbackExport    = "export"
)

const rateLimitAction = "recalc"
