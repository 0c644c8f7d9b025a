package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryConfig,
		Message:  "Options are required",
		Detail:   "The router was constructed without options.",
	},
	"E002": {
		Category: CategoryConfig,
		Message:  "Target not found",
		Detail:   "No renderer is available for the configured target container.",
	},
	"E003": {
		Category: CategoryConfig,
		Message:  "Content loader missing",
		Detail:   "A content loader is required to fetch route targets.",
	},
	"E004": {
		Category: CategoryConfig,
		Message:  "Location source missing",
		Detail:   "A location source is required to read and write the current path.",
	},
	"E005": {
		Category: CategoryConfig,
		Message:  "Invalid jrouter.json",
		Detail:   "The jrouter.json configuration file is malformed.",
	},
	"E006": {
		Category: CategoryConfig,
		Message:  "Invalid loader configuration",
		Detail:   "The content loader section is incomplete or names an unknown kind.",
	},

	// ============================================
	// Registration Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryRegistration,
		Message:  "Invalid route registration",
		Detail:   "Both a path pattern and a target resource are required.",
	},
	"E102": {
		Category: CategoryRegistration,
		Message:  "Invalid parameter constraint",
		Detail:   "The regular expression after the colon is empty or does not compile.",
	},
	"E103": {
		Category: CategoryRegistration,
		Message:  "Empty parameter name",
		Detail:   "Parameter segments must name the parameter, as in {id} or {id:\\d+}.",
	},

	// ============================================
	// Load Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryLoad,
		Message:  "Content load failed",
		Detail:   "The content loader could not fetch the route target.",
	},
	"E202": {
		Category: CategoryLoad,
		Message:  "Invalid navigation path",
		Detail:   "The path could not be resolved against the current location.",
	},
	"E203": {
		Category: CategoryLoad,
		Message:  "Invalid route parameter",
		Detail:   "A matched parameter value does not fit the field it is decoded into.",
	},

	// ============================================
	// Misuse Warnings (W301-W399)
	// ============================================

	"W301": {
		Category: CategoryMisuse,
		Message:  "No halted route available",
		Detail:   "Resume was called but no navigation is waiting to continue.",
	},

	// ============================================
	// CLI Errors (E401-E499)
	// ============================================

	"E401": {
		Category: CategoryCLI,
		Message:  "Config file not found",
		Detail:   "No jrouter.json was found in the given directory.",
	},
	"E402": {
		Category: CategoryCLI,
		Message:  "No routes configured",
		Detail:   "The configuration does not register any routes.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
