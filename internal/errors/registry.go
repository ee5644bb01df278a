package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config (M100-M119)
	"M101": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
		Detail:   "marquee.json or marquee.yaml exists but could not be read.",
	},
	"M102": {
		Category: CategoryConfig,
		Message:  "Config file invalid",
		Detail:   "The config file could not be decoded.",
	},
	"M103": {
		Category: CategoryConfig,
		Message:  "Config value invalid",
		Detail:   "A config value is out of range or malformed.",
	},

	// CLI (M120-M139)
	"M120": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
		Detail:   "The command received an argument it cannot use.",
	},

	// API (M140-M159)
	"M140": {
		Category: CategoryAPI,
		Message:  "Backend request failed",
		Detail:   "The ticket API returned an error or could not be reached.",
	},

	// Publish (M160-M179)
	"M160": {
		Category: CategoryPublish,
		Message:  "Publish target not configured",
		Detail:   "publish.bucket must be set to upload the bundle.",
	},
	"M161": {
		Category: CategoryPublish,
		Message:  "Upload failed",
		Detail:   "A bundle file could not be uploaded.",
	},
	"M162": {
		Category: CategoryPublish,
		Message:  "Bundle directory missing",
		Detail:   "build.dist does not exist or is not a directory.",
	},
	"M163": {
		Category: CategoryPublish,
		Message:  "AWS credentials missing",
		Detail:   "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set to publish.",
	},

	// Server (M180-M199)
	"M180": {
		Category: CategoryServer,
		Message:  "Dev server failed",
		Detail:   "The development server stopped with an error.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
