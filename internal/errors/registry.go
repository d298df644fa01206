package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Hook Errors (E101-E102)
	// ============================================

	"E101": {
		Category: CategoryHook,
		Message:  "Hook called outside component render",
		Detail:   "UseState, UseEffect, UseRef and UseUpdate may only be called while a component function is being rendered by a scheduler.",
		DocURL:   "https://fiber.vango.dev/errors/E101",
	},
	"E102": {
		Category: CategoryHook,
		Message:  "Hook order changed between renders",
		Detail:   "Hooks are matched to their previous cells by call position. Call them unconditionally and in the same order on every render.",
		DocURL:   "https://fiber.vango.dev/errors/E102",
	},

	// ============================================
	// Host Errors (E103)
	// ============================================

	"E103": {
		Category: CategoryHost,
		Message:  "Host adapter mutation failed",
		Detail:   "The host adapter returned an error. The remainder of the commit was aborted and no effects were run for this pass.",
		DocURL:   "https://fiber.vango.dev/errors/E103",
	},

	// ============================================
	// Render Errors (E104-E105)
	// ============================================

	"E104": {
		Category: CategoryRender,
		Message:  "Component render failed",
		Detail:   "A component function panicked while rendering. The in-progress pass was abandoned and the current tree is unchanged.",
		DocURL:   "https://fiber.vango.dev/errors/E104",
	},
	"E105": {
		Category: CategoryRender,
		Message:  "Render called without a container",
		Detail:   "Render needs a host handle to attach the tree to.",
		DocURL:   "https://fiber.vango.dev/errors/E105",
	},

	// ============================================
	// Scene Errors (E120-E121)
	// ============================================

	"E120": {
		Category: CategoryScene,
		Message:  "Invalid scene file",
		Detail:   "The scene file could not be parsed into a view tree.",
		DocURL:   "https://fiber.vango.dev/errors/E120",
	},
	"E121": {
		Category: CategoryScene,
		Message:  "Unknown scene component",
		Detail:   "The scene references a component that is not registered.",
		DocURL:   "https://fiber.vango.dev/errors/E121",
	},

	// ============================================
	// Config Errors (E130-E131)
	// ============================================

	"E130": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "fiber.json contains an invalid value.",
		DocURL:   "https://fiber.vango.dev/errors/E130",
	},
	"E131": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No fiber.json was found in the directory or any parent.",
		DocURL:   "https://fiber.vango.dev/errors/E131",
	},
}

// GetAllCodes returns all registered error codes, sorted.
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

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
