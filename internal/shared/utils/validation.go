package utils

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// Size limits (in bytes)
const (
	MaxJSONSize    = 1 * 1024 * 1024 // 1MB - maximum JSON request size
	MaxPayloadSize = 512 * 1024      // 512KB - window payload size limit
)

// String length limits
const (
	MaxIDLength       = 128
	MaxTitleLength    = 256
	MaxFileNameLength = 255
	MaxPathLength     = 1024
	MaxPayloadDepth   = 10
)

var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// ExtensionPattern matches a file extension association such as ".txt"
	ExtensionPattern = regexp.MustCompile(`^\.[a-zA-Z0-9]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateTitle validates a display title
func ValidateTitle(title, fieldName string) error {
	return ValidateString(title, fieldName, 1, MaxTitleLength, true)
}

// ValidateExtension validates a file association such as ".txt"
func ValidateExtension(ext string) error {
	if ext == "" {
		return nil
	}
	if !ExtensionPattern.MatchString(ext) {
		return fmt.Errorf("file association %q must look like \".ext\"", ext)
	}
	return nil
}

// ValidateFileName validates a bare file name
func ValidateFileName(name string) error {
	if err := ValidateString(name, "file name", 1, MaxFileNameLength, true); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("file name must not contain path separators")
	}
	return nil
}

// ValidatePath validates a slash-separated desktop file system path
func ValidatePath(p string) error {
	if err := ValidateString(p, "path", 1, MaxPathLength, true); err != nil {
		return err
	}
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("path must be absolute")
	}
	if path.Clean(p) != p {
		return fmt.Errorf("path must be clean")
	}
	return nil
}

// ValidatePayload checks size and nesting depth of a window payload
func ValidatePayload(payload map[string]interface{}) error {
	if payload == nil {
		return nil
	}

	data, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("payload is not serializable: %w", err)
	}
	if len(data) > MaxPayloadSize {
		return fmt.Errorf("payload size %d bytes exceeds maximum %d bytes", len(data), MaxPayloadSize)
	}

	return ValidateJSONDepth(payload, MaxPayloadDepth)
}

// ValidateJSONDepth checks if JSON nesting depth is within limits
func ValidateJSONDepth(data interface{}, maxDepth int) error {
	return checkDepth(data, 0, maxDepth)
}

func checkDepth(data interface{}, currentDepth int, maxDepth int) error {
	if currentDepth > maxDepth {
		return fmt.Errorf("JSON nesting depth %d exceeds maximum %d", currentDepth, maxDepth)
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	}

	return nil
}
