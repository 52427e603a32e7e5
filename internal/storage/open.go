package storage

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/temirov/cloudtree/internal/utils"
)

const (
	// SchemeFile selects the local filesystem; it is also used when a target has no scheme.
	SchemeFile = "file"
	// SchemeSQLite selects the SQLite object index backend.
	SchemeSQLite = "sqlite"

	// OptionDatabase names the SQLite database file.
	OptionDatabase = "database"
	// OptionTable names the SQLite table holding the entries.
	OptionTable = "table"

	optionSeparator = "="

	errorParseTargetFormat     = "parse target %q: %w"
	errorMissingOptionFormat   = "%s backend requires the %q option"
	errorUnknownOptionFormat   = "%w %q for the %s backend"
	errorUnsupportedTargetForm = "%w %q"
)

var acceptedOptions = map[string][]string{
	SchemeFile:   nil,
	SchemeSQLite: {OptionDatabase, OptionTable},
}

// ParseOptions converts key=value arguments into a map. Entries without a
// separator are ignored and later duplicates win.
func ParseOptions(arguments []string) map[string]string {
	options := make(map[string]string)
	for _, argument := range arguments {
		key, value, found := strings.Cut(argument, optionSeparator)
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		options[key] = strings.TrimSpace(value)
	}
	return options
}

// Open selects a backend from the target's scheme and returns it together with
// the backend path of the directory the target names.
func Open(target string, options map[string]string) (FileSystem, string, error) {
	scheme, backendPath, parseError := splitTarget(target)
	if parseError != nil {
		return nil, "", parseError
	}
	if validationError := validateOptions(scheme, options); validationError != nil {
		return nil, "", validationError
	}
	switch scheme {
	case SchemeFile:
		return NewLocalFileSystem(), backendPath, nil
	case SchemeSQLite:
		databasePath := options[OptionDatabase]
		if databasePath == "" {
			return nil, "", fmt.Errorf(errorMissingOptionFormat, SchemeSQLite, OptionDatabase)
		}
		backend, openError := NewSQLiteFileSystem(databasePath, options[OptionTable])
		if openError != nil {
			return nil, "", openError
		}
		return backend, backendPath, nil
	default:
		return nil, "", fmt.Errorf(errorUnsupportedTargetForm, ErrUnsupportedScheme, scheme)
	}
}

func splitTarget(target string) (string, string, error) {
	schemeSeparator := strings.Index(target, "://")
	// Single letter schemes are Windows drive letters.
	if schemeSeparator <= 1 {
		return SchemeFile, target, nil
	}
	parsed, parseError := url.Parse(target)
	if parseError != nil {
		return "", "", fmt.Errorf(errorParseTargetFormat, target, parseError)
	}
	scheme := strings.ToLower(parsed.Scheme)
	backendPath := parsed.Path
	if parsed.Host != "" {
		backendPath = "/" + parsed.Host + backendPath
	}
	if backendPath == "" {
		backendPath = "/"
	}
	return scheme, backendPath, nil
}

func validateOptions(scheme string, options map[string]string) error {
	accepted, known := acceptedOptions[scheme]
	if !known {
		return fmt.Errorf(errorUnsupportedTargetForm, ErrUnsupportedScheme, scheme)
	}
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !utils.ContainsString(accepted, key) {
			return fmt.Errorf(errorUnknownOptionFormat, ErrUnknownOption, key, scheme)
		}
	}
	return nil
}

// FilterOptions keeps only the options the target's backend accepts. It is
// applied to ambient sources such as the environment, where unrelated keys
// are expected.
func FilterOptions(target string, options map[string]string) map[string]string {
	scheme, _, parseError := splitTarget(target)
	if parseError != nil {
		return options
	}
	accepted, known := acceptedOptions[scheme]
	if !known {
		return options
	}
	filtered := make(map[string]string, len(options))
	for key, value := range options {
		if utils.ContainsString(accepted, key) {
			filtered[key] = value
		}
	}
	return filtered
}
