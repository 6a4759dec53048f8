// Package provider implements machine-translation backends for the catalog filler.
package provider

import "github.com/TessaraLabs/lingosnip"

// TranslationProvider is the interface for machine-translation backends.
// This is an alias to the main package interface for convenience.
type TranslationProvider = lingosnip.TranslationProvider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = lingosnip.TranslateRequest
