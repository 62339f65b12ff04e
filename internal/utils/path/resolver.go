// Package pathutils normalizes user supplied file paths for docaudit commands.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// Resolver expands home shortcuts and turns relative document paths into absolute ones.
type Resolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewResolver constructs a Resolver backed by the operating system home lookup.
func NewResolver() *Resolver {
	return NewResolverWithProvider(os.UserHomeDir)
}

// NewResolverWithProvider constructs a Resolver with a custom home directory provider.
func NewResolverWithProvider(provider HomeDirectoryProvider) *Resolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &Resolver{homeDirectoryProvider: provider}
}

// Resolve trims the candidate, expands a leading tilde and returns a cleaned absolute path.
// Blank candidates resolve to an empty string.
func (resolver *Resolver) Resolve(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return ""
	}

	expandedPath := resolver.expandHome(trimmedPath)
	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return filepath.Clean(expandedPath)
	}
	return absolutePath
}

func (resolver *Resolver) expandHome(candidatePath string) string {
	if resolver == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	homeDirectory := resolver.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildeSymbolConstant {
		return homeDirectory
	}

	for _, prefix := range []string{tildeForwardSlashPrefixConstant, tildeSymbolConstant + string(os.PathSeparator)} {
		if strings.HasPrefix(candidatePath, prefix) {
			return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, prefix))
		}
	}

	return candidatePath
}

func (resolver *Resolver) resolveHomeDirectory() string {
	resolver.initializationGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
