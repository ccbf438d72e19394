// Package walker enumerates project files in deterministic order.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/promptpack/promptpack/internal/config"
	"github.com/promptpack/promptpack/internal/types"
	"github.com/promptpack/promptpack/internal/utils"
)

const (
	errorReadRootFormat         = "reading project root %s: %w"
	warningReadDirectoryFormat  = "Warning: skipping unreadable directory %s: %v\n"
	warningStatEntryFormat      = "Warning: skipping unreadable entry %s: %v\n"
	warningParseGitignoreFormat = "Warning: could not parse %s: %v\n"
	hiddenNamePrefix            = "."
)

// Options configures a single traversal.
type Options struct {
	Root     types.ValidatedRoot
	Settings config.Settings
	// IncludeGlobs restricts collection to matching files when non-empty.
	// Each glob is evaluated against the slash-separated relative path and
	// against the base name.
	IncludeGlobs []string
	// ExcludedOutputPath is the absolute path of the document being written
	// into the scanned tree, excluded so the export never contains itself.
	ExcludedOutputPath string
	FollowSymlinks     bool
	HideEmpty          bool
	UseGitignore       bool
	// SortOrder is one of types.SortByPath, types.SortByName, types.SortNone.
	SortOrder string
}

// Collect walks the project root depth-first with lexicographically sorted
// directory entries and returns the candidate files. A root that cannot be
// read is fatal; unreadable entries below it are reported to stderr and
// skipped without aborting the traversal.
func Collect(options Options) ([]types.FileEntry, error) {
	var ignoreMatcher gitignore.IgnoreMatcher
	if options.UseGitignore {
		gitignorePath := filepath.Join(options.Root.AbsolutePath, utils.GitIgnoreFileName)
		if _, statErr := os.Stat(gitignorePath); statErr == nil {
			matcher, parseErr := gitignore.NewGitIgnore(gitignorePath, options.Root.AbsolutePath)
			if parseErr != nil {
				fmt.Fprintf(os.Stderr, warningParseGitignoreFormat, gitignorePath, parseErr)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	rootEntries, readRootError := os.ReadDir(options.Root.AbsolutePath)
	if readRootError != nil {
		return nil, fmt.Errorf(errorReadRootFormat, options.Root.AbsolutePath, readRootError)
	}

	var entries []types.FileEntry
	collectEntries(options.Root.AbsolutePath, rootEntries, options, ignoreMatcher, &entries)
	sortEntries(entries, options.SortOrder)
	return entries, nil
}

// collectDirectory reads a nested directory and appends its files to entries.
// Unlike the root, a nested directory that cannot be read is warned about and
// skipped.
func collectDirectory(directoryPath string, options Options, ignoreMatcher gitignore.IgnoreMatcher, entries *[]types.FileEntry) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		fmt.Fprintf(os.Stderr, warningReadDirectoryFormat, directoryPath, readDirectoryError)
		return
	}
	collectEntries(directoryPath, directoryEntries, options, ignoreMatcher, entries)
}

// collectEntries appends the files among directoryEntries to entries,
// recursing into subdirectories.
func collectEntries(directoryPath string, directoryEntries []os.DirEntry, options Options, ignoreMatcher gitignore.IgnoreMatcher, entries *[]types.FileEntry) {
	sort.Slice(directoryEntries, func(firstIndex, secondIndex int) bool {
		return directoryEntries[firstIndex].Name() < directoryEntries[secondIndex].Name()
	})

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		entryPath := filepath.Join(directoryPath, entryName)
		if strings.HasPrefix(entryName, hiddenNamePrefix) {
			continue
		}

		isDirectory := directoryEntry.IsDir()
		var entrySize int64
		if directoryEntry.Type()&os.ModeSymlink != 0 {
			if !options.FollowSymlinks {
				continue
			}
			targetInfo, statError := os.Stat(entryPath)
			if statError != nil {
				fmt.Fprintf(os.Stderr, warningStatEntryFormat, entryPath, statError)
				continue
			}
			isDirectory = targetInfo.IsDir()
			entrySize = targetInfo.Size()
		} else if !isDirectory {
			entryInfo, infoError := directoryEntry.Info()
			if infoError != nil {
				fmt.Fprintf(os.Stderr, warningStatEntryFormat, entryPath, infoError)
				continue
			}
			entrySize = entryInfo.Size()
		}

		relativePath := utils.RelativePathOrSelf(entryPath, options.Root.AbsolutePath)
		if ignoreMatcher != nil && ignoreMatcher.Match(entryPath, isDirectory) {
			continue
		}

		if isDirectory {
			if options.Settings.IsExcludedDirectory(entryName) {
				continue
			}
			collectDirectory(entryPath, options, ignoreMatcher, entries)
			continue
		}

		if options.ExcludedOutputPath != "" && filepath.Clean(entryPath) == options.ExcludedOutputPath {
			continue
		}
		if options.HideEmpty && entrySize == 0 {
			continue
		}
		if !matchesIncludeGlobs(relativePath, entryName, options.IncludeGlobs) {
			continue
		}

		*entries = append(*entries, types.FileEntry{
			RelativePath: relativePath,
			AbsolutePath: entryPath,
		})
	}
}

// matchesIncludeGlobs reports whether the file passes the include filter.
// An empty filter admits every file.
func matchesIncludeGlobs(relativePath string, baseName string, includeGlobs []string) bool {
	if len(includeGlobs) == 0 {
		return true
	}
	for _, pattern := range includeGlobs {
		if matched, matchError := filepath.Match(pattern, relativePath); matchError == nil && matched {
			return true
		}
		if matched, matchError := filepath.Match(pattern, baseName); matchError == nil && matched {
			return true
		}
	}
	return false
}

// sortEntries orders the collected files. Traversal order is already
// deterministic; SortByPath and SortByName apply the case-insensitive
// orderings the CLI exposes, SortNone keeps traversal order.
func sortEntries(entries []types.FileEntry, sortOrder string) {
	switch sortOrder {
	case types.SortByName:
		sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
			return strings.ToLower(filepath.Base(entries[firstIndex].RelativePath)) < strings.ToLower(filepath.Base(entries[secondIndex].RelativePath))
		})
	case types.SortNone:
	default:
		sort.SliceStable(entries, func(firstIndex, secondIndex int) bool {
			return strings.ToLower(entries[firstIndex].RelativePath) < strings.ToLower(entries[secondIndex].RelativePath)
		})
	}
}
