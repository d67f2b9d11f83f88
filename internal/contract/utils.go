package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	GoldColor   = color.New(color.FgYellow, color.Bold) // GoldColor marks the first place.
	SilverColor = color.New(color.FgWhite, color.Bold)  // SilverColor marks the second place.
	BronzeColor = color.New(color.FgRed)                // BronzeColor marks the third place.
	TopTenColor = color.New(color.FgCyan)               // TopTenColor marks the rest of the top ten.
	HeaderColor = color.New(color.FgGreen, color.Bold)  // HeaderColor highlights summary headers.
)

// GetColorRank returns the rank as a string, colored by podium position for
// console output. Ranks beyond the top ten are returned plain.
func GetColorRank(rank int) string {
	text := strconv.Itoa(rank)
	switch {
	case rank == 1:
		return GoldColor.Sprint(text)
	case rank == 2:
		return SilverColor.Sprint(text)
	case rank == 3:
		return BronzeColor.Sprint(text)
	case rank <= 10:
		return TopTenColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for snapshot cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".divrank_cache.db"
	}
	return filepath.Join(homeDir, ".divrank_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for ranking history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".divrank_history.db"
	}
	return filepath.Join(homeDir, ".divrank_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
