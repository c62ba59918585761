package csstokens

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version     string              `json:"version"`
	Timestamp   string              `json:"timestamp"`
	Summary     JSONSummary         `json:"summary"`
	Tokens      DesignSystemSummary `json:"tokens"`
	Fonts       FontInventory       `json:"fonts"`
	Files       []FileStats         `json:"files"`
	Diagnostics []JSONDiagnostic    `json:"diagnostics"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesScanned    int `json:"files_scanned"`
	FilesSkipped    int `json:"files_skipped"`
	FilesExtracted  int `json:"files_extracted"`
	Colors          int `json:"colors"`
	RawColors       int `json:"raw_colors"`
	Typography      int `json:"typography"`
	Spacing         int `json:"spacing"`
	Components      int `json:"components"`
	Diagnostics     int `json:"diagnostics"`
}

// JSONDiagnostic is a file that could not be read
type JSONDiagnostic struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// WriteJSON writes the extraction result as JSON
func WriteJSON(w io.Writer, result *ExtractResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts ExtractResult to JSONOutput
func buildJSONOutput(result *ExtractResult) JSONOutput {
	diagnostics := make([]JSONDiagnostic, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		diagnostics[i] = JSONDiagnostic{File: d.Path, Message: d.Err.Error()}
	}

	files := result.Files
	if files == nil {
		files = []FileStats{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			FilesDiscovered: result.Scan.FilesDiscovered,
			FilesScanned:    result.Scan.FilesScanned,
			FilesSkipped:    result.Scan.FilesSkipped,
			FilesExtracted:  len(result.Files),
			Colors:          len(result.Summary.Colors),
			RawColors:       len(result.Summary.RawColors),
			Typography:      len(result.Summary.Typography),
			Spacing:         len(result.Summary.Spacing),
			Components:      len(result.Summary.Components),
			Diagnostics:     len(result.Diagnostics),
		},
		Tokens:      result.Summary,
		Fonts:       result.Fonts,
		Files:       files,
		Diagnostics: diagnostics,
	}
}
