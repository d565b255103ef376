// Package audit appends run records to a local JSONL log so a team can see
// when files were redacted and how much changed. Records carry counts and
// paths only, never matched values.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FixRecord is one fix invocation.
type FixRecord struct {
	Timestamp     time.Time `json:"timestamp"`
	RunID         string    `json:"run_id"`
	Root          string    `json:"root"`
	Prefix        string    `json:"prefix"`
	FilesModified int       `json:"files_modified"`
	Replacements  int       `json:"replacements"`
	UniqueValues  int       `json:"unique_values"`
	MapPath       string    `json:"map_path,omitempty"`
	Failed        []string  `json:"failed,omitempty"`
	Duration      string    `json:"duration"`
}

type Log struct {
	logPath string
}

// NewLog stores the audit log under .git when present, to keep it out of
// accidental commits, otherwise in the root as a dotfile.
func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".shredguard_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "shredguard_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// Append writes one record. Owner-only permissions: the log names which
// files carried PHI.
func (l *Log) Append(record FixRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("fix_%d", time.Now().Unix())
	}
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// History returns records, most recent first.
func (l *Log) History() ([]FixRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []FixRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var r FixRecord
		if err := dec.Decode(&r); err != nil {
			continue
		}
		records = append(records, r)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
