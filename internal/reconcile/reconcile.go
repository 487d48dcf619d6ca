package reconcile

import (
	"shelfmark/internal/config"
	"shelfmark/internal/identify"
	"shelfmark/internal/textutil"
)

// Row statuses, in rough order of confidence.
const (
	StatusReady     = "Ready"
	StatusPerfect   = "Perfect"
	StatusVerified  = "Verified"
	StatusConflict  = "Conflict"
	StatusOnline    = "Online"
	StatusNoMatch   = "No Match"
	StatusDuplicate = "Duplicate"
	StatusEdited    = "Edited"
)

// Row tags group statuses for presentation and filtering.
const (
	TagReady     = "ready"
	TagMatch     = "match"
	TagOffline   = "offline"
	TagConflict  = "conflict"
	TagDuplicate = "duplicate"
	TagEdited    = "edited"
)

// Absent marks a column that has no value for this row.
const Absent = "—"

// Row is one file's reconciliation outcome.
type Row struct {
	Original   string `json:"original"`
	OnlineName string `json:"online_name"`
	LocalName  string `json:"local_name"`
	FinalName  string `json:"final_name"`
	Status     string `json:"status"`
	Tag        string `json:"tag"`
}

// Resolved reports whether the row settled on a rename target different
// from the current filename.
func (r Row) Resolved() bool {
	return r.FinalName != "" && r.FinalName != Absent && r.FinalName != r.Original
}

// BuildRow merges the local guess and the online record for one file.
// localName and onlineName may be empty depending on the scan mode.
func BuildRow(original string, record identify.Record, localName, onlineName, mode string) Row {
	row := Row{
		Original:   original,
		OnlineName: Absent,
		LocalName:  Absent,
	}

	switch mode {
	case config.ScanModeOnline:
		if record.Found() {
			row.OnlineName = onlineName
			row.FinalName = onlineName
			row.Status = StatusOnline
			row.Tag = TagMatch
		} else {
			row.FinalName = original
			row.Status = StatusNoMatch
			row.Tag = TagOffline
		}

	case config.ScanModeLocal:
		row.LocalName = localName
		row.FinalName = localName
		row.Status = StatusReady
		row.Tag = TagReady

	default:
		row.LocalName = localName
		row.FinalName = localName
		row.Status = StatusReady
		row.Tag = TagReady
		if record.Found() {
			row.OnlineName = onlineName
			row.FinalName = onlineName
			if textutil.Normalize(localName) == textutil.Normalize(onlineName) {
				row.Status = StatusVerified
				row.Tag = TagMatch
			} else {
				row.Status = StatusConflict
				row.Tag = TagConflict
			}
		}
	}

	if row.FinalName == original && row.Status != StatusNoMatch {
		row.Status = StatusPerfect
		row.Tag = TagMatch
	}
	return row
}

// Edit replaces a row's final name with a user-supplied value and
// reclassifies it.
func Edit(row Row, finalName string) Row {
	row.FinalName = EnsureExtension(finalName)
	if row.FinalName == row.Original {
		row.Status = StatusPerfect
		row.Tag = TagMatch
	} else {
		row.Status = StatusEdited
		row.Tag = TagEdited
	}
	return row
}

// FlagDuplicates marks every row whose final name collides with another
// row's. Rows already at their final name are left out of the grouping:
// a file that keeps its name cannot collide with itself.
func FlagDuplicates(rows []Row) []Row {
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.FinalName == row.Original || row.FinalName == "" || row.FinalName == Absent {
			continue
		}
		counts[row.FinalName]++
	}
	for i, row := range rows {
		if row.FinalName == row.Original || row.FinalName == "" || row.FinalName == Absent {
			continue
		}
		if counts[row.FinalName] > 1 {
			rows[i].Status = StatusDuplicate
			rows[i].Tag = TagDuplicate
		}
	}
	return rows
}
