package service

import "github.com/MKhiriev/go-pass-sync/models"

// syncAction is the repair chosen for one file from its local and remote
// changes.
type syncAction int

const (
	actionNone syncAction = iota
	actionUpload
	actionDownload
	actionRemove
	// actionConflictSplit moves the remote side into a new record that is
	// downloaded and uploads the local side under a conflict title.
	actionConflictSplit
	// actionConflictRecreate uploads the local side again under a new title
	// after the remote side was deleted.
	actionConflictRecreate
	// actionConflictSplitRemoved keeps the remote side in a new record and
	// lets the locally removed record go.
	actionConflictSplitRemoved
)

func (a syncAction) String() string {
	switch a {
	case actionNone:
		return "none"
	case actionUpload:
		return "upload"
	case actionDownload:
		return "download"
	case actionRemove:
		return "remove"
	case actionConflictSplit:
		return "conflict_split"
	case actionConflictRecreate:
		return "conflict_recreate"
	case actionConflictSplitRemoved:
		return "conflict_split_removed"
	default:
		return "unknown"
	}
}

// isConflict reports whether the action is logged as a conflict.
func (a syncAction) isConflict() bool {
	return a == actionConflictSplit || a == actionConflictRecreate || a == actionConflictSplitRemoved
}

// decideSyncAction is the decision table of the reconciliation pass.
//
//	local \ remote   | NoChange | Added/Modified         | Removed
//	Added/Modified   | upload   | conflict split         | conflict recreate
//	NoChange         | none     | download               | remove
//	Removed          | remove   | conflict split removed | remove
func decideSyncAction(local, remote models.FileChange) syncAction {
	switch local {
	case models.Added, models.Modified:
		switch remote {
		case models.Added, models.Modified:
			return actionConflictSplit
		case models.Removed:
			return actionConflictRecreate
		default:
			return actionUpload
		}

	case models.Removed:
		switch remote {
		case models.Added, models.Modified:
			return actionConflictSplitRemoved
		default:
			return actionRemove
		}

	default:
		switch remote {
		case models.Added, models.Modified:
			return actionDownload
		case models.Removed:
			return actionRemove
		default:
			return actionNone
		}
	}
}
