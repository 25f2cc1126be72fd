package bot

import "strings"

type dialogStage int

const (
	stageIdle dialogStage = iota
	stageTaskTitle
	stageTaskCategory
	stageEditTitle
	stageEditCategory
	stageNoteText
	stageCategoryName
)

// dialogState tracks one user's multi-step input flow. The zero value is
// the idle state.
type dialogState struct {
	stage  dialogStage
	title  string // collected on the way to stageTaskCategory
	taskID int    // target of the edit flows
}

type effectKind int

const (
	effectNone effectKind = iota
	effectHint
	effectReject
	effectAskCategory
	effectAskEditCategory
	effectCommitRename
	effectCommitNote
	effectCommitCategory
)

type dialogEffect struct {
	kind   effectKind
	text   string
	taskID int
}

// advanceDialog is the transition function of the input flow: given the
// current state and a free-text message it yields the next state and the
// effect the transport layer should execute. It touches no shared state.
func advanceDialog(st dialogState, input string) (dialogState, dialogEffect) {
	text := strings.TrimSpace(input)

	switch st.stage {
	case stageTaskTitle:
		if text == "" {
			return st, dialogEffect{kind: effectReject}
		}
		return dialogState{stage: stageTaskCategory, title: text}, dialogEffect{kind: effectAskCategory}
	case stageTaskCategory:
		// The category is picked with a button; text just re-shows the picker.
		return st, dialogEffect{kind: effectAskCategory}
	case stageEditTitle:
		if text == "" {
			return st, dialogEffect{kind: effectReject}
		}
		return dialogState{}, dialogEffect{kind: effectCommitRename, text: text, taskID: st.taskID}
	case stageEditCategory:
		return st, dialogEffect{kind: effectAskEditCategory, taskID: st.taskID}
	case stageNoteText:
		if text == "" {
			return st, dialogEffect{kind: effectReject}
		}
		return dialogState{}, dialogEffect{kind: effectCommitNote, text: text}
	case stageCategoryName:
		if text == "" {
			return st, dialogEffect{kind: effectReject}
		}
		return dialogState{}, dialogEffect{kind: effectCommitCategory, text: text}
	default:
		return dialogState{}, dialogEffect{kind: effectHint}
	}
}
