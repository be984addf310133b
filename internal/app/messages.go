package app

import (
	"time"

	"notedeck/internal/types"
)

type mutationOp int

const (
	mutationCreate mutationOp = iota + 1
	mutationUpdate
	mutationDelete
)

func (op mutationOp) String() string {
	switch op {
	case mutationCreate:
		return "create"
	case mutationUpdate:
		return "update"
	case mutationDelete:
		return "delete"
	default:
		return "unknown"
	}
}

type notesLoadedMsg struct {
	seq   int
	notes []types.Note
	err   error
}

type noteMutationMsg struct {
	op      mutationOp
	id      types.NoteID
	session int
	err     error
}

type tickMsg time.Time
