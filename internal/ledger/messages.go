package ledger

import (
	"strings"

	"github.com/farmbook/farmbook/internal/model"
)

// withNote ends message with a full stop and appends the caller's note.
func withNote(message, note string) string {
	message += "."
	if note = strings.TrimSpace(note); note != "" {
		message += " " + note
	}
	return message
}

func transportedMessage(field string, p model.Packets, note string) string {
	return withNote("Transported from "+field+" - "+p.Breakdown(), note)
}

func createdFromTransportationMessage(field, note string) string {
	return withNote("Created from transportation from "+field, note)
}

func movedToMessage(newLot string, p model.Packets) string {
	return "Moved to lot " + newLot + " - " + p.Breakdown()
}

func movedFromMessage(oldLot string, p model.Packets) string {
	return "Moved from lot " + oldLot + " - " + p.Breakdown()
}

func createdFromUpdateMessage(field string) string {
	return "Created from transportation update from " + field
}

func updatedTransportationMessage(diff model.Packets) string {
	return "Updated transportation - " + diff.SignedBreakdown()
}

func removedTransportationMessage(p model.Packets) string {
	return "Removed transportation - " + p.Breakdown()
}

func addedMessage(p model.Packets, note string) string {
	return withNote("Added "+p.Breakdown(), note)
}

func updatedLotMessage(diff model.Packets) string {
	return "Updated lot - " + diff.SignedBreakdown()
}

func renamedLotMessage(oldNumber string) string {
	return "Renamed from lot " + oldNumber
}
