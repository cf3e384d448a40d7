// Package reciprocity aggregates per-friend action logs into sent/received
// tallies. Like the agenda engine it is pure: inputs in, summaries out, no
// I/O and no shared state.
package reciprocity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amity-app/amity/pkg/models"
)

// Summary is the reciprocity balance for a single friend. Actions always
// contains every action kind, zero-filled where nothing was logged.
type Summary struct {
	FriendID   int64                     `json:"friend_id"`
	FriendName string                    `json:"name"`
	Actions    map[models.ActionType]int `json:"actions"`
}

// Diagnostic reports a log that had to be excluded from the summary.
type Diagnostic struct {
	LogID    int64  `json:"log_id"`
	FriendID int64  `json:"friend_id"`
	Reason   string `json:"reason"`
}

// Summarize groups logs by friend and counts occurrences per action kind.
// The result holds one entry per friend with at least one log, ordered by
// friend name (case-insensitive) with ties broken by friend ID. Logs whose
// friend reference does not resolve, or whose action kind is unrecognized,
// are excluded with a diagnostic and the rest of the computation proceeds.
func Summarize(logs []models.ReciprocityLog, friendsByID map[int64]models.Friend) ([]Summary, []Diagnostic) {
	byFriend := make(map[int64]*Summary)
	var diagnostics []Diagnostic

	for _, log := range logs {
		friend, ok := friendsByID[log.FriendID]
		if !ok {
			diagnostics = append(diagnostics, Diagnostic{
				LogID:    log.ID,
				FriendID: log.FriendID,
				Reason:   fmt.Sprintf("friend %d not found", log.FriendID),
			})
			continue
		}

		if _, err := models.ParseActionType(string(log.Action)); err != nil {
			diagnostics = append(diagnostics, Diagnostic{
				LogID:    log.ID,
				FriendID: log.FriendID,
				Reason:   err.Error(),
			})
			continue
		}

		summary, ok := byFriend[log.FriendID]
		if !ok {
			summary = &Summary{
				FriendID:   friend.ID,
				FriendName: friend.Name,
				Actions:    zeroFilledActions(),
			}
			byFriend[log.FriendID] = summary
		}
		summary.Actions[log.Action]++
	}

	summaries := make([]Summary, 0, len(byFriend))
	for _, summary := range byFriend {
		summaries = append(summaries, *summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		an, bn := strings.ToLower(a.FriendName), strings.ToLower(b.FriendName)
		if an != bn {
			return an < bn
		}
		return a.FriendID < b.FriendID
	})

	return summaries, diagnostics
}

func zeroFilledActions() map[models.ActionType]int {
	actions := make(map[models.ActionType]int, len(models.AllActionTypes))
	for _, action := range models.AllActionTypes {
		actions[action] = 0
	}
	return actions
}
