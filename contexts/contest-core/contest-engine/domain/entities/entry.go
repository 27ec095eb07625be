package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// Entry carries two identifiers. EntryID is the position in the contest's
// append-only entry sequence. EntryKey is a pure function of the owner
// identity and the contest id; it is the key the vote ledger is indexed by
// and stays stable as the entry list grows.
type Entry struct {
	EntryID   int64
	EntryKey  string
	ContestID int64
	Owner     string
	Title     string
	ImageURL  string
	VoteCount uint64
	CreatedAt time.Time
}

func DeriveEntryKey(owner string, contestID int64) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(owner) + ":" + strconv.FormatInt(contestID, 10)))
	return hex.EncodeToString(sum[:])
}

// SelectWinner picks the entry with the strictly greatest vote count. An
// entry only overtakes the running winner on a strictly greater count, so
// the earliest entry reaching the maximum wins ties.
func SelectWinner(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	winner := entries[0]
	for _, candidate := range entries[1:] {
		if candidate.VoteCount > winner.VoteCount {
			winner = candidate
		}
	}
	return winner, true
}
