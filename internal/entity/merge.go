package entity

// Merge policies for change-stream snapshots.
//
// The room watcher's notification read is deliberately light: it skips the
// word-list payloads and the name fields joined from the users table. A
// client must therefore fold each incoming snapshot over its local copy,
// keeping locally-known derived fields whenever the snapshot omits them.

// MergeSnapshot folds a possibly-partial versus snapshot over the local
// copy, preserving word lists, names and the room code when absent.
func (r VersusRoom) MergeSnapshot(in VersusRoom) VersusRoom {
	out := in
	if out.Code == "" {
		out.Code = r.Code
	}
	if out.PlayerAName == "" {
		out.PlayerAName = r.PlayerAName
	}
	if out.PlayerBName == "" {
		out.PlayerBName = r.PlayerBName
	}
	if len(out.WordsForA) == 0 {
		out.WordsForA = r.WordsForA
	}
	if len(out.WordsForB) == 0 {
		out.WordsForB = r.WordsForB
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = r.CreatedAt
	}
	return out
}

// MergeSnapshot folds a possibly-partial reverse snapshot over the local
// copy. Player rows arrive without names; the question payload survives
// a snapshot that omits it while the status still expects one.
func (r ReverseRoom) MergeSnapshot(in ReverseRoom) ReverseRoom {
	out := in
	if out.Code == "" {
		out.Code = r.Code
	}
	if len(out.Players) == 0 {
		out.Players = r.Players
	} else {
		for i := range out.Players {
			if out.Players[i].Name != "" {
				continue
			}
			if prev, ok := r.Player(out.Players[i].UserID); ok {
				out.Players[i].Name = prev.Name
			}
		}
	}
	if out.Question == nil && out.Status == ReverseQuestion {
		out.Question = r.Question
	}
	if len(out.GameWordIDs) == 0 {
		out.GameWordIDs = r.GameWordIDs
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = r.CreatedAt
	}
	return out
}
