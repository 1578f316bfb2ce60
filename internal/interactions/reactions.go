package interactions

import "github.com/wayra-app/backend/internal/models"

// React upserts the actor's reaction on a target. Re-applying the identical
// kind fails with ErrSameReaction; a different kind replaces the previous
// entry (removal then append, so a user never holds two reactions at once).
// The caller persists the owning document afterwards.
func React(target Target, actor models.Actor, kind string) error {
	if !models.IsValidReactionKind(kind) {
		return ErrInvalidReaction
	}

	reactions := target.GetReactions()
	for _, r := range reactions {
		if r.UserID == actor.ID {
			if r.Reaction == kind {
				return ErrSameReaction
			}
			reactions = removeUserReaction(reactions, actor.ID)
			break
		}
	}

	target.SetReactions(append(reactions, models.Reaction{
		UserID:   actor.ID,
		UserName: actor.UserName,
		Reaction: kind,
	}))
	return nil
}

// Unreact removes any reaction the user holds on the target. Removing a
// reaction that does not exist is not an error.
func Unreact(target Target, userID uint) {
	target.SetReactions(removeUserReaction(target.GetReactions(), userID))
}

func removeUserReaction(reactions []models.Reaction, userID uint) []models.Reaction {
	kept := make([]models.Reaction, 0, len(reactions))
	for _, r := range reactions {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	return kept
}
